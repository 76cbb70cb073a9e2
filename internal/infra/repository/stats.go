package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vidstream/vidstream/internal/domain"
)

const statsCacheTTL = 30 * time.Second

// StatsRepository aggregates dashboard totals with a short redis cache in
// front, since every dashboard load asks for the same four numbers.
type StatsRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewStatsRepository(db *gorm.DB, rdb *redis.Client) *StatsRepository {
	return &StatsRepository{db: db, rdb: rdb}
}

func (r *StatsRepository) ChannelStats(ctx context.Context, channelID string) (domain.ChannelStats, error) {
	key := "stats:" + channelID

	if cached, err := r.rdb.Get(ctx, key).Result(); err == nil {
		var stats domain.ChannelStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	}

	var stats domain.ChannelStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = @owner) AS total_videos,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = @owner) AS total_views,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = @owner) AS total_subscribers,
			(SELECT COUNT(*) FROM likes
				JOIN videos ON videos.id = likes.target_id
				WHERE likes.target_kind = 'video' AND videos.owner_id = @owner) AS total_likes
	`, map[string]any{"owner": channelID}).Scan(&stats).Error
	if err != nil {
		return domain.ChannelStats{}, pkgerrors.Wrap(err, "failed to aggregate channel stats")
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := r.rdb.Set(ctx, key, payload, statsCacheTTL).Err(); err != nil {
			slog.DebugContext(ctx, "stats cache set failed", slog.String("error", err.Error()))
		}
	}

	return stats, nil
}
