package usecase

import (
	"context"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

type DashboardUsecase struct {
	stats StatsRepository
	store view.Store
}

func NewDashboardUsecase(stats StatsRepository, store view.Store) *DashboardUsecase {
	return &DashboardUsecase{stats: stats, store: store}
}

func (uc *DashboardUsecase) ChannelStats(ctx context.Context, actor view.ID) (domain.ChannelStats, error) {
	return uc.stats.ChannelStats(ctx, actor.String())
}

var dashboardVideoFields = []string{
	"id", "title", "description", "thumbnail", "duration",
	"views", "is_published", "created_at", "like_count",
}

// ChannelVideos lists the actor's own uploads, drafts included, with the
// per-video like count the dashboard table shows.
func (uc *DashboardUsecase) ChannelVideos(ctx context.Context, actor view.ID, pg view.Page) (*view.Result, error) {
	return view.From("videos").
		Filter("owner_id", actor.String()).
		Join(view.Join{
			From:       "id",
			Collection: "likes",
			To:         "target_id",
			As:         "likes",
			Pipeline:   view.Sub().Filter("target_kind", domain.LikeTargetVideo),
		}).
		Derive(view.Count("like_count", "likes")).
		Project(dashboardVideoFields...).
		ExecutePage(ctx, uc.store, pg)
}
