package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/internal/infra/database/models"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist domain.Playlist) error {
	record := models.Playlist{
		ID:          playlist.ID,
		OwnerID:     playlist.OwnerID,
		Name:        playlist.Name,
		Description: playlist.Description,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to create playlist")
	}
	return nil
}

func (r *PlaylistRepository) Get(ctx context.Context, id string) (domain.Playlist, error) {
	var record models.Playlist
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Playlist{}, domain.NotFoundError{Resource: "playlist"}
	}
	if err != nil {
		return domain.Playlist{}, pkgerrors.Wrap(err, "failed to get playlist")
	}
	return domain.Playlist{
		ID:          record.ID,
		OwnerID:     record.OwnerID,
		Name:        record.Name,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
	}, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, playlist domain.Playlist) error {
	err := r.db.WithContext(ctx).
		Model(&models.Playlist{}).
		Where("id = ?", playlist.ID).
		Updates(map[string]any{
			"name":        playlist.Name,
			"description": playlist.Description,
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to update playlist")
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Playlist{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete playlist")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "playlist"}
	}
	return nil
}

// AddVideo appends at the end of the playlist. Re-adding an existing
// video is a no-op. The playlist row is locked for the transaction so
// concurrent appends serialize on the position counter.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Playlist
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&locked, "id = ?", playlistID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "playlist"}
		}
		if err != nil {
			return pkgerrors.Wrap(err, "failed to lock playlist")
		}

		var next int
		err = tx.Raw(
			"SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_videos WHERE playlist_id = ?",
			playlistID,
		).Scan(&next).Error
		if err != nil {
			return pkgerrors.Wrap(err, "failed to compute playlist position")
		}

		record := models.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   next,
		}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
		if err != nil {
			return pkgerrors.Wrap(err, "failed to add video to playlist")
		}
		return nil
	})
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	err := r.db.WithContext(ctx).
		Delete(&models.PlaylistVideo{}, "playlist_id = ? AND video_id = ?", playlistID, videoID).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to remove video from playlist")
	}
	return nil
}
