package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/internal/infra/database/models"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video domain.Video) error {
	record := models.Video{
		ID:          video.ID,
		OwnerID:     video.OwnerID,
		Title:       video.Title,
		Description: video.Description,
		VideoFile:   video.VideoFile,
		Thumbnail:   video.Thumbnail,
		Duration:    video.Duration,
		IsPublished: video.IsPublished,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to create video")
	}
	return nil
}

func (r *VideoRepository) Get(ctx context.Context, id string) (domain.Video, error) {
	var record models.Video
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Video{}, domain.NotFoundError{Resource: "video"}
	}
	if err != nil {
		return domain.Video{}, pkgerrors.Wrap(err, "failed to get video")
	}
	return videoToDomain(record), nil
}

func (r *VideoRepository) Update(ctx context.Context, video domain.Video) error {
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", video.ID).
		Updates(map[string]any{
			"title":       video.Title,
			"description": video.Description,
			"thumbnail":   video.Thumbnail,
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to update video")
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Video{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete video")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "video"}
	}
	return nil
}

// TogglePublish flips the flag in one statement and reports the new
// state, so concurrent toggles cannot lose an update.
func (r *VideoRepository) TogglePublish(ctx context.Context, id string) (bool, error) {
	var published []bool
	err := r.db.WithContext(ctx).
		Raw("UPDATE videos SET is_published = NOT is_published, updated_at = clock_timestamp() WHERE id = ? RETURNING is_published", id).
		Scan(&published).Error
	if err != nil {
		return false, pkgerrors.Wrap(err, "failed to toggle publish state")
	}
	if len(published) == 0 {
		return false, domain.NotFoundError{Resource: "video"}
	}
	return published[0], nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to increment views")
	}
	return nil
}

func videoToDomain(record models.Video) domain.Video {
	return domain.Video{
		ID:          record.ID,
		OwnerID:     record.OwnerID,
		Title:       record.Title,
		Description: record.Description,
		VideoFile:   record.VideoFile,
		Thumbnail:   record.Thumbnail,
		Duration:    record.Duration,
		Views:       record.Views,
		IsPublished: record.IsPublished,
		CreatedAt:   record.CreatedAt,
	}
}
