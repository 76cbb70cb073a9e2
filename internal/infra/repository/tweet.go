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

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet domain.Tweet) error {
	record := models.Tweet{
		ID:      tweet.ID,
		OwnerID: tweet.OwnerID,
		Content: tweet.Content,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to create tweet")
	}
	return nil
}

func (r *TweetRepository) Get(ctx context.Context, id string) (domain.Tweet, error) {
	var record models.Tweet
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Tweet{}, domain.NotFoundError{Resource: "tweet"}
	}
	if err != nil {
		return domain.Tweet{}, pkgerrors.Wrap(err, "failed to get tweet")
	}
	return domain.Tweet{
		ID:        record.ID,
		OwnerID:   record.OwnerID,
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (r *TweetRepository) Update(ctx context.Context, tweet domain.Tweet) error {
	err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("id = ?", tweet.ID).
		Updates(map[string]any{
			"content":    tweet.Content,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to update tweet")
	}
	return nil
}

func (r *TweetRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Tweet{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete tweet")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "tweet"}
	}
	return nil
}
