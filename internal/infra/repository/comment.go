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

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment) error {
	record := models.Comment{
		ID:      comment.ID,
		VideoID: comment.VideoID,
		OwnerID: comment.OwnerID,
		Content: comment.Content,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to create comment")
	}
	return nil
}

func (r *CommentRepository) Get(ctx context.Context, id string) (domain.Comment, error) {
	var record models.Comment
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Comment{}, domain.NotFoundError{Resource: "comment"}
	}
	if err != nil {
		return domain.Comment{}, pkgerrors.Wrap(err, "failed to get comment")
	}
	return domain.Comment{
		ID:        record.ID,
		VideoID:   record.VideoID,
		OwnerID:   record.OwnerID,
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment domain.Comment) error {
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]any{
			"content":    comment.Content,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to update comment")
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete comment")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "comment"}
	}
	return nil
}
