package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidstream/vidstream"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/internal/infra/database/models"
	"github.com/vidstream/vidstream/view"
)

const profileCacheTTL = 300 // seconds

type UserRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewUserRepository(db *gorm.DB, mc *memcache.Client) *UserRepository {
	return &UserRepository{db: db, mc: mc}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	record := models.User{
		ID:         user.ID,
		UserName:   user.UserName,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		Password:   user.Password,
	}
	err := r.db.WithContext(ctx).Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ValidationError{Reason: "user already exists"}
	}
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create user")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, pkgerrors.Wrap(err, "failed to get user")
	}
	return userToDomain(record), nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).First(&record, "user_name = ?", userName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, pkgerrors.Wrap(err, "failed to get user")
	}
	return userToDomain(record), nil
}

func (r *UserRepository) Exists(ctx context.Context, userName, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_name = ? OR email = ?", userName, email).
		Count(&count).Error
	if err != nil {
		return false, pkgerrors.Wrap(err, "failed to check user existence")
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":       user.Email,
			"full_name":   user.FullName,
			"avatar":      user.Avatar,
			"cover_image": user.CoverImage,
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to update user")
	}
	r.invalidateProfile(user.ID)
	return nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to set refresh token")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// GetPublicProfile serves the projection embedded in views. Profiles are
// cached in memcached; Update invalidates.
func (r *UserRepository) GetPublicProfile(ctx context.Context, id string) (vidstream.PublicProfile, error) {
	key := "profile:" + id

	if item, err := r.mc.Get(key); err == nil {
		var profile vidstream.PublicProfile
		if err := json.Unmarshal(item.Value, &profile); err == nil {
			return profile, nil
		}
	}

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return vidstream.PublicProfile{}, err
	}

	profile := vidstream.PublicProfile{
		ID:       user.ID,
		UserName: user.UserName,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}

	if payload, err := json.Marshal(profile); err == nil {
		err = r.mc.Set(&memcache.Item{
			Key:        key,
			Value:      payload,
			Expiration: profileCacheTTL,
		})
		if err != nil {
			slog.DebugContext(ctx, "profile cache set failed", slog.String("error", err.Error()))
		}
	}

	return profile, nil
}

func (r *UserRepository) RecordWatch(ctx context.Context, userID, videoID string) error {
	record := models.WatchHistory{
		ID:      view.NewID().String(),
		UserID:  userID,
		VideoID: videoID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]any{"watched_at": time.Now()}),
	}).Create(&record).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to record watch history")
	}
	return nil
}

func (r *UserRepository) invalidateProfile(id string) {
	err := r.mc.Delete("profile:" + id)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		slog.Debug("profile cache delete failed", slog.String("error", err.Error()))
	}
}

func userToDomain(record models.User) domain.User {
	return domain.User{
		ID:           record.ID,
		UserName:     record.UserName,
		Email:        record.Email,
		FullName:     record.FullName,
		Avatar:       record.Avatar,
		CoverImage:   record.CoverImage,
		Password:     record.Password,
		RefreshToken: record.RefreshToken,
		CreatedAt:    record.CreatedAt,
	}
}
