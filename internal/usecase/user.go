package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

// AuthProvider issues and verifies credentials. Token mechanics live in
// the service layer; the use case only orchestrates them.
type AuthProvider interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) error
	IssueTokens(ctx context.Context, user domain.User) (access, refresh string, err error)
	VerifyRefresh(ctx context.Context, token string) (userID string, err error)
}

type UserUsecase struct {
	repo  UserRepository
	store view.Store
	auth  AuthProvider
	media MediaStore
}

func NewUserUsecase(repo UserRepository, store view.Store, auth AuthProvider, media MediaStore) *UserUsecase {
	return &UserUsecase{repo: repo, store: store, auth: auth, media: media}
}

type RegisterInput struct {
	UserName   string
	Email      string
	FullName   string
	Password   string
	AvatarName string
	Avatar     io.Reader
	CoverName  string
	Cover      io.Reader
}

func (uc *UserUsecase) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if input.UserName == "" || input.Email == "" || input.FullName == "" || input.Password == "" {
		return domain.User{}, domain.ValidationError{Reason: "userName, email, fullName and password are required"}
	}
	if input.Avatar == nil {
		return domain.User{}, domain.ValidationError{Reason: "avatar is required"}
	}

	userName := strings.ToLower(input.UserName)

	exists, err := uc.repo.Exists(ctx, userName, input.Email)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, domain.ValidationError{Reason: "user already exists"}
	}

	avatarURL, err := uc.media.Save(ctx, "avatars", input.AvatarName, input.Avatar)
	if err != nil {
		return domain.User{}, err
	}
	var coverURL string
	if input.Cover != nil {
		coverURL, err = uc.media.Save(ctx, "covers", input.CoverName, input.Cover)
		if err != nil {
			return domain.User{}, err
		}
	}

	hash, err := uc.auth.HashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:         view.NewID().String(),
		UserName:   userName,
		Email:      input.Email,
		FullName:   input.FullName,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Password:   hash,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// Login verifies credentials and returns the user with a fresh token
// pair. The refresh token is persisted so it can be rotated and revoked.
func (uc *UserUsecase) Login(ctx context.Context, userName, password string) (domain.User, string, string, error) {
	if userName == "" || password == "" {
		return domain.User{}, "", "", domain.ValidationError{Reason: "userName and password are required"}
	}

	user, err := uc.repo.GetByUserName(ctx, strings.ToLower(userName))
	if err != nil {
		return domain.User{}, "", "", err
	}

	if err := uc.auth.VerifyPassword(user.Password, password); err != nil {
		return domain.User{}, "", "", domain.PermissionError{Action: "invalid credentials"}
	}

	access, refresh, err := uc.auth.IssueTokens(ctx, user)
	if err != nil {
		return domain.User{}, "", "", err
	}
	if err := uc.repo.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return domain.User{}, "", "", err
	}

	return user, access, refresh, nil
}

func (uc *UserUsecase) Logout(ctx context.Context, actor view.ID) error {
	return uc.repo.SetRefreshToken(ctx, actor.String(), "")
}

// Refresh rotates a token pair. The presented token must match the one
// on record; a mismatch means it was already rotated or revoked.
func (uc *UserUsecase) Refresh(ctx context.Context, token string) (string, string, error) {
	userID, err := uc.auth.VerifyRefresh(ctx, token)
	if err != nil {
		return "", "", domain.PermissionError{Action: "invalid refresh token"}
	}

	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user.RefreshToken == "" || user.RefreshToken != token {
		return "", "", domain.PermissionError{Action: "refresh token revoked"}
	}

	access, refresh, err := uc.auth.IssueTokens(ctx, user)
	if err != nil {
		return "", "", err
	}
	if err := uc.repo.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (uc *UserUsecase) Me(ctx context.Context, actor view.ID) (domain.User, error) {
	return uc.repo.GetByID(ctx, actor.String())
}

func (uc *UserUsecase) UpdateProfile(ctx context.Context, actor view.ID, fullName, email string) (domain.User, error) {
	if fullName == "" || email == "" {
		return domain.User{}, domain.ValidationError{Reason: "fullName and email are required"}
	}

	user, err := uc.repo.GetByID(ctx, actor.String())
	if err != nil {
		return domain.User{}, err
	}
	user.FullName = fullName
	user.Email = email
	if err := uc.repo.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (uc *UserUsecase) UpdateAvatar(ctx context.Context, actor view.ID, name string, r io.Reader) (domain.User, error) {
	return uc.updateImage(ctx, actor, "avatars", name, r, func(u *domain.User, url string) string {
		old := u.Avatar
		u.Avatar = url
		return old
	})
}

func (uc *UserUsecase) UpdateCover(ctx context.Context, actor view.ID, name string, r io.Reader) (domain.User, error) {
	return uc.updateImage(ctx, actor, "covers", name, r, func(u *domain.User, url string) string {
		old := u.CoverImage
		u.CoverImage = url
		return old
	})
}

func (uc *UserUsecase) updateImage(
	ctx context.Context,
	actor view.ID,
	kind, name string,
	r io.Reader,
	swap func(*domain.User, string) string,
) (domain.User, error) {
	if r == nil {
		return domain.User{}, domain.ValidationError{Reason: "image file is required"}
	}

	user, err := uc.repo.GetByID(ctx, actor.String())
	if err != nil {
		return domain.User{}, err
	}

	url, err := uc.media.Save(ctx, kind, name, r)
	if err != nil {
		return domain.User{}, err
	}

	old := swap(&user, url)
	if err := uc.repo.Update(ctx, user); err != nil {
		return domain.User{}, err
	}

	if old != "" {
		if err := uc.media.Remove(ctx, old); err != nil {
			slog.WarnContext(ctx, "failed to remove old image", slog.String("url", old), slog.String("error", err.Error()))
		}
	}
	return user, nil
}

var channelProfileFields = []string{
	"id", "user_name", "full_name", "avatar", "cover_image", "created_at",
	"subscriber_count", "channels_subscribed_to", "is_subscribed",
}

// ChannelProfile returns a channel's public profile with subscriber
// counts. Derived fields are computed relative to the requested channel:
// is_subscribed asks whether the requester appears among that channel's
// subscribers.
func (uc *UserUsecase) ChannelProfile(ctx context.Context, userName string, requester view.ID) (view.Document, error) {
	if userName == "" {
		return nil, domain.ValidationError{Reason: "userName is required"}
	}

	docs, err := view.From("users").
		Filter("user_name", strings.ToLower(userName)).
		Join(view.Join{
			From:       "id",
			Collection: "subscriptions",
			To:         "channel_id",
			As:         "subscribers",
		}).
		Join(view.Join{
			From:       "id",
			Collection: "subscriptions",
			To:         "subscriber_id",
			As:         "subscriptions",
		}).
		Derive(view.Count("subscriber_count", "subscribers")).
		Derive(view.Count("channels_subscribed_to", "subscriptions")).
		Derive(view.Contains("is_subscribed", "subscribers", "subscriber_id", requester)).
		Project(channelProfileFields...).
		Execute(ctx, uc.store)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.NotFoundError{Resource: "channel"}
	}
	return docs[0], nil
}

// WatchHistory returns the actor's watched videos, most recent first.
func (uc *UserUsecase) WatchHistory(ctx context.Context, actor view.ID, pg view.Page) (*view.Result, error) {
	return view.From("watch_history").
		Filter("user_id", actor.String()).
		SortBy("watched_at", true).
		Join(videoWithOwnerJoin("video_id", "video", true)).
		Project("id", "watched_at", "video").
		ExecutePage(ctx, uc.store, pg)
}
