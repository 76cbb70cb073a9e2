package usecase

import (
	"context"
	"io"

	"github.com/vidstream/vidstream"
	"github.com/vidstream/vidstream/internal/domain"
)

// UserRepository defines persistence for accounts and watch history.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUserName(ctx context.Context, userName string) (domain.User, error)
	Exists(ctx context.Context, userName, email string) (bool, error)
	Update(ctx context.Context, user domain.User) error
	SetRefreshToken(ctx context.Context, id, token string) error
	GetPublicProfile(ctx context.Context, id string) (vidstream.PublicProfile, error)
	RecordWatch(ctx context.Context, userID, videoID string) error
}

// VideoRepository defines write-side persistence for videos. Read views
// are produced by the view engine, not the repository.
type VideoRepository interface {
	Create(ctx context.Context, video domain.Video) error
	Get(ctx context.Context, id string) (domain.Video, error)
	Update(ctx context.Context, video domain.Video) error
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) error
	Get(ctx context.Context, id string) (domain.Comment, error)
	Update(ctx context.Context, comment domain.Comment) error
	Delete(ctx context.Context, id string) error
}

type TweetRepository interface {
	Create(ctx context.Context, tweet domain.Tweet) error
	Get(ctx context.Context, id string) (domain.Tweet, error)
	Update(ctx context.Context, tweet domain.Tweet) error
	Delete(ctx context.Context, id string) error
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist domain.Playlist) error
	Get(ctx context.Context, id string) (domain.Playlist, error)
	Update(ctx context.Context, playlist domain.Playlist) error
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}

// StatsRepository aggregates dashboard numbers. Implementations may cache
// behind a short TTL.
type StatsRepository interface {
	ChannelStats(ctx context.Context, channelID string) (domain.ChannelStats, error)
}

// MediaStore is the external media collaborator. The backend only keeps
// the returned URL; upload mechanics live entirely behind this port.
type MediaStore interface {
	Save(ctx context.Context, kind, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// Publisher fans realtime events out to listeners.
type Publisher interface {
	Publish(ctx context.Context, event vidstream.Event) error
}
