package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/vidstream/vidstream"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

type VideoUsecase struct {
	repo   VideoRepository
	users  UserRepository
	store  view.Store
	media  MediaStore
	signal Publisher
}

func NewVideoUsecase(
	repo VideoRepository,
	users UserRepository,
	store view.Store,
	media MediaStore,
	signal Publisher,
) *VideoUsecase {
	return &VideoUsecase{
		repo:   repo,
		users:  users,
		store:  store,
		media:  media,
		signal: signal,
	}
}

// List returns published videos, newest first, optionally narrowed by a
// free-text title search. Owners are embedded as public profiles.
func (uc *VideoUsecase) List(ctx context.Context, search string, pg view.Page) (*view.Result, error) {
	return view.From("videos").
		Filter("is_published", true).
		Search("title", search).
		Join(ownerJoin()).
		Project(videoViewFields...).
		ExecutePage(ctx, uc.store, pg)
}

type PublishVideoInput struct {
	Title       string
	Description string
	VideoName   string
	Video       io.Reader
	ThumbName   string
	Thumbnail   io.Reader
	Duration    float64
}

func (uc *VideoUsecase) Publish(ctx context.Context, owner view.ID, input PublishVideoInput) (domain.Video, error) {
	if input.Title == "" || input.Description == "" {
		return domain.Video{}, domain.ValidationError{Reason: "title and description are required"}
	}
	if input.Video == nil {
		return domain.Video{}, domain.ValidationError{Reason: "video file is required"}
	}
	if input.Thumbnail == nil {
		return domain.Video{}, domain.ValidationError{Reason: "thumbnail is required"}
	}

	videoURL, err := uc.media.Save(ctx, "videos", input.VideoName, input.Video)
	if err != nil {
		return domain.Video{}, err
	}
	thumbURL, err := uc.media.Save(ctx, "thumbnails", input.ThumbName, input.Thumbnail)
	if err != nil {
		return domain.Video{}, err
	}

	video := domain.Video{
		ID:          view.NewID().String(),
		OwnerID:     owner.String(),
		Title:       input.Title,
		Description: input.Description,
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		Duration:    input.Duration,
		IsPublished: true,
	}

	if err := uc.repo.Create(ctx, video); err != nil {
		return domain.Video{}, err
	}

	uc.notify(ctx, vidstream.Event{
		Kind:       domain.EventVideoPublished,
		ChannelID:  video.OwnerID,
		ResourceID: video.ID,
	})

	return video, nil
}

// Get returns one video view with its owner resolved, bumps the view
// counter and, for signed-in viewers, records watch history.
func (uc *VideoUsecase) Get(ctx context.Context, id view.ID, viewer view.ID) (view.Document, error) {
	docs, err := view.From("videos").
		Filter("id", id.String()).
		Join(ownerJoin()).
		Project(videoViewFields...).
		Execute(ctx, uc.store)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.NotFoundError{Resource: "video"}
	}

	if err := uc.repo.IncrementViews(ctx, id.String()); err != nil {
		slog.WarnContext(ctx, "failed to count view",
			slog.String("video", id.String()),
			slog.String("error", err.Error()),
		)
	}
	if viewer != "" {
		if err := uc.users.RecordWatch(ctx, viewer.String(), id.String()); err != nil {
			slog.WarnContext(ctx, "failed to record watch history",
				slog.String("video", id.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	return docs[0], nil
}

type UpdateVideoInput struct {
	Title       string
	Description string
	ThumbName   string
	Thumbnail   io.Reader
}

func (uc *VideoUsecase) Update(ctx context.Context, actor, id view.ID, input UpdateVideoInput) (domain.Video, error) {
	if input.Title == "" || input.Description == "" {
		return domain.Video{}, domain.ValidationError{Reason: "title and description are required"}
	}

	video, err := uc.owned(ctx, actor, id)
	if err != nil {
		return domain.Video{}, err
	}

	video.Title = input.Title
	video.Description = input.Description

	if input.Thumbnail != nil {
		old := video.Thumbnail
		thumbURL, err := uc.media.Save(ctx, "thumbnails", input.ThumbName, input.Thumbnail)
		if err != nil {
			return domain.Video{}, err
		}
		video.Thumbnail = thumbURL
		uc.removeMedia(ctx, old)
	}

	if err := uc.repo.Update(ctx, video); err != nil {
		return domain.Video{}, err
	}
	return video, nil
}

func (uc *VideoUsecase) Delete(ctx context.Context, actor, id view.ID) error {
	video, err := uc.owned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id.String()); err != nil {
		return err
	}

	uc.removeMedia(ctx, video.VideoFile)
	uc.removeMedia(ctx, video.Thumbnail)
	return nil
}

func (uc *VideoUsecase) TogglePublish(ctx context.Context, actor, id view.ID) (bool, error) {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return false, err
	}
	return uc.repo.TogglePublish(ctx, id.String())
}

func (uc *VideoUsecase) owned(ctx context.Context, actor, id view.ID) (domain.Video, error) {
	video, err := uc.repo.Get(ctx, id.String())
	if err != nil {
		return domain.Video{}, err
	}
	if video.OwnerID != actor.String() {
		return domain.Video{}, domain.PermissionError{Action: "modify video"}
	}
	return video, nil
}

func (uc *VideoUsecase) notify(ctx context.Context, event vidstream.Event) {
	event.Timestamp = time.Now().UTC()
	if err := uc.signal.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			slog.String("kind", event.Kind),
			slog.String("error", err.Error()),
		)
	}
}

func (uc *VideoUsecase) removeMedia(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := uc.media.Remove(ctx, url); err != nil {
		slog.WarnContext(ctx, "failed to remove media",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}
