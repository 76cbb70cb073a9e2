package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidstream/vidstream"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

type CommentUsecase struct {
	repo   CommentRepository
	videos VideoRepository
	store  view.Store
	signal Publisher
}

func NewCommentUsecase(
	repo CommentRepository,
	videos VideoRepository,
	store view.Store,
	signal Publisher,
) *CommentUsecase {
	return &CommentUsecase{
		repo:   repo,
		videos: videos,
		store:  store,
		signal: signal,
	}
}

var commentViewFields = []string{"id", "content", "created_at", "owner"}

// ListByVideo returns a video's comments, newest first, with owners
// resolved to public profiles.
func (uc *CommentUsecase) ListByVideo(ctx context.Context, videoID view.ID, pg view.Page) (*view.Result, error) {
	return view.From("comments").
		Filter("video_id", videoID.String()).
		Join(ownerJoin()).
		Project(commentViewFields...).
		ExecutePage(ctx, uc.store, pg)
}

// Add creates a comment and returns its denormalized view.
func (uc *CommentUsecase) Add(ctx context.Context, actor, videoID view.ID, content string) (view.Document, error) {
	if content == "" {
		return nil, domain.ValidationError{Reason: "comment content is required"}
	}

	video, err := uc.videos.Get(ctx, videoID.String())
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:      view.NewID().String(),
		VideoID: video.ID,
		OwnerID: actor.String(),
		Content: content,
	}
	if err := uc.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	event := vidstream.Event{
		Kind:       domain.EventCommentAdded,
		ChannelID:  video.OwnerID,
		ResourceID: comment.ID,
		Timestamp:  time.Now().UTC(),
	}
	if err := uc.signal.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			slog.String("kind", event.Kind),
			slog.String("error", err.Error()),
		)
	}

	return uc.getView(ctx, comment.ID)
}

func (uc *CommentUsecase) Update(ctx context.Context, actor, id view.ID, content string) (view.Document, error) {
	if content == "" {
		return nil, domain.ValidationError{Reason: "comment content is required"}
	}

	comment, err := uc.repo.Get(ctx, id.String())
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != actor.String() {
		return nil, domain.PermissionError{Action: "modify comment"}
	}

	comment.Content = content
	if err := uc.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return uc.getView(ctx, comment.ID)
}

func (uc *CommentUsecase) Delete(ctx context.Context, actor, id view.ID) error {
	comment, err := uc.repo.Get(ctx, id.String())
	if err != nil {
		return err
	}
	if comment.OwnerID != actor.String() {
		return domain.PermissionError{Action: "modify comment"}
	}
	return uc.repo.Delete(ctx, id.String())
}

func (uc *CommentUsecase) getView(ctx context.Context, id string) (view.Document, error) {
	docs, err := view.From("comments").
		Filter("id", id).
		Join(ownerJoin()).
		Join(videoWithOwnerJoin("video_id", "video", true)).
		Execute(ctx, uc.store)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.NotFoundError{Resource: "comment"}
	}
	return docs[0], nil
}
