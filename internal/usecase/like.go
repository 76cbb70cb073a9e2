package usecase

import (
	"context"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

// likeSpec builds the toggle specification for one like kind. All three
// kinds share the likes collection; the unique index on
// (liked_by, target_kind, target_id) serializes concurrent toggles.
func likeSpec(kind string) view.ToggleSpec {
	return view.ToggleSpec{
		Collection:  "likes",
		ActorField:  "liked_by",
		TargetField: "target_id",
		Extra:       map[string]any{"target_kind": kind},
	}
}

type LikeUsecase struct {
	store     view.Store
	relations view.RelationStore
}

func NewLikeUsecase(store view.Store, relations view.RelationStore) *LikeUsecase {
	return &LikeUsecase{store: store, relations: relations}
}

// ToggleVideo flips the actor's like on a video.
func (uc *LikeUsecase) ToggleVideo(ctx context.Context, actor, videoID view.ID) (view.ToggleState, error) {
	return view.Toggle(ctx, uc.relations, likeSpec(domain.LikeTargetVideo), actor, videoID)
}

func (uc *LikeUsecase) ToggleComment(ctx context.Context, actor, commentID view.ID) (view.ToggleState, error) {
	return view.Toggle(ctx, uc.relations, likeSpec(domain.LikeTargetComment), actor, commentID)
}

func (uc *LikeUsecase) ToggleTweet(ctx context.Context, actor, tweetID view.ID) (view.ToggleState, error) {
	return view.Toggle(ctx, uc.relations, likeSpec(domain.LikeTargetTweet), actor, tweetID)
}

// LikedVideos returns the videos the actor has liked, most recent like
// first, each with its owner resolved.
func (uc *LikeUsecase) LikedVideos(ctx context.Context, actor view.ID, pg view.Page) (*view.Result, error) {
	return view.From("likes").
		Filter("liked_by", actor.String()).
		Filter("target_kind", domain.LikeTargetVideo).
		Join(view.Join{
			From:       "target_id",
			Collection: "videos",
			To:         "id",
			As:         "video",
			One:        true,
			Pipeline:   view.Sub().Join(ownerJoin()).Project(videoViewFields...),
		}).
		Project("id", "created_at", "video").
		ExecutePage(ctx, uc.store, pg)
}
