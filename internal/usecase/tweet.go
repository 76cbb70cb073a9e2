package usecase

import (
	"context"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

type TweetUsecase struct {
	repo  TweetRepository
	store view.Store
}

func NewTweetUsecase(repo TweetRepository, store view.Store) *TweetUsecase {
	return &TweetUsecase{repo: repo, store: store}
}

func (uc *TweetUsecase) Create(ctx context.Context, actor view.ID, content string) (domain.Tweet, error) {
	if content == "" {
		return domain.Tweet{}, domain.ValidationError{Reason: "tweet content is required"}
	}

	tweet := domain.Tweet{
		ID:      view.NewID().String(),
		OwnerID: actor.String(),
		Content: content,
	}
	if err := uc.repo.Create(ctx, tweet); err != nil {
		return domain.Tweet{}, err
	}
	return tweet, nil
}

// ListByUser returns a user's tweets, newest first, with the author's
// public profile and a like count on each.
func (uc *TweetUsecase) ListByUser(ctx context.Context, userID view.ID, pg view.Page) (*view.Result, error) {
	return view.From("tweets").
		Filter("owner_id", userID.String()).
		Join(ownerJoin()).
		Join(view.Join{
			From:       "id",
			Collection: "likes",
			To:         "target_id",
			As:         "likes",
			Pipeline:   view.Sub().Filter("target_kind", domain.LikeTargetTweet),
		}).
		Derive(view.Count("like_count", "likes")).
		Project("id", "content", "created_at", "owner", "like_count").
		ExecutePage(ctx, uc.store, pg)
}

func (uc *TweetUsecase) Update(ctx context.Context, actor, id view.ID, content string) (domain.Tweet, error) {
	if content == "" {
		return domain.Tweet{}, domain.ValidationError{Reason: "tweet content is required"}
	}

	tweet, err := uc.owned(ctx, actor, id)
	if err != nil {
		return domain.Tweet{}, err
	}

	tweet.Content = content
	if err := uc.repo.Update(ctx, tweet); err != nil {
		return domain.Tweet{}, err
	}
	return tweet, nil
}

func (uc *TweetUsecase) Delete(ctx context.Context, actor, id view.ID) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id.String())
}

func (uc *TweetUsecase) owned(ctx context.Context, actor, id view.ID) (domain.Tweet, error) {
	tweet, err := uc.repo.Get(ctx, id.String())
	if err != nil {
		return domain.Tweet{}, err
	}
	if tweet.OwnerID != actor.String() {
		return domain.Tweet{}, domain.PermissionError{Action: "modify tweet"}
	}
	return tweet, nil
}
