package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

func TestTweetCreate(t *testing.T) {
	store := newFakeStore()
	tweets := newTweetRepoMock()
	uc := NewTweetUsecase(tweets, store)

	_, err := uc.Create(context.Background(), "u1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tweet, err := uc.Create(context.Background(), "u1", "hello world")
	assert.NoError(t, err)
	assert.Equal(t, "u1", tweet.OwnerID)
	assert.Len(t, tweets.tweets, 1)
}

func TestTweetListByUser(t *testing.T) {
	store := newFakeStore()
	users := newUserRepoMock()
	uc := NewTweetUsecase(newTweetRepoMock(), store)

	seedUser(store, users, "u1", "ada")
	store.add("tweets",
		view.Document{"id": "t1", "owner_id": "u1", "content": "first", "created_at": "2025-01-01"},
		view.Document{"id": "t2", "owner_id": "u1", "content": "second", "created_at": "2025-01-02"},
		view.Document{"id": "t3", "owner_id": "u2", "content": "other", "created_at": "2025-01-03"},
	)
	// t1 is liked twice as a tweet and once, spuriously, as a video
	store.add("likes",
		view.Document{"id": "l1", "liked_by": "u2", "target_kind": "tweet", "target_id": "t1"},
		view.Document{"id": "l2", "liked_by": "u3", "target_kind": "tweet", "target_id": "t1"},
		view.Document{"id": "l3", "liked_by": "u4", "target_kind": "video", "target_id": "t1"},
	)

	result, err := uc.ListByUser(context.Background(), "u1", view.Page{Number: 1, Limit: 10})
	assert.NoError(t, err)
	if assert.Len(t, result.Items, 2) {
		assert.Equal(t, "second", result.Items[0]["content"])
		assert.EqualValues(t, 0, result.Items[0]["like_count"])
		assert.EqualValues(t, 2, result.Items[1]["like_count"])

		owner, ok := result.Items[1]["owner"].(view.Document)
		if assert.True(t, ok) {
			assert.Equal(t, "ada", owner["user_name"])
		}
		assert.NotContains(t, result.Items[1], "likes")
	}
}

func TestTweetUpdateOwnership(t *testing.T) {
	store := newFakeStore()
	tweets := newTweetRepoMock()
	uc := NewTweetUsecase(tweets, store)
	tweets.tweets["t1"] = domain.Tweet{ID: "t1", OwnerID: "u1", Content: "orig"}

	_, err := uc.Update(context.Background(), "u2", "t1", "edited")
	assert.ErrorIs(t, err, domain.ErrPermission)

	tweet, err := uc.Update(context.Background(), "u1", "t1", "edited")
	assert.NoError(t, err)
	assert.Equal(t, "edited", tweet.Content)
}

func TestTweetDelete(t *testing.T) {
	store := newFakeStore()
	tweets := newTweetRepoMock()
	uc := NewTweetUsecase(tweets, store)
	tweets.tweets["t1"] = domain.Tweet{ID: "t1", OwnerID: "u1"}

	assert.ErrorIs(t, uc.Delete(context.Background(), "u2", "t1"), domain.ErrPermission)
	assert.NoError(t, uc.Delete(context.Background(), "u1", "t1"))
	assert.Empty(t, tweets.tweets)
}
