package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

func TestSubscriptionToggle(t *testing.T) {
	store := newFakeStore()
	uc := NewSubscriptionUsecase(store, store)

	state, err := uc.Toggle(context.Background(), "u1", "u2")
	assert.NoError(t, err)
	assert.Equal(t, view.StateActive, state)

	state, err = uc.Toggle(context.Background(), "u1", "u2")
	assert.NoError(t, err)
	assert.Equal(t, view.StateInactive, state)
}

func TestSubscriptionToggleSelf(t *testing.T) {
	store := newFakeStore()
	uc := NewSubscriptionUsecase(store, store)

	_, err := uc.Toggle(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.collections["subscriptions"])
}

func TestSubscribers(t *testing.T) {
	store := newFakeStore()
	users := newUserRepoMock()
	uc := NewSubscriptionUsecase(store, store)

	seedUser(store, users, "u2", "grace")
	seedUser(store, users, "u3", "alan")
	store.add("subscriptions",
		view.Document{"id": "s1", "subscriber_id": "u2", "channel_id": "u1", "created_at": "2025-01-01"},
		view.Document{"id": "s2", "subscriber_id": "u3", "channel_id": "u1", "created_at": "2025-01-02"},
		view.Document{"id": "s3", "subscriber_id": "u2", "channel_id": "u9", "created_at": "2025-01-03"},
	)

	result, err := uc.Subscribers(context.Background(), "u1", view.Page{Number: 1, Limit: 10})
	assert.NoError(t, err)
	if assert.Len(t, result.Items, 2) {
		sub, ok := result.Items[0]["subscriber"].(view.Document)
		if assert.True(t, ok) {
			assert.Equal(t, "alan", sub["user_name"])
			assert.NotContains(t, sub, "password")
		}
	}
}

func TestSubscribedChannels(t *testing.T) {
	store := newFakeStore()
	users := newUserRepoMock()
	uc := NewSubscriptionUsecase(store, store)

	seedUser(store, users, "u1", "ada")
	store.add("subscriptions",
		view.Document{"id": "s1", "subscriber_id": "u2", "channel_id": "u1", "created_at": "2025-01-01"},
		view.Document{"id": "s2", "subscriber_id": "u3", "channel_id": "u1", "created_at": "2025-01-02"},
	)

	result, err := uc.SubscribedChannels(context.Background(), "u2", view.Page{Number: 1, Limit: 10})
	assert.NoError(t, err)
	if assert.Len(t, result.Items, 1) {
		channel, ok := result.Items[0]["channel"].(view.Document)
		if assert.True(t, ok) {
			assert.Equal(t, "ada", channel["user_name"])
		}
	}
}
