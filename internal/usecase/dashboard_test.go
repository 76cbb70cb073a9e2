package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

type statsRepoMock struct {
	stats domain.ChannelStats
}

func (m *statsRepoMock) ChannelStats(ctx context.Context, channelID string) (domain.ChannelStats, error) {
	return m.stats, nil
}

func TestDashboardChannelStats(t *testing.T) {
	stats := &statsRepoMock{stats: domain.ChannelStats{
		TotalVideos:      3,
		TotalViews:       120,
		TotalSubscribers: 7,
		TotalLikes:       42,
	}}
	uc := NewDashboardUsecase(stats, newFakeStore())

	got, err := uc.ChannelStats(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(120), got.TotalViews)
	assert.Equal(t, int64(7), got.TotalSubscribers)
}

func TestDashboardChannelVideos(t *testing.T) {
	store := newFakeStore()
	uc := NewDashboardUsecase(&statsRepoMock{}, store)

	store.add("videos",
		view.Document{"id": "v1", "owner_id": "u1", "title": "Draft", "is_published": false, "created_at": "2025-01-01"},
		view.Document{"id": "v2", "owner_id": "u1", "title": "Live", "is_published": true, "created_at": "2025-01-02"},
		view.Document{"id": "v3", "owner_id": "u2", "title": "Other", "is_published": true, "created_at": "2025-01-03"},
	)
	store.add("likes",
		view.Document{"id": "l1", "liked_by": "u2", "target_kind": "video", "target_id": "v2"},
		view.Document{"id": "l2", "liked_by": "u3", "target_kind": "video", "target_id": "v2"},
		view.Document{"id": "l3", "liked_by": "u3", "target_kind": "comment", "target_id": "v2"},
	)

	result, err := uc.ChannelVideos(context.Background(), "u1", view.Page{Number: 1, Limit: 10})
	assert.NoError(t, err)
	if assert.Len(t, result.Items, 2) {
		// drafts are included on the owner's dashboard
		assert.Equal(t, "Live", result.Items[0]["title"])
		assert.EqualValues(t, 2, result.Items[0]["like_count"])
		assert.Equal(t, "Draft", result.Items[1]["title"])
		assert.EqualValues(t, 0, result.Items[1]["like_count"])
	}
}
