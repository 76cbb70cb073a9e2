package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

func newCommentFixture() (*CommentUsecase, *fakeStore, *commentRepoMock, *videoRepoMock, *publisherMock) {
	store := newFakeStore()
	comments := newCommentRepoMock(store)
	videos := newVideoRepoMock()
	signal := &publisherMock{}
	return NewCommentUsecase(comments, videos, store, signal), store, comments, videos, signal
}

func TestCommentAdd(t *testing.T) {
	uc, store, comments, videos, signal := newCommentFixture()
	users := newUserRepoMock()
	seedUser(store, users, "u1", "ada")
	seedUser(store, users, "u2", "grace")
	seedVideo(store, videos, "v1", "u1", "Intro", true)

	doc, err := uc.Add(context.Background(), "u2", "v1", "nice video")
	assert.NoError(t, err)
	assert.Equal(t, "nice video", doc["content"])

	owner, ok := doc["owner"].(view.Document)
	if assert.True(t, ok) {
		assert.Equal(t, "grace", owner["user_name"])
	}
	video, ok := doc["video"].(view.Document)
	if assert.True(t, ok) {
		assert.Equal(t, "Intro", video["title"])
	}

	if assert.Len(t, signal.events, 1) {
		assert.Equal(t, domain.EventCommentAdded, signal.events[0].Kind)
		assert.Equal(t, "u1", signal.events[0].ChannelID)
	}
	assert.Len(t, comments.comments, 1)
}

func TestCommentAddMissingVideo(t *testing.T) {
	uc, _, _, _, signal := newCommentFixture()

	_, err := uc.Add(context.Background(), "u1", "missing", "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, signal.events)
}

func TestCommentAddEmptyContent(t *testing.T) {
	uc, _, _, _, _ := newCommentFixture()

	_, err := uc.Add(context.Background(), "u1", "v1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommentListByVideo(t *testing.T) {
	uc, store, _, videos, _ := newCommentFixture()
	users := newUserRepoMock()
	seedUser(store, users, "u1", "ada")
	seedVideo(store, videos, "v1", "u1", "Intro", true)
	store.add("comments",
		view.Document{"id": "c1", "video_id": "v1", "owner_id": "u1", "content": "first", "created_at": "2025-01-01"},
		view.Document{"id": "c2", "video_id": "v1", "owner_id": "u1", "content": "second", "created_at": "2025-01-02"},
		view.Document{"id": "c3", "video_id": "v9", "owner_id": "u1", "content": "elsewhere", "created_at": "2025-01-03"},
	)

	result, err := uc.ListByVideo(context.Background(), "v1", view.Page{Number: 1, Limit: 10})
	assert.NoError(t, err)
	if assert.Len(t, result.Items, 2) {
		assert.Equal(t, "second", result.Items[0]["content"])
		owner, ok := result.Items[0]["owner"].(view.Document)
		if assert.True(t, ok) {
			assert.Equal(t, "ada", owner["user_name"])
		}
	}
}

func TestCommentUpdate(t *testing.T) {
	uc, store, comments, _, _ := newCommentFixture()
	users := newUserRepoMock()
	seedUser(store, users, "u1", "ada")
	_ = comments.Create(context.Background(), domain.Comment{
		ID: "c1", VideoID: "v1", OwnerID: "u1", Content: "orig",
	})

	_, err := uc.Update(context.Background(), "u2", "c1", "edited")
	assert.ErrorIs(t, err, domain.ErrPermission)
	assert.Equal(t, "orig", comments.comments["c1"].Content)

	doc, err := uc.Update(context.Background(), "u1", "c1", "edited")
	assert.NoError(t, err)
	assert.Equal(t, "edited", doc["content"])
}

func TestCommentDelete(t *testing.T) {
	uc, _, comments, _, _ := newCommentFixture()
	_ = comments.Create(context.Background(), domain.Comment{ID: "c1", OwnerID: "u1"})

	assert.ErrorIs(t, uc.Delete(context.Background(), "u2", "c1"), domain.ErrPermission)
	assert.NoError(t, uc.Delete(context.Background(), "u1", "c1"))
	assert.Empty(t, comments.comments)
}
