package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vidstream/vidstream"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

// fakeStore is an in-memory view.Store and view.RelationStore with the
// semantics the real adapter provides: stable sort, unique-index
// enforcement on insert.
type fakeStore struct {
	mu          sync.Mutex
	collections map[string][]view.Document
	unique      map[string][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		collections: make(map[string][]view.Document),
		unique: map[string][]string{
			"likes":         {"liked_by", "target_kind", "target_id"},
			"subscriptions": {"subscriber_id", "channel_id"},
		},
	}
}

func (s *fakeStore) add(collection string, docs ...view.Document) {
	s.collections[collection] = append(s.collections[collection], docs...)
}

func (s *fakeStore) Find(ctx context.Context, collection string, q view.Query) ([]view.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []view.Document
	for _, doc := range s.collections[collection] {
		if fakeMatches(doc, q.Filter) {
			out = append(out, cloneFakeDoc(doc))
		}
	}

	for i := len(q.Sort) - 1; i >= 0; i-- {
		key := q.Sort[i]
		sort.SliceStable(out, func(a, b int) bool {
			av := fmt.Sprintf("%v", out[a][key.Field])
			bv := fmt.Sprintf("%v", out[b][key.Field])
			if key.Desc {
				return av > bv
			}
			return av < bv
		})
	}

	if q.Skip > 0 {
		if q.Skip >= len(out) {
			out = nil
		} else {
			out = out[q.Skip:]
		}
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *fakeStore) FindOne(ctx context.Context, collection string, filter []view.Condition) (view.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		if fakeMatches(doc, filter) {
			return cloneFakeDoc(doc), nil
		}
	}
	return nil, nil
}

func (s *fakeStore) InsertOne(ctx context.Context, collection string, doc view.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fields := s.unique[collection]; len(fields) > 0 {
		for _, existing := range s.collections[collection] {
			same := true
			for _, f := range fields {
				if existing[f] != doc[f] {
					same = false
					break
				}
			}
			if same {
				return view.ErrDuplicate
			}
		}
	}
	s.collections[collection] = append(s.collections[collection], cloneFakeDoc(doc))
	return nil
}

func (s *fakeStore) DeleteOne(ctx context.Context, collection string, filter []view.Condition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if fakeMatches(doc, filter) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func fakeMatches(doc view.Document, filter []view.Condition) bool {
	for _, c := range filter {
		switch c.Op {
		case view.OpEq:
			if fmt.Sprintf("%v", doc[c.Field]) != fmt.Sprintf("%v", c.Value) {
				return false
			}
		case view.OpIn:
			values, _ := c.Value.([]any)
			found := false
			for _, v := range values {
				if fmt.Sprintf("%v", doc[c.Field]) == fmt.Sprintf("%v", v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case view.OpMatch:
			term, _ := c.Value.(string)
			field, _ := doc[c.Field].(string)
			if !strings.Contains(strings.ToLower(field), strings.ToLower(term)) {
				return false
			}
		}
	}
	return true
}

func cloneFakeDoc(doc view.Document) view.Document {
	out := make(view.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

type userRepoMock struct {
	users   map[string]domain.User
	watches []string
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{users: make(map[string]domain.User)}
}

func (m *userRepoMock) Create(ctx context.Context, user domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *userRepoMock) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return user, nil
}

func (m *userRepoMock) GetByUserName(ctx context.Context, userName string) (domain.User, error) {
	for _, user := range m.users {
		if user.UserName == userName {
			return user, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *userRepoMock) Exists(ctx context.Context, userName, email string) (bool, error) {
	for _, user := range m.users {
		if user.UserName == userName || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *userRepoMock) Update(ctx context.Context, user domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *userRepoMock) SetRefreshToken(ctx context.Context, id, token string) error {
	user, ok := m.users[id]
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	user.RefreshToken = token
	m.users[id] = user
	return nil
}

func (m *userRepoMock) GetPublicProfile(ctx context.Context, id string) (vidstream.PublicProfile, error) {
	user, ok := m.users[id]
	if !ok {
		return vidstream.PublicProfile{}, domain.NotFoundError{Resource: "user"}
	}
	return vidstream.PublicProfile{
		ID:       user.ID,
		UserName: user.UserName,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}, nil
}

func (m *userRepoMock) RecordWatch(ctx context.Context, userID, videoID string) error {
	m.watches = append(m.watches, userID+":"+videoID)
	return nil
}

type videoRepoMock struct {
	videos  map[string]domain.Video
	viewed  []string
	deleted []string
}

func newVideoRepoMock() *videoRepoMock {
	return &videoRepoMock{videos: make(map[string]domain.Video)}
}

func (m *videoRepoMock) Create(ctx context.Context, video domain.Video) error {
	m.videos[video.ID] = video
	return nil
}

func (m *videoRepoMock) Get(ctx context.Context, id string) (domain.Video, error) {
	video, ok := m.videos[id]
	if !ok {
		return domain.Video{}, domain.NotFoundError{Resource: "video"}
	}
	return video, nil
}

func (m *videoRepoMock) Update(ctx context.Context, video domain.Video) error {
	m.videos[video.ID] = video
	return nil
}

func (m *videoRepoMock) Delete(ctx context.Context, id string) error {
	delete(m.videos, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *videoRepoMock) TogglePublish(ctx context.Context, id string) (bool, error) {
	video, ok := m.videos[id]
	if !ok {
		return false, domain.NotFoundError{Resource: "video"}
	}
	video.IsPublished = !video.IsPublished
	m.videos[id] = video
	return video.IsPublished, nil
}

func (m *videoRepoMock) IncrementViews(ctx context.Context, id string) error {
	m.viewed = append(m.viewed, id)
	return nil
}

// commentRepoMock mirrors writes into the shared fake store so that
// read-back views see them, the way the real repository and adapter
// share one database.
type commentRepoMock struct {
	comments map[string]domain.Comment
	store    *fakeStore
}

func newCommentRepoMock(store *fakeStore) *commentRepoMock {
	return &commentRepoMock{comments: make(map[string]domain.Comment), store: store}
}

func (m *commentRepoMock) Create(ctx context.Context, comment domain.Comment) error {
	m.comments[comment.ID] = comment
	m.store.add("comments", view.Document{
		"id":       comment.ID,
		"video_id": comment.VideoID,
		"owner_id": comment.OwnerID,
		"content":  comment.Content,
	})
	return nil
}

func (m *commentRepoMock) Get(ctx context.Context, id string) (domain.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return domain.Comment{}, domain.NotFoundError{Resource: "comment"}
	}
	return comment, nil
}

func (m *commentRepoMock) Update(ctx context.Context, comment domain.Comment) error {
	m.comments[comment.ID] = comment
	for _, doc := range m.store.collections["comments"] {
		if doc["id"] == comment.ID {
			doc["content"] = comment.Content
		}
	}
	return nil
}

func (m *commentRepoMock) Delete(ctx context.Context, id string) error {
	delete(m.comments, id)
	_, _ = m.store.DeleteOne(ctx, "comments", []view.Condition{view.Eq("id", id)})
	return nil
}

type tweetRepoMock struct {
	tweets map[string]domain.Tweet
}

func newTweetRepoMock() *tweetRepoMock {
	return &tweetRepoMock{tweets: make(map[string]domain.Tweet)}
}

func (m *tweetRepoMock) Create(ctx context.Context, tweet domain.Tweet) error {
	m.tweets[tweet.ID] = tweet
	return nil
}

func (m *tweetRepoMock) Get(ctx context.Context, id string) (domain.Tweet, error) {
	tweet, ok := m.tweets[id]
	if !ok {
		return domain.Tweet{}, domain.NotFoundError{Resource: "tweet"}
	}
	return tweet, nil
}

func (m *tweetRepoMock) Update(ctx context.Context, tweet domain.Tweet) error {
	m.tweets[tweet.ID] = tweet
	return nil
}

func (m *tweetRepoMock) Delete(ctx context.Context, id string) error {
	delete(m.tweets, id)
	return nil
}

type playlistRepoMock struct {
	playlists map[string]domain.Playlist
	videos    map[string][]string
}

func newPlaylistRepoMock() *playlistRepoMock {
	return &playlistRepoMock{
		playlists: make(map[string]domain.Playlist),
		videos:    make(map[string][]string),
	}
}

func (m *playlistRepoMock) Create(ctx context.Context, playlist domain.Playlist) error {
	m.playlists[playlist.ID] = playlist
	return nil
}

func (m *playlistRepoMock) Get(ctx context.Context, id string) (domain.Playlist, error) {
	playlist, ok := m.playlists[id]
	if !ok {
		return domain.Playlist{}, domain.NotFoundError{Resource: "playlist"}
	}
	return playlist, nil
}

func (m *playlistRepoMock) Update(ctx context.Context, playlist domain.Playlist) error {
	m.playlists[playlist.ID] = playlist
	return nil
}

func (m *playlistRepoMock) Delete(ctx context.Context, id string) error {
	delete(m.playlists, id)
	return nil
}

func (m *playlistRepoMock) AddVideo(ctx context.Context, playlistID, videoID string) error {
	m.videos[playlistID] = append(m.videos[playlistID], videoID)
	return nil
}

func (m *playlistRepoMock) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	kept := m.videos[playlistID][:0]
	for _, id := range m.videos[playlistID] {
		if id != videoID {
			kept = append(kept, id)
		}
	}
	m.videos[playlistID] = kept
	return nil
}

type mediaMock struct {
	saveErr error
	saved   []string
	removed []string
}

func (m *mediaMock) Save(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	url := "http://media.local/" + kind + "/" + filename
	m.saved = append(m.saved, url)
	return url, nil
}

func (m *mediaMock) Remove(ctx context.Context, url string) error {
	m.removed = append(m.removed, url)
	return nil
}

type publisherMock struct {
	events []vidstream.Event
}

func (m *publisherMock) Publish(ctx context.Context, event vidstream.Event) error {
	m.events = append(m.events, event)
	return nil
}

type authMock struct {
	refreshFor map[string]string // token -> user id
}

func newAuthMock() *authMock {
	return &authMock{refreshFor: make(map[string]string)}
}

func (m *authMock) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (m *authMock) VerifyPassword(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

var tokenSeq int

func (m *authMock) IssueTokens(ctx context.Context, user domain.User) (string, string, error) {
	tokenSeq++
	access := fmt.Sprintf("access-%s-%d", user.ID, tokenSeq)
	refresh := fmt.Sprintf("refresh-%s-%d", user.ID, tokenSeq)
	m.refreshFor[refresh] = user.ID
	return access, refresh, nil
}

func (m *authMock) VerifyRefresh(ctx context.Context, token string) (string, error) {
	id, ok := m.refreshFor[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return id, nil
}
