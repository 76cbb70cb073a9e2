package usecase

import (
	"context"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

type PlaylistUsecase struct {
	repo   PlaylistRepository
	videos VideoRepository
	store  view.Store
}

func NewPlaylistUsecase(repo PlaylistRepository, videos VideoRepository, store view.Store) *PlaylistUsecase {
	return &PlaylistUsecase{repo: repo, videos: videos, store: store}
}

func (uc *PlaylistUsecase) Create(ctx context.Context, actor view.ID, name, description string) (domain.Playlist, error) {
	if name == "" || description == "" {
		return domain.Playlist{}, domain.ValidationError{Reason: "name and description are required"}
	}

	playlist := domain.Playlist{
		ID:          view.NewID().String(),
		OwnerID:     actor.String(),
		Name:        name,
		Description: description,
	}
	if err := uc.repo.Create(ctx, playlist); err != nil {
		return domain.Playlist{}, err
	}
	return playlist, nil
}

// videosJoin resolves a playlist's videos through the link table in
// insertion order, each with its owner's public profile.
func videosJoin() view.Join {
	return view.Join{
		From:       "id",
		Collection: "playlist_videos",
		To:         "playlist_id",
		As:         "videos",
		Lift:       "video",
		Pipeline: view.Sub().
			SortBy("position", false).
			Join(view.Join{
				From:       "video_id",
				Collection: "videos",
				To:         "id",
				As:         "video",
				One:        true,
				Pipeline:   view.Sub().Join(ownerJoin()).Project(videoViewFields...),
			}),
	}
}

var playlistViewFields = []string{"id", "name", "description", "created_at", "owner", "videos", "video_count"}

// Get returns one playlist view with its videos and owner resolved.
func (uc *PlaylistUsecase) Get(ctx context.Context, id view.ID) (view.Document, error) {
	docs, err := uc.playlistPipeline().
		Filter("id", id.String()).
		Execute(ctx, uc.store)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.NotFoundError{Resource: "playlist"}
	}
	return docs[0], nil
}

// ListByUser returns a user's playlists, newest first.
func (uc *PlaylistUsecase) ListByUser(ctx context.Context, userID view.ID, pg view.Page) (*view.Result, error) {
	return uc.playlistPipeline().
		Filter("owner_id", userID.String()).
		ExecutePage(ctx, uc.store, pg)
}

func (uc *PlaylistUsecase) playlistPipeline() *view.Pipeline {
	return view.From("playlists").
		Join(ownerJoin()).
		Join(videosJoin()).
		Derive(view.Count("video_count", "videos")).
		Project(playlistViewFields...)
}

func (uc *PlaylistUsecase) AddVideo(ctx context.Context, actor, playlistID, videoID view.ID) (view.Document, error) {
	if err := uc.ownedPlaylist(ctx, actor, playlistID); err != nil {
		return nil, err
	}
	if _, err := uc.videos.Get(ctx, videoID.String()); err != nil {
		return nil, err
	}

	if err := uc.repo.AddVideo(ctx, playlistID.String(), videoID.String()); err != nil {
		return nil, err
	}
	return uc.Get(ctx, playlistID)
}

func (uc *PlaylistUsecase) RemoveVideo(ctx context.Context, actor, playlistID, videoID view.ID) (view.Document, error) {
	if err := uc.ownedPlaylist(ctx, actor, playlistID); err != nil {
		return nil, err
	}

	if err := uc.repo.RemoveVideo(ctx, playlistID.String(), videoID.String()); err != nil {
		return nil, err
	}
	return uc.Get(ctx, playlistID)
}

func (uc *PlaylistUsecase) Update(ctx context.Context, actor, id view.ID, name, description string) (view.Document, error) {
	if name == "" || description == "" {
		return nil, domain.ValidationError{Reason: "name and description are required"}
	}
	if err := uc.ownedPlaylist(ctx, actor, id); err != nil {
		return nil, err
	}

	playlist, err := uc.repo.Get(ctx, id.String())
	if err != nil {
		return nil, err
	}
	playlist.Name = name
	playlist.Description = description
	if err := uc.repo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

func (uc *PlaylistUsecase) Delete(ctx context.Context, actor, id view.ID) error {
	if err := uc.ownedPlaylist(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id.String())
}

func (uc *PlaylistUsecase) ownedPlaylist(ctx context.Context, actor, id view.ID) error {
	playlist, err := uc.repo.Get(ctx, id.String())
	if err != nil {
		return err
	}
	if playlist.OwnerID != actor.String() {
		return domain.PermissionError{Action: "modify playlist"}
	}
	return nil
}
