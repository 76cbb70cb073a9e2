package rest

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream/internal/present/rest/presenter"
	"github.com/vidstream/vidstream/view"
)

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleCreatePlaylist(c echo.Context) error {
	ctx := c.Request().Context()

	var req playlistRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	playlist, err := h.playlists.Create(ctx, requesterID(c), req.Name, req.Description)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, "playlist created", playlist)
}

func (h *Handler) handleGetPlaylist(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "playlistId")
	if err != nil {
		return presenter.Error(c, err)
	}

	doc, err := h.playlists.Get(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "playlist", doc)
}

func (h *Handler) handleUserPlaylists(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := pathID(c, "userId")
	if err != nil {
		return presenter.Error(c, err)
	}

	result, err := h.playlists.ListByUser(ctx, userID, h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "playlists", result)
}

func (h *Handler) handleAddPlaylistVideo(c echo.Context) error {
	return h.playlistVideo(c, h.playlists.AddVideo, "video added to playlist")
}

func (h *Handler) handleRemovePlaylistVideo(c echo.Context) error {
	return h.playlistVideo(c, h.playlists.RemoveVideo, "video removed from playlist")
}

func (h *Handler) playlistVideo(
	c echo.Context,
	op func(ctx context.Context, actor, playlistID, videoID view.ID) (view.Document, error),
	message string,
) error {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		return presenter.Error(c, err)
	}
	videoID, err := pathID(c, "videoId")
	if err != nil {
		return presenter.Error(c, err)
	}

	doc, err := op(c.Request().Context(), requesterID(c), playlistID, videoID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, message, doc)
}

func (h *Handler) handleUpdatePlaylist(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "playlistId")
	if err != nil {
		return presenter.Error(c, err)
	}

	var req playlistRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	doc, err := h.playlists.Update(ctx, requesterID(c), id, req.Name, req.Description)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "playlist updated", doc)
}

func (h *Handler) handleDeletePlaylist(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "playlistId")
	if err != nil {
		return presenter.Error(c, err)
	}

	if err := h.playlists.Delete(ctx, requesterID(c), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "playlist deleted", nil)
}
