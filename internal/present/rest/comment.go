package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream/internal/present/rest/presenter"
)

type commentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) handleListComments(c echo.Context) error {
	ctx := c.Request().Context()

	videoID, err := pathID(c, "videoId")
	if err != nil {
		return presenter.Error(c, err)
	}

	result, err := h.comments.ListByVideo(ctx, videoID, h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "comments", result)
}

func (h *Handler) handleAddComment(c echo.Context) error {
	ctx := c.Request().Context()

	videoID, err := pathID(c, "videoId")
	if err != nil {
		return presenter.Error(c, err)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	doc, err := h.comments.Add(ctx, requesterID(c), videoID, req.Content)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, "comment added", doc)
}

func (h *Handler) handleUpdateComment(c echo.Context) error {
	ctx := c.Request().Context()

	commentID, err := pathID(c, "commentId")
	if err != nil {
		return presenter.Error(c, err)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	doc, err := h.comments.Update(ctx, requesterID(c), commentID, req.Content)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "comment updated", doc)
}

func (h *Handler) handleDeleteComment(c echo.Context) error {
	ctx := c.Request().Context()

	commentID, err := pathID(c, "commentId")
	if err != nil {
		return presenter.Error(c, err)
	}

	if err := h.comments.Delete(ctx, requesterID(c), commentID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "comment deleted", nil)
}
