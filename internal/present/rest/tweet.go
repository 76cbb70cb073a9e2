package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream/internal/present/rest/presenter"
)

type tweetRequest struct {
	Content string `json:"content"`
}

func (h *Handler) handleCreateTweet(c echo.Context) error {
	ctx := c.Request().Context()

	var req tweetRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	tweet, err := h.tweets.Create(ctx, requesterID(c), req.Content)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, "tweet created", tweet)
}

func (h *Handler) handleUserTweets(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := pathID(c, "userId")
	if err != nil {
		return presenter.Error(c, err)
	}

	result, err := h.tweets.ListByUser(ctx, userID, h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "tweets", result)
}

func (h *Handler) handleUpdateTweet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "tweetId")
	if err != nil {
		return presenter.Error(c, err)
	}

	var req tweetRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	tweet, err := h.tweets.Update(ctx, requesterID(c), id, req.Content)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "tweet updated", tweet)
}

func (h *Handler) handleDeleteTweet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "tweetId")
	if err != nil {
		return presenter.Error(c, err)
	}

	if err := h.tweets.Delete(ctx, requesterID(c), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "tweet deleted", nil)
}
