package rest

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream/internal/present/rest/presenter"
	"github.com/vidstream/vidstream/view"
)

func (h *Handler) handleToggleVideoLike(c echo.Context) error {
	return h.toggleLike(c, "videoId", h.likes.ToggleVideo)
}

func (h *Handler) handleToggleCommentLike(c echo.Context) error {
	return h.toggleLike(c, "commentId", h.likes.ToggleComment)
}

func (h *Handler) handleToggleTweetLike(c echo.Context) error {
	return h.toggleLike(c, "tweetId", h.likes.ToggleTweet)
}

func (h *Handler) toggleLike(
	c echo.Context,
	param string,
	toggle func(ctx context.Context, actor, target view.ID) (view.ToggleState, error),
) error {
	target, err := pathID(c, param)
	if err != nil {
		return presenter.Error(c, err)
	}

	state, err := toggle(c.Request().Context(), requesterID(c), target)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "like toggled", echo.Map{"state": state})
}

func (h *Handler) handleLikedVideos(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.likes.LikedVideos(ctx, requesterID(c), h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "liked videos", result)
}

func (h *Handler) handleToggleSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	channelID, err := pathID(c, "channelId")
	if err != nil {
		return presenter.Error(c, err)
	}

	state, err := h.subscriptions.Toggle(ctx, requesterID(c), channelID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "subscription toggled", echo.Map{"state": state})
}

func (h *Handler) handleSubscribers(c echo.Context) error {
	ctx := c.Request().Context()

	channelID, err := pathID(c, "channelId")
	if err != nil {
		return presenter.Error(c, err)
	}

	result, err := h.subscriptions.Subscribers(ctx, channelID, h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "subscribers", result)
}

func (h *Handler) handleSubscribedChannels(c echo.Context) error {
	ctx := c.Request().Context()

	subscriberID, err := pathID(c, "subscriberId")
	if err != nil {
		return presenter.Error(c, err)
	}

	result, err := h.subscriptions.SubscribedChannels(ctx, subscriberID, h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "subscribed channels", result)
}
