package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream/internal/present/rest/presenter"
)

func (h *Handler) handleChannelStats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.dashboard.ChannelStats(ctx, requesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "channel stats", stats)
}

func (h *Handler) handleChannelVideos(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.dashboard.ChannelVideos(ctx, requesterID(c), h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "channel videos", result)
}
