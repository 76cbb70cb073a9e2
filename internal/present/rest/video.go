package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream/internal/present/rest/presenter"
	"github.com/vidstream/vidstream/internal/usecase"
)

func (h *Handler) handleListVideos(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.videos.List(ctx, c.QueryParam("query"), h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "videos", result)
}

func (h *Handler) handlePublishVideo(c echo.Context) error {
	ctx := c.Request().Context()

	video, videoName, closeVideo, err := formFile(c, "videoFile")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid video upload")
	}
	defer closeVideo()

	thumb, thumbName, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid thumbnail upload")
	}
	defer closeThumb()

	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	published, err := h.videos.Publish(ctx, requesterID(c), usecase.PublishVideoInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		VideoName:   videoName,
		Video:       video,
		ThumbName:   thumbName,
		Thumbnail:   thumb,
		Duration:    duration,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, "video published", published)
}

func (h *Handler) handleGetVideo(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "videoId")
	if err != nil {
		return presenter.Error(c, err)
	}

	doc, err := h.videos.Get(ctx, id, requesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "video", doc)
}

func (h *Handler) handleUpdateVideo(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "videoId")
	if err != nil {
		return presenter.Error(c, err)
	}

	thumb, thumbName, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid thumbnail upload")
	}
	defer closeThumb()

	video, err := h.videos.Update(ctx, requesterID(c), id, usecase.UpdateVideoInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		ThumbName:   thumbName,
		Thumbnail:   thumb,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "video updated", video)
}

func (h *Handler) handleDeleteVideo(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "videoId")
	if err != nil {
		return presenter.Error(c, err)
	}

	if err := h.videos.Delete(ctx, requesterID(c), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "video deleted", nil)
}

func (h *Handler) handleTogglePublish(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "videoId")
	if err != nil {
		return presenter.Error(c, err)
	}

	published, err := h.videos.TogglePublish(ctx, requesterID(c), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "publish status toggled", echo.Map{"isPublished": published})
}
