package rest

import (
	"io"
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream/internal/present/rest/presenter"
	"github.com/vidstream/vidstream/internal/usecase"
)

// formFile opens an optional multipart file. A missing part yields a nil
// reader, not an error; required parts are enforced by the use case.
func formFile(c echo.Context, name string) (io.Reader, string, func(), error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, "", func() {}, nil
	}
	return openPart(fh)
}

func openPart(fh *multipart.FileHeader) (io.Reader, string, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", func() {}, err
	}
	return f, fh.Filename, func() { f.Close() }, nil
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	avatar, avatarName, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid avatar upload")
	}
	defer closeAvatar()

	cover, coverName, closeCover, err := formFile(c, "coverImage")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid cover upload")
	}
	defer closeCover()

	user, err := h.users.Register(ctx, usecase.RegisterInput{
		UserName:   c.FormValue("userName"),
		Email:      c.FormValue("email"),
		FullName:   c.FormValue("fullName"),
		Password:   c.FormValue("password"),
		AvatarName: avatarName,
		Avatar:     avatar,
		CoverName:  coverName,
		Cover:      cover,
	})
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.Created(c, "user registered", user)
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	user, access, refresh, err := h.users.Login(ctx, req.UserName, req.Password)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, "logged in", echo.Map{
		"user":         user,
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleRefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return presenter.BadRequestMessage(c, "refreshToken is required")
	}

	access, refresh, err := h.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, "token refreshed", echo.Map{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.users.Logout(ctx, requesterID(c)); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "logged out", nil)
}

func (h *Handler) handleCurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.users.Me(ctx, requesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "current user", user)
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *Handler) handleUpdateAccount(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	user, err := h.users.UpdateProfile(ctx, requesterID(c), req.FullName, req.Email)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "account updated", user)
}

func (h *Handler) handleUpdateAvatar(c echo.Context) error {
	ctx := c.Request().Context()

	avatar, name, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid avatar upload")
	}
	defer closeAvatar()

	user, err := h.users.UpdateAvatar(ctx, requesterID(c), name, avatar)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "avatar updated", user)
}

func (h *Handler) handleUpdateCover(c echo.Context) error {
	ctx := c.Request().Context()

	cover, name, closeCover, err := formFile(c, "coverImage")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid cover upload")
	}
	defer closeCover()

	user, err := h.users.UpdateCover(ctx, requesterID(c), name, cover)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "cover image updated", user)
}

func (h *Handler) handleChannelProfile(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.users.ChannelProfile(ctx, c.Param("userName"), requesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "channel profile", profile)
}

func (h *Handler) handleWatchHistory(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.users.WatchHistory(ctx, requesterID(c), h.page(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, "watch history", result)
}
