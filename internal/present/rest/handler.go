package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/internal/present/rest/middleware"
	"github.com/vidstream/vidstream/internal/usecase"
	"github.com/vidstream/vidstream/view"
)

// EventStreamer feeds realtime events to the websocket endpoint. It must
// return when ctx is cancelled and must never close output.
type EventStreamer interface {
	Realtime(ctx context.Context, input <-chan []string, output chan<- vidstream.Event)
}

type Handler struct {
	config        domain.Config
	users         *usecase.UserUsecase
	videos        *usecase.VideoUsecase
	comments      *usecase.CommentUsecase
	likes         *usecase.LikeUsecase
	subscriptions *usecase.SubscriptionUsecase
	playlists     *usecase.PlaylistUsecase
	tweets        *usecase.TweetUsecase
	dashboard     *usecase.DashboardUsecase
	signal        EventStreamer
}

func NewHandler(
	config domain.Config,
	users *usecase.UserUsecase,
	videos *usecase.VideoUsecase,
	comments *usecase.CommentUsecase,
	likes *usecase.LikeUsecase,
	subscriptions *usecase.SubscriptionUsecase,
	playlists *usecase.PlaylistUsecase,
	tweets *usecase.TweetUsecase,
	dashboard *usecase.DashboardUsecase,
	signal EventStreamer,
) *Handler {
	return &Handler{
		config:        config,
		users:         users,
		videos:        videos,
		comments:      comments,
		likes:         likes,
		subscriptions: subscriptions,
		playlists:     playlists,
		tweets:        tweets,
		dashboard:     dashboard,
		signal:        signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	e.GET("/healthz", h.handleHealthz)
	e.GET("/realtime", h.handleRealtime)

	api := e.Group("/api/v1", auth.IdentifyRequester)

	api.POST("/users/register", h.handleRegister)
	api.POST("/users/login", h.handleLogin)
	api.POST("/users/refresh-token", h.handleRefreshToken)
	api.GET("/users/c/:userName", h.handleChannelProfile)

	authed := api.Group("", auth.RequireAuth)
	authed.POST("/users/logout", h.handleLogout)
	authed.GET("/users/current", h.handleCurrentUser)
	authed.PATCH("/users/update-account", h.handleUpdateAccount)
	authed.PATCH("/users/avatar", h.handleUpdateAvatar)
	authed.PATCH("/users/cover-image", h.handleUpdateCover)
	authed.GET("/users/history", h.handleWatchHistory)

	api.GET("/videos", h.handleListVideos)
	api.GET("/videos/:videoId", h.handleGetVideo)
	authed.POST("/videos", h.handlePublishVideo)
	authed.PATCH("/videos/:videoId", h.handleUpdateVideo)
	authed.DELETE("/videos/:videoId", h.handleDeleteVideo)
	authed.PATCH("/videos/toggle/publish/:videoId", h.handleTogglePublish)

	api.GET("/comments/:videoId", h.handleListComments)
	authed.POST("/comments/:videoId", h.handleAddComment)
	authed.PATCH("/comments/c/:commentId", h.handleUpdateComment)
	authed.DELETE("/comments/c/:commentId", h.handleDeleteComment)

	authed.POST("/likes/toggle/v/:videoId", h.handleToggleVideoLike)
	authed.POST("/likes/toggle/c/:commentId", h.handleToggleCommentLike)
	authed.POST("/likes/toggle/t/:tweetId", h.handleToggleTweetLike)
	authed.GET("/likes/videos", h.handleLikedVideos)

	authed.POST("/subscriptions/c/:channelId", h.handleToggleSubscription)
	api.GET("/subscriptions/c/:channelId", h.handleSubscribers)
	api.GET("/subscriptions/u/:subscriberId", h.handleSubscribedChannels)

	authed.POST("/playlist", h.handleCreatePlaylist)
	api.GET("/playlist/:playlistId", h.handleGetPlaylist)
	api.GET("/playlist/user/:userId", h.handleUserPlaylists)
	authed.PATCH("/playlist/add/:videoId/:playlistId", h.handleAddPlaylistVideo)
	authed.PATCH("/playlist/remove/:videoId/:playlistId", h.handleRemovePlaylistVideo)
	authed.PATCH("/playlist/:playlistId", h.handleUpdatePlaylist)
	authed.DELETE("/playlist/:playlistId", h.handleDeletePlaylist)

	authed.POST("/tweets", h.handleCreateTweet)
	api.GET("/tweets/user/:userId", h.handleUserTweets)
	authed.PATCH("/tweets/:tweetId", h.handleUpdateTweet)
	authed.DELETE("/tweets/:tweetId", h.handleDeleteTweet)

	authed.GET("/dashboard/stats", h.handleChannelStats)
	authed.GET("/dashboard/videos", h.handleChannelVideos)
}

func (h *Handler) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "site": h.config.SiteName})
}

// requesterID returns the authenticated actor, or the empty id for
// anonymous requests.
func requesterID(c echo.Context) view.ID {
	id, _ := c.Request().Context().Value(domain.RequesterIdCtxKey).(string)
	return view.ID(id)
}

// pathID parses a path parameter as an identifier.
func pathID(c echo.Context, name string) (view.ID, error) {
	return view.ParseID(c.Param(name))
}

func (h *Handler) page(c echo.Context) view.Page {
	return view.NormalizePage(c.QueryParam("page"), c.QueryParam("limit"), h.config.MaxPageSize)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	// Cancellation is the only shutdown signal. The event channels are
	// never closed; a sender blocked mid-disconnect unblocks via ctx.
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan vidstream.Event)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{})

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				close(quit)
				return
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Channels:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, "Socket subscribe",
					slog.String("channels", strings.Join(req.Channels, ",")),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
