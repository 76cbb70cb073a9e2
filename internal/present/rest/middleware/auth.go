package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/internal/present/rest/presenter"
	"github.com/vidstream/vidstream/internal/service"
	"github.com/vidstream/vidstream/internal/usecase"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth  *service.AuthService
	users usecase.UserRepository
	cache *gocache.Cache
}

func NewAuthMiddleware(
	auth *service.AuthService,
	users usecase.UserRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		auth:  auth,
		users: users,
		cache: gocache.New(time.Minute, 5*time.Minute),
	}
}

// IdentifyRequester resolves the Bearer token, if any, into the
// requester's id and public profile on the request context. Requests
// without a valid token pass through anonymous; RequireAuth is the gate.
func (s *AuthMiddleware) IdentifyRequester(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyRequester")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			authType, token := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skipCheckAuthorization
			}

			userID, ok := s.cachedSubject(token)
			if !ok {
				var err error
				userID, err = s.auth.VerifyAccess(ctx, token)
				if err != nil {
					span.RecordError(errors.Wrap(err, "access token rejected"))
					goto skipCheckAuthorization
				}
				s.cache.SetDefault(token, userID)
			}

			ctx = context.WithValue(ctx, domain.RequesterIdCtxKey, userID)
			span.SetAttributes(attribute.String("RequesterId", userID))

			if profile, err := s.users.GetPublicProfile(ctx, userID); err == nil {
				ctx = context.WithValue(ctx, domain.RequesterProfileCtxKey, profile)
			}
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireAuth rejects requests that IdentifyRequester left anonymous.
func (s *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if _, ok := ctx.Value(domain.RequesterIdCtxKey).(string); !ok {
			return presenter.Unauthorized(c, "authentication required")
		}
		return next(c)
	}
}

func (s *AuthMiddleware) cachedSubject(token string) (string, bool) {
	v, ok := s.cache.Get(token)
	if !ok {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok
}
