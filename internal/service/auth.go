package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

var tracer = otel.Tracer("auth")

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserName string `json:"userName,omitempty"`
	Kind     string `json:"kind"`
}

// AuthService hashes passwords and issues HS256 token pairs. Access
// tokens are short-lived; refresh tokens are long-lived and rotated on
// every use.
type AuthService struct {
	config domain.Config
}

func NewAuthService(config domain.Config) *AuthService {
	return &AuthService{config: config}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) IssueTokens(ctx context.Context, user domain.User) (string, string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.IssueTokens")
	defer span.End()

	now := time.Now()

	access, err := s.sign(tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.SiteName,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.AccessTokenExpiry) * time.Minute)),
			ID:        view.NewID().String(),
		},
		UserName: user.UserName,
		Kind:     kindAccess,
	})
	if err != nil {
		span.RecordError(err)
		return "", "", err
	}

	refresh, err := s.sign(tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.SiteName,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.RefreshTokenExpiry) * 24 * time.Hour)),
			ID:        view.NewID().String(),
		},
		Kind: kindRefresh,
	})
	if err != nil {
		span.RecordError(err)
		return "", "", err
	}

	return access, refresh, nil
}

// VerifyAccess validates an access token and returns the subject.
func (s *AuthService) VerifyAccess(ctx context.Context, token string) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.VerifyAccess")
	defer span.End()

	userID, err := s.verify(token, kindAccess)
	if err != nil {
		span.RecordError(errors.Wrap(err, "access token validation failed"))
		return "", err
	}
	return userID, nil
}

func (s *AuthService) VerifyRefresh(ctx context.Context, token string) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.VerifyRefresh")
	defer span.End()

	userID, err := s.verify(token, kindRefresh)
	if err != nil {
		span.RecordError(errors.Wrap(err, "refresh token validation failed"))
		return "", err
	}
	return userID, nil
}

func (s *AuthService) sign(claims tokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func (s *AuthService) verify(token, kind string) (string, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(s.config.TokenSecret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.config.SiteName),
	)
	if err != nil {
		return "", err
	}

	if claims.Kind != kind {
		return "", fmt.Errorf("unexpected token kind: %s", claims.Kind)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}
