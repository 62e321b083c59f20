package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/bebifresh/bebifresh-backend/pkg/auth"
	"github.com/bebifresh/bebifresh-backend/pkg/auth/session"
	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/security"
)

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error
}

type sessionRotator interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service exposes login, refresh rotation, and logout.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*SessionView, error)
	Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	users    userFinder
	sessions sessionRotator
	cfg      config.JWTConfig
	now      func() time.Time
}

// NewService builds the auth service.
func NewService(users userFinder, sessions sessionRotator, cfg config.JWTConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{users: users, sessions: sessions, cfg: cfg, now: time.Now}, nil
}

var errBadCredentials = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")

func (s *service) Login(ctx context.Context, input LoginInput) (*SessionView, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return nil, errBadCredentials
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, errBadCredentials
	}

	accessID := session.NewAccessID()
	now := s.now()
	accessToken, err := pkgauth.MintAccessToken(s.cfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	if err := s.users.Update(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}

	return &SessionView{
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    s.cfg.ExpirationMinutes * 60,
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func (s *service) Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.cfg, input.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	accessToken, err := pkgauth.MintAccessToken(s.cfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Role:   claims.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    s.cfg.ExpirationMinutes * 60,
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}
