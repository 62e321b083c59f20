package auth

import (
	"github.com/google/uuid"

	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries a rotation request. The access token may be expired;
// only its signature and session binding are checked.
type RefreshInput struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the issued credential set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// SessionView pairs tokens with the authenticated identity.
type SessionView struct {
	Tokens TokenPair        `json:"tokens"`
	UserID uuid.UUID        `json:"user_id"`
	Email  string           `json:"email"`
	Role   enums.MemberRole `json:"role"`
}
