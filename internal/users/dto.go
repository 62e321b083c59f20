package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

// CreateInput carries an admin user creation.
type CreateInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      enums.MemberRole
}

// UpdateInput carries a partial user update; nil fields are left untouched.
// Role and IsActive changes require the acting user to be an admin.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Password  *string
	Role      *enums.MemberRole
	IsActive  *bool
}

// View is the rendered user; the password hash never leaves the service.
type View struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Role        enums.MemberRole `json:"role"`
	IsActive    bool             `json:"is_active"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ListView pairs a page of users with pagination metadata.
type ListView struct {
	Users []View          `json:"users"`
	Meta  pagination.Meta `json:"meta"`
}

func userView(user *models.User) View {
	return View{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
