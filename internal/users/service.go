package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/db"
	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
	"github.com/bebifresh/bebifresh-backend/pkg/security"
)

var userSortable = []string{"email", "first_name", "last_name", "role", "created_at"}

const minPasswordLength = 10

// Service exposes admin management of back-office operators.
type Service interface {
	Create(ctx context.Context, actorRole enums.MemberRole, input CreateInput) (*View, error)
	Update(ctx context.Context, actorRole enums.MemberRole, userID uuid.UUID, input UpdateInput) (*View, error)
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
	List(ctx context.Context, params pagination.Params, search string) (*ListView, error)
}

type service struct {
	repo Repository
	cfg  config.PasswordConfig
}

// NewService builds a user management service.
func NewService(repo Repository, cfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) Create(ctx context.Context, actorRole enums.MemberRole, input CreateInput) (*View, error) {
	if actorRole != enums.MemberRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins can create users")
	}

	details := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		details["email"] = "must be a valid email address"
	}
	if len(input.Password) < minPasswordLength {
		details["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLength)
	}
	if strings.TrimSpace(input.FirstName) == "" {
		details["first_name"] = "is required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		details["last_name"] = "is required"
	}
	if !input.Role.IsValid() {
		details["role"] = "is invalid"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	hash, err := security.HashPassword(input.Password, s.cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         input.Role,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered").
				WithDetails(map[string]string{"email": "already in use"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	view := userView(created)
	return &view, nil
}

func (s *service) Update(ctx context.Context, actorRole enums.MemberRole, userID uuid.UUID, input UpdateInput) (*View, error) {
	if input.Role != nil || input.IsActive != nil {
		if actorRole != enums.MemberRoleAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins can change roles or status")
		}
	}

	updates := map[string]any{}
	details := map[string]string{}

	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			details["first_name"] = "is required"
		} else {
			updates["first_name"] = strings.TrimSpace(*input.FirstName)
		}
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			details["last_name"] = "is required"
		} else {
			updates["last_name"] = strings.TrimSpace(*input.LastName)
		}
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			details["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLength)
		} else {
			hash, err := security.HashPassword(*input.Password, s.cfg)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
			}
			updates["password_hash"] = hash
		}
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			details["role"] = "is invalid"
		} else {
			updates["role"] = *input.Role
		}
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, userID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
		}
	}
	return s.Get(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	user, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	view := userView(user)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, search string) (*ListView, error) {
	params = pagination.Normalize(params, userSortable, "email")
	rows, total, err := s.repo.List(ctx, params, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	view := &ListView{
		Users: make([]View, 0, len(rows)),
		Meta:  pagination.MetaFor(params, total),
	}
	for i := range rows {
		view.Users = append(view.Users, userView(&rows[i]))
	}
	return view, nil
}
