package ports

import (
	"context"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user account.
type CreateUserInput struct {
	Username   string
	Password   string
	GivenName  string
	Surname    string
	NationalID string
	Role       domain.Role
	ProjectID  *string // optional assignment at creation time
}

// UserService defines the administrative operations on user accounts.
// Self-service (a caller editing their own account) is out of scope; the
// self-action guard rejects it.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput, caller domain.Caller) (*domain.User, error)
	List(ctx context.Context, caller domain.Caller) ([]*domain.User, error)
	UpdateRole(ctx context.Context, targetID string, role domain.Role, caller domain.Caller) (*domain.User, error)
	AssignProject(ctx context.Context, targetID string, projectID *string, caller domain.Caller) (*domain.User, error)
	Delete(ctx context.Context, targetID string, caller domain.Caller) error
}

// AuthService authenticates callers and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
