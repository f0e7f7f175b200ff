package ports

import (
	"context"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	// UpdateProject sets or clears (nil) the user's assigned project.
	UpdateProject(ctx context.Context, id string, projectID *string) error
	Delete(ctx context.Context, id string) error
}
