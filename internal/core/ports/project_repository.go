package ports

import (
	"context"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// Update replaces the mutable fields (name, dates, state) of the stored
	// project in a single write.
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}
