package ports

import (
	"context"
	"time"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a new project.
// State is not an input: new projects always start enabled.
type CreateProjectInput struct {
	Name      string
	StartDate time.Time
	CloseDate *time.Time // optional
}

// UpdateProjectInput carries the editable project fields.
type UpdateProjectInput struct {
	ID        string
	Name      string
	StartDate time.Time
	CloseDate *time.Time // optional
}

// ProjectService defines use-case operations for projects. Every mutation
// takes the acting caller explicitly and is authorized before any write.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput, caller domain.Caller) (*domain.Project, error)
	Get(ctx context.Context, id string, caller domain.Caller) (*domain.Project, error)
	List(ctx context.Context, caller domain.Caller) ([]*domain.Project, error)
	Update(ctx context.Context, input UpdateProjectInput, caller domain.Caller) (*domain.Project, error)
	// SetState applies a strict toggle: setting the state the project is
	// already in is rejected, never silently re-applied.
	SetState(ctx context.Context, id string, state domain.ProjectState, caller domain.Caller) (*domain.Project, error)
	Delete(ctx context.Context, id string, caller domain.Caller) error
}
