package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agroplan/backoffice/internal/api/metrics"
	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

const entityProject = "project"

// ProjectService implements project CRUD and lifecycle transitions.
type ProjectService struct {
	repo    ports.ProjectRepository
	gateway *Gateway
	audit   ports.AuditRecorder
	cache   ProjectStateCache
	logger  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, gateway *Gateway, audit ports.AuditRecorder, cache ProjectStateCache, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, gateway: gateway, audit: audit, cache: cache, logger: logger}
}

// Create registers a new project. New projects always start enabled.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput, caller domain.Caller) (*domain.Project, error) {
	if err := s.gateway.Authorize(caller, domain.ActionCreateProject, Target{}); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, domain.ErrValidation
	}
	if err := domain.ValidateDates(input.StartDate, input.CloseDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:        uuid.NewString(),
		Name:      input.Name,
		StartDate: input.StartDate,
		CloseDate: input.CloseDate,
		State:     domain.StateEnabled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionCreateProject), "error").Inc()
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionCreateProject), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionCreateProject, entityProject, project.ID)
	s.logger.Info().Str("project_id", project.ID).Str("name", project.Name).Msg("project created")
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string, caller domain.Caller) (*domain.Project, error) {
	if err := s.gateway.Authorize(caller, domain.ActionViewProject, Target{}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, caller domain.Caller) ([]*domain.Project, error) {
	if err := s.gateway.Authorize(caller, domain.ActionViewProject, Target{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Update edits the project's name and dates. Gated on the project being
// enabled.
func (s *ProjectService) Update(ctx context.Context, input ports.UpdateProjectInput, caller domain.Caller) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.Authorize(caller, domain.ActionEditProject, Target{Project: project}); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, domain.ErrValidation
	}
	if err := domain.ValidateDates(input.StartDate, input.CloseDate); err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.StartDate = input.StartDate
	project.CloseDate = input.CloseDate
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionEditProject), "error").Inc()
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionEditProject), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionEditProject, entityProject, project.ID)
	return project, nil
}

// SetState toggles the project between enabled and closed. Re-applying the
// current state is rejected: re-closing a closed project surfaces
// ErrProjectClosed, re-enabling an enabled one ErrInvalidTransition.
func (s *ProjectService) SetState(ctx context.Context, id string, state domain.ProjectState, caller domain.Caller) (*domain.Project, error) {
	if !state.IsValid() {
		return nil, domain.ErrValidation
	}
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Role check only: the lifecycle gate must not block reopening a closed
	// project.
	if err := s.gateway.Authorize(caller, domain.ActionSetProjectState, Target{}); err != nil {
		return nil, err
	}
	if !project.State.CanTransitionTo(state) {
		if project.State == domain.StateClosed && state == domain.StateClosed {
			return nil, domain.ErrProjectClosed
		}
		return nil, domain.ErrInvalidTransition
	}

	project.State = state
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionSetProjectState), "error").Inc()
		return nil, err
	}
	s.invalidateState(ctx, project.ID)

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionSetProjectState), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionSetProjectState, entityProject, project.ID)
	s.logger.Info().Str("project_id", project.ID).Str("state", string(state)).Msg("project state changed")
	return project, nil
}

// Delete removes the project. Under the default policy this is allowed
// regardless of state; only the role gate applies.
func (s *ProjectService) Delete(ctx context.Context, id string, caller domain.Caller) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gateway.Authorize(caller, domain.ActionDeleteProject, Target{Project: project}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionDeleteProject), "error").Inc()
		return err
	}
	s.invalidateState(ctx, id)

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionDeleteProject), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionDeleteProject, entityProject, id)
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) invalidateState(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("project_id", id).Msg("failed to invalidate state cache")
	}
}
