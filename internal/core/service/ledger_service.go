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

// ProjectStateCache abstracts the short-TTL project-state cache (Redis)
// consulted on the ledger write path before falling back to the repository.
type ProjectStateCache interface {
	// Get returns the cached state and whether the key was present.
	Get(ctx context.Context, projectID string) (domain.ProjectState, bool, error)
	Set(ctx context.Context, projectID string, state domain.ProjectState) error
	Invalidate(ctx context.Context, projectID string) error
}

// LedgerService orchestrates authorization and amount computation around the
// CRUD of one ledger kind. Labor, materials, and action plans each get their
// own instance sharing this implementation.
type LedgerService struct {
	kind     domain.LedgerKind
	repo     ports.LedgerRepository
	projects ports.ProjectRepository
	gateway  *Gateway
	audit    ports.AuditRecorder
	cache    ProjectStateCache
	logger   zerolog.Logger
}

func NewLedgerService(
	kind domain.LedgerKind,
	repo ports.LedgerRepository,
	projects ports.ProjectRepository,
	gateway *Gateway,
	audit ports.AuditRecorder,
	cache ProjectStateCache,
	logger zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		kind:     kind,
		repo:     repo,
		projects: projects,
		gateway:  gateway,
		audit:    audit,
		cache:    cache,
		logger:   logger,
	}
}

// List returns the project's lines for this ledger kind plus their derived
// total. The total is computed on every read, never stored.
func (s *LedgerService) List(ctx context.Context, projectID string, caller domain.Caller) (*ports.LedgerResult, error) {
	if err := s.gateway.Authorize(caller, domain.ActionViewProject, Target{}); err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	lines, err := s.repo.ListByProject(ctx, s.kind, projectID)
	if err != nil {
		return nil, err
	}
	return &ports.LedgerResult{Lines: lines, Total: domain.ComputeTotal(lines)}, nil
}

// Create adds a line to the project's ledger. The amount is derived from the
// supplied fields before the single persistence write.
func (s *LedgerService) Create(ctx context.Context, projectID string, fields ports.LineFields, caller domain.Caller) (*domain.LedgerLine, error) {
	project, err := s.gateProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.Authorize(caller, domain.ActionCreateLine, Target{Project: project}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	line := &domain.LedgerLine{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Kind:      s.kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fields.ApplyTo(line)
	line.Recompute()

	if err := s.repo.Insert(ctx, line); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionCreateLine), "error").Inc()
		s.logger.Error().Err(err).Str("project_id", projectID).Msg("failed to insert ledger line")
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionCreateLine), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionCreateLine, s.entityKind(), line.ID)
	s.logger.Info().
		Str("line_id", line.ID).
		Str("project_id", projectID).
		Str("kind", string(s.kind)).
		Float64("amount", line.Amount).
		Msg("ledger line created")
	return line, nil
}

// Update merges the supplied fields over the stored line and recomputes the
// amount from the merged set.
func (s *LedgerService) Update(ctx context.Context, lineID string, fields ports.LineFields, caller domain.Caller) (*domain.LedgerLine, error) {
	line, err := s.repo.FindByID(ctx, s.kind, lineID)
	if err != nil {
		return nil, err
	}
	project, err := s.gateProject(ctx, line.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.Authorize(caller, domain.ActionEditLine, Target{Project: project}); err != nil {
		return nil, err
	}

	fields.ApplyTo(line)
	line.Recompute()
	line.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, line); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionEditLine), "error").Inc()
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionEditLine), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionEditLine, s.entityKind(), line.ID)
	return line, nil
}

// Delete removes a line. Under the default policy the lifecycle gate does not
// apply: a closed project's rows remain deletable.
func (s *LedgerService) Delete(ctx context.Context, lineID string, caller domain.Caller) error {
	line, err := s.repo.FindByID(ctx, s.kind, lineID)
	if err != nil {
		return err
	}
	project, err := s.gateProject(ctx, line.ProjectID)
	if err != nil {
		return err
	}
	if err := s.gateway.Authorize(caller, domain.ActionDeleteLine, Target{Project: project}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, s.kind, lineID); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionDeleteLine), "error").Inc()
		return err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionDeleteLine), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionDeleteLine, s.entityKind(), lineID)
	return nil
}

// gateProject resolves the project whose state gates this mutation. The cache
// is consulted first; any cache failure falls back to the repository.
func (s *LedgerService) gateProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if s.cache != nil {
		state, ok, err := s.cache.Get(ctx, projectID)
		if err != nil {
			s.logger.Warn().Err(err).Str("project_id", projectID).Msg("state cache lookup failed, falling back to repository")
		} else if ok {
			metrics.StateCacheLookupsTotal.WithLabelValues("hit").Inc()
			return &domain.Project{ID: projectID, State: state}, nil
		} else {
			metrics.StateCacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, projectID, project.State); err != nil {
			s.logger.Warn().Err(err).Str("project_id", projectID).Msg("failed to populate state cache")
		}
	}
	return project, nil
}

func (s *LedgerService) entityKind() string {
	return string(s.kind) + "_line"
}
