package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agroplan/backoffice/internal/api/metrics"
	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

const entityUser = "user"

// UserService implements the administrative user operations. Every call runs
// through the gateway; the self-action guard keeps admins from editing their
// own identity record through this pathway.
type UserService struct {
	repo    ports.UserRepository
	gateway *Gateway
	audit   ports.AuditRecorder
	logger  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, gateway *Gateway, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, gateway: gateway, audit: audit, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput, caller domain.Caller) (*domain.User, error) {
	if err := s.gateway.Authorize(caller, domain.ActionCreateUser, Target{}); err != nil {
		return nil, err
	}
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}
	if _, ok := domain.ParseRole(string(input.Role)); !ok {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: string(hash),
		GivenName:    input.GivenName,
		Surname:      input.Surname,
		NationalID:   input.NationalID,
		Role:         input.Role,
		ProjectID:    input.ProjectID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionCreateUser), "error").Inc()
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionCreateUser), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionCreateUser, entityUser, created.ID)
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context, caller domain.Caller) ([]*domain.User, error) {
	if err := s.gateway.Authorize(caller, domain.ActionCreateUser, Target{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// UpdateRole changes the target user's role. Denied when the caller targets
// themselves, before the target is even fetched.
func (s *UserService) UpdateRole(ctx context.Context, targetID string, role domain.Role, caller domain.Caller) (*domain.User, error) {
	if err := s.gateway.Authorize(caller, domain.ActionChangeUserRole, Target{UserID: targetID}); err != nil {
		return nil, err
	}
	if _, ok := domain.ParseRole(string(role)); !ok {
		return nil, domain.ErrValidation
	}
	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionChangeUserRole), "error").Inc()
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionChangeUserRole), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionChangeUserRole, entityUser, targetID)
	return s.repo.FindByID(ctx, targetID)
}

// AssignProject sets or clears the target user's assigned project.
func (s *UserService) AssignProject(ctx context.Context, targetID string, projectID *string, caller domain.Caller) (*domain.User, error) {
	if err := s.gateway.Authorize(caller, domain.ActionAssignProject, Target{UserID: targetID}); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProject(ctx, targetID, projectID); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionAssignProject), "error").Inc()
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionAssignProject), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionAssignProject, entityUser, targetID)
	return s.repo.FindByID(ctx, targetID)
}

func (s *UserService) Delete(ctx context.Context, targetID string, caller domain.Caller) error {
	if err := s.gateway.Authorize(caller, domain.ActionDeleteUser, Target{UserID: targetID}); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(domain.ActionDeleteUser), "error").Inc()
		return err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionDeleteUser), "ok").Inc()
	recordAudit(ctx, s.audit, s.logger, caller, domain.ActionDeleteUser, entityUser, targetID)
	s.logger.Info().Str("user_id", targetID).Msg("user deleted")
	return nil
}
