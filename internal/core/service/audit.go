package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

// recordAudit appends an event to the audit trail. Failures are logged and
// swallowed: the mutation already happened and the trail must not undo it.
func recordAudit(ctx context.Context, rec ports.AuditRecorder, log zerolog.Logger, caller domain.Caller, action domain.Action, entityKind, entityID string) {
	event := &domain.AuditEvent{
		Timestamp:  time.Now().UTC(),
		Actor:      caller.Username,
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
	}
	if err := rec.Record(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("action", string(action)).
			Str("entity_id", entityID).
			Msg("failed to record audit event")
	}
}

// AuditService exposes the audit trail to permitted callers.
type AuditService struct {
	recorder ports.AuditRecorder
	gateway  *Gateway
}

func NewAuditService(recorder ports.AuditRecorder, gateway *Gateway) *AuditService {
	return &AuditService{recorder: recorder, gateway: gateway}
}

const defaultAuditLimit = 100

// List returns the newest audit events, capped at limit (default 100).
func (s *AuditService) List(ctx context.Context, limit int, caller domain.Caller) ([]domain.AuditEvent, error) {
	if err := s.gateway.Authorize(caller, domain.ActionViewAuditLog, Target{}); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	return s.recorder.List(ctx, limit)
}
