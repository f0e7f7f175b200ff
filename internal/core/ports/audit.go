package ports

import (
	"context"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// AuditRecorder is the external logger collaborator: it receives structured
// events and never influences lifecycle or authorization decisions.
type AuditRecorder interface {
	// Record appends a single event to the audit trail.
	Record(ctx context.Context, event *domain.AuditEvent) error
	// List returns the most recent events, newest first, capped at limit.
	List(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

// AuditService exposes the read side of the audit trail to callers whose role
// permits it.
type AuditService interface {
	List(ctx context.Context, limit int, caller domain.Caller) ([]domain.AuditEvent, error)
}
