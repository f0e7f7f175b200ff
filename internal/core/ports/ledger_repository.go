package ports

import (
	"context"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// LedgerRepository defines persistence operations for ledger lines. A single
// implementation serves all three ledger kinds; the kind selects the backing
// collection.
type LedgerRepository interface {
	Insert(ctx context.Context, line *domain.LedgerLine) error
	FindByID(ctx context.Context, kind domain.LedgerKind, id string) (*domain.LedgerLine, error)
	ListByProject(ctx context.Context, kind domain.LedgerKind, projectID string) ([]domain.LedgerLine, error)
	Update(ctx context.Context, line *domain.LedgerLine) error
	Delete(ctx context.Context, kind domain.LedgerKind, id string) error
}
