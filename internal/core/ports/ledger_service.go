package ports

import (
	"context"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// LineFields carries the editable fields of a ledger line. Nil pointers mean
// "not supplied": on update the stored value is kept, on create the zero
// value is used. The derived amount is deliberately absent — it can never be
// supplied by a caller.
type LineFields struct {
	Activity    *string
	SubAction   *string
	Responsible *string
	Time        *float64
	Quantity    *float64
	Hours       *float64
	UnitCost    *float64
}

// ApplyTo merges the supplied fields over the line's stored values.
func (f LineFields) ApplyTo(line *domain.LedgerLine) {
	if f.Activity != nil {
		line.Activity = *f.Activity
	}
	if f.SubAction != nil {
		line.SubAction = *f.SubAction
	}
	if f.Responsible != nil {
		line.Responsible = *f.Responsible
	}
	if f.Time != nil {
		line.Time = *f.Time
	}
	if f.Quantity != nil {
		line.Quantity = *f.Quantity
	}
	if f.Hours != nil {
		line.Hours = *f.Hours
	}
	if f.UnitCost != nil {
		line.UnitCost = *f.UnitCost
	}
}

// LedgerResult is returned by List: the lines plus their derived total.
type LedgerResult struct {
	Lines []domain.LedgerLine
	Total float64
}

// LedgerService defines the shared contract of every resource ledger. One
// service value exists per ledger kind; all share identical semantics.
type LedgerService interface {
	List(ctx context.Context, projectID string, caller domain.Caller) (*LedgerResult, error)
	Create(ctx context.Context, projectID string, fields LineFields, caller domain.Caller) (*domain.LedgerLine, error)
	Update(ctx context.Context, lineID string, fields LineFields, caller domain.Caller) (*domain.LedgerLine, error)
	Delete(ctx context.Context, lineID string, caller domain.Caller) error
}
