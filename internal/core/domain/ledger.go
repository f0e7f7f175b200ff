package domain

import (
	"errors"
	"time"
)

// LedgerKind distinguishes the three resource ledgers a project carries.
type LedgerKind string

const (
	KindHumanResource LedgerKind = "human_resource"
	KindMaterial      LedgerKind = "material"
	KindActionPlan    LedgerKind = "action_plan"
)

var ErrLineNotFound = errors.New("ledger line not found")

// LedgerLine is one row in a project's resource ledger. The quantity/rate
// fields that apply depend on Kind; the rest stay zero. Amount is always
// derived, never set by a caller.
type LedgerLine struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	ProjectID   string     `json:"project_id" bson:"project_id"`
	Kind        LedgerKind `json:"kind" bson:"kind"`
	Activity    string     `json:"activity" bson:"activity"`
	SubAction   string     `json:"sub_action" bson:"sub_action"`
	Responsible string     `json:"responsible" bson:"responsible"`
	Time        float64    `json:"time" bson:"time"`
	Quantity    float64    `json:"quantity" bson:"quantity"`
	Hours       float64    `json:"hours" bson:"hours"`
	UnitCost    float64    `json:"unit_cost" bson:"unit_cost"`
	Amount      float64    `json:"amount" bson:"amount"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// AuditEvent records a single successful mutation. Append-only; the core
// never edits past events.
type AuditEvent struct {
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
	Actor      string    `json:"actor" bson:"actor"`
	Action     Action    `json:"action" bson:"action"`
	EntityKind string    `json:"entity_kind" bson:"entity_kind"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
}
