package domain

import (
	"errors"
	"time"
)

// ProjectState represents the lifecycle state of a project.
type ProjectState string

const (
	StateEnabled ProjectState = "enabled"
	StateClosed  ProjectState = "closed"
)

// validTransitions defines the allowed state machine transitions. Both states
// are reversible; re-applying the current state is not a transition.
var validTransitions = map[ProjectState][]ProjectState{
	StateEnabled: {StateClosed},
	StateClosed:  {StateEnabled},
}

var ErrProjectNotFound = errors.New("project not found")
var ErrProjectClosed = errors.New("project is closed")
var ErrInvalidTransition = errors.New("invalid state transition")
var ErrInsufficientRole = errors.New("insufficient role")
var ErrSelfActionForbidden = errors.New("self-targeted action forbidden")
var ErrValidation = errors.New("validation failed")

// CanTransitionTo reports whether a transition from the current state to next
// is valid.
func (s ProjectState) CanTransitionTo(next ProjectState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the two known states.
func (s ProjectState) IsValid() bool {
	return s == StateEnabled || s == StateClosed
}

// Project is the aggregate every ledger line hangs off.
type Project struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	Name      string       `json:"name" bson:"name"`
	StartDate time.Time    `json:"start_date" bson:"start_date"`
	CloseDate *time.Time   `json:"close_date,omitempty" bson:"close_date,omitempty"`
	State     ProjectState `json:"state" bson:"state"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// CanMutate reports whether the project's data may currently be edited.
// Deletion is governed separately (see service.Policy).
func (p *Project) CanMutate() bool {
	return p.State == StateEnabled
}

// ValidateDates enforces the close-date invariant: when present, the close
// date may not precede the start date. A project with no close date is fine
// in either state (administrative close).
func ValidateDates(start time.Time, close *time.Time) error {
	if close != nil && close.Before(start) {
		return ErrValidation
	}
	return nil
}
