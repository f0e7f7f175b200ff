package service

import (
	"github.com/rs/zerolog"

	"github.com/agroplan/backoffice/internal/api/metrics"
	"github.com/agroplan/backoffice/internal/core/domain"
)

// Policy holds the tunable authorization behaviour.
type Policy struct {
	// DeleteBypassesClose keeps deletion available on closed projects, the
	// historical behaviour. When false, deletes pass through the lifecycle
	// gate like any other mutation.
	DeleteBypassesClose bool
}

// Target identifies what an action operates on. Project is set for
// project/ledger mutations, UserID for user-administration actions. Either
// may be empty when the action has no such target.
type Target struct {
	Project *domain.Project
	UserID  string
}

// Gateway is the single authorization decision point. Every mutating
// operation calls Authorize before touching persistence; a denial
// short-circuits with no partial state change.
type Gateway struct {
	policy Policy
	log    zerolog.Logger
}

func NewGateway(policy Policy, log zerolog.Logger) *Gateway {
	return &Gateway{policy: policy, log: log}
}

// Authorize runs the ordered checks. Order is observable behaviour: a
// non-privileged caller on a closed project must see an insufficient-role
// denial, not a project-closed one.
func (g *Gateway) Authorize(caller domain.Caller, action domain.Action, target Target) error {
	// 1. Role capability, fail closed.
	if !domain.IsAllowed(caller.Role, action) {
		g.deny(caller, action, "insufficient_role")
		return domain.ErrInsufficientRole
	}

	// 2. Self-action guard: the admin pathway never edits the caller's own
	// identity record.
	if selfGuarded(action) && target.UserID != "" && target.UserID == caller.ID {
		g.deny(caller, action, "self_action_forbidden")
		return domain.ErrSelfActionForbidden
	}

	// 3. Lifecycle gate.
	if g.lifecycleGated(action) && target.Project != nil && !target.Project.CanMutate() {
		g.deny(caller, action, "project_closed")
		return domain.ErrProjectClosed
	}

	return nil
}

func selfGuarded(action domain.Action) bool {
	return action == domain.ActionChangeUserRole || action == domain.ActionDeleteUser
}

func (g *Gateway) lifecycleGated(action domain.Action) bool {
	switch action {
	case domain.ActionEditProject, domain.ActionCreateLine, domain.ActionEditLine:
		return true
	case domain.ActionDeleteProject, domain.ActionDeleteLine:
		return !g.policy.DeleteBypassesClose
	}
	return false
}

func (g *Gateway) deny(caller domain.Caller, action domain.Action, reason string) {
	metrics.AuthzDenialsTotal.WithLabelValues(reason).Inc()
	g.log.Debug().
		Str("username", caller.Username).
		Str("role", string(caller.Role)).
		Str("action", string(action)).
		Str("reason", reason).
		Msg("authorization denied")
}
