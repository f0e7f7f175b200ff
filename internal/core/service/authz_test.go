package service

import (
	"testing"

	"github.com/agroplan/backoffice/internal/core/domain"
)

func TestGateway_RoleCheckPrecedesLifecycle(t *testing.T) {
	gw := defaultGateway()
	closed := &domain.Project{ID: "p1", State: domain.StateClosed}

	// A user-role caller on a closed project must see the role denial, not
	// the lifecycle one.
	err := gw.Authorize(plainCaller, domain.ActionEditLine, Target{Project: closed})
	if err != domain.ErrInsufficientRole {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestGateway_LifecycleGate(t *testing.T) {
	gw := defaultGateway()
	closed := &domain.Project{ID: "p1", State: domain.StateClosed}
	enabled := &domain.Project{ID: "p2", State: domain.StateEnabled}

	if err := gw.Authorize(gerenteCaller, domain.ActionEditLine, Target{Project: closed}); err != domain.ErrProjectClosed {
		t.Fatalf("expected ErrProjectClosed, got %v", err)
	}
	if err := gw.Authorize(gerenteCaller, domain.ActionEditLine, Target{Project: enabled}); err != nil {
		t.Fatalf("unexpected error on enabled project: %v", err)
	}
	if err := gw.Authorize(gerenteCaller, domain.ActionCreateLine, Target{Project: closed}); err != domain.ErrProjectClosed {
		t.Fatalf("expected ErrProjectClosed for create, got %v", err)
	}
}

func TestGateway_DeleteBypassesLifecycle(t *testing.T) {
	gw := defaultGateway()
	closed := &domain.Project{ID: "p1", State: domain.StateClosed}

	if err := gw.Authorize(gerenteCaller, domain.ActionDeleteLine, Target{Project: closed}); err != nil {
		t.Fatalf("delete line on closed project should pass: %v", err)
	}
	if err := gw.Authorize(adminCaller, domain.ActionDeleteProject, Target{Project: closed}); err != nil {
		t.Fatalf("delete project while closed should pass: %v", err)
	}
}

func TestGateway_DeleteGatedWhenPolicyDisabled(t *testing.T) {
	gw := NewGateway(Policy{DeleteBypassesClose: false}, discardLogger)
	closed := &domain.Project{ID: "p1", State: domain.StateClosed}

	if err := gw.Authorize(gerenteCaller, domain.ActionDeleteLine, Target{Project: closed}); err != domain.ErrProjectClosed {
		t.Fatalf("expected ErrProjectClosed, got %v", err)
	}
	if err := gw.Authorize(adminCaller, domain.ActionDeleteProject, Target{Project: closed}); err != domain.ErrProjectClosed {
		t.Fatalf("expected ErrProjectClosed, got %v", err)
	}
}

func TestGateway_SelfActionGuard(t *testing.T) {
	gw := defaultGateway()

	err := gw.Authorize(adminCaller, domain.ActionChangeUserRole, Target{UserID: adminCaller.ID})
	if err != domain.ErrSelfActionForbidden {
		t.Fatalf("expected ErrSelfActionForbidden, got %v", err)
	}
	err = gw.Authorize(adminCaller, domain.ActionDeleteUser, Target{UserID: adminCaller.ID})
	if err != domain.ErrSelfActionForbidden {
		t.Fatalf("expected ErrSelfActionForbidden, got %v", err)
	}
	// Another user's record is fine.
	if err := gw.Authorize(adminCaller, domain.ActionChangeUserRole, Target{UserID: "someone-else"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Assigning a project to oneself is not self-guarded.
	if err := gw.Authorize(adminCaller, domain.ActionAssignProject, Target{UserID: adminCaller.ID}); err != nil {
		t.Fatalf("assign project to self should pass: %v", err)
	}
}

func TestGateway_EncargadoNeverMutates(t *testing.T) {
	gw := defaultGateway()
	enabled := &domain.Project{ID: "p1", State: domain.StateEnabled}

	mutating := []domain.Action{
		domain.ActionCreateProject, domain.ActionDeleteProject,
		domain.ActionSetProjectState, domain.ActionEditProject,
		domain.ActionCreateUser, domain.ActionDeleteUser,
		domain.ActionChangeUserRole, domain.ActionAssignProject,
		domain.ActionCreateLine, domain.ActionEditLine, domain.ActionDeleteLine,
	}
	for _, action := range mutating {
		if err := gw.Authorize(encargadoCaller, action, Target{Project: enabled}); err != domain.ErrInsufficientRole {
			t.Errorf("%s: expected ErrInsufficientRole, got %v", action, err)
		}
	}
	if err := gw.Authorize(encargadoCaller, domain.ActionViewProject, Target{}); err != nil {
		t.Fatalf("encargado must be able to view: %v", err)
	}
}
