package service

import (
	"context"
	"testing"
	"time"

	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

func newProjectService(repo *stubProjectRepo, audit *stubAuditRecorder, cache *stubStateCache) *ProjectService {
	return NewProjectService(repo, defaultGateway(), audit, cache, discardLogger)
}

func mustCreateProject(t *testing.T, svc *ProjectService, name string) *domain.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), ports.CreateProjectInput{
		Name:      name,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}, adminCaller)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestProjectService_Create_DefaultsEnabled(t *testing.T) {
	repo := newStubProjectRepo()
	audit := &stubAuditRecorder{}
	svc := newProjectService(repo, audit, newStubStateCache())

	p := mustCreateProject(t, svc, "riego norte")
	if p.State != domain.StateEnabled {
		t.Fatalf("new project must start enabled, got %s", p.State)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.ActionCreateProject {
		t.Fatalf("expected one create audit event, got %+v", audit.events)
	}
}

func TestProjectService_Create_RequiresAdmin(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), &stubAuditRecorder{}, newStubStateCache())

	_, err := svc.Create(context.Background(), ports.CreateProjectInput{Name: "x", StartDate: time.Now()}, gerenteCaller)
	if err != domain.ErrInsufficientRole {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestProjectService_Create_CloseBeforeStart(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), &stubAuditRecorder{}, newStubStateCache())

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	early := start.AddDate(0, 0, -5)
	_, err := svc.Create(context.Background(), ports.CreateProjectInput{
		Name: "x", StartDate: start, CloseDate: &early,
	}, adminCaller)
	if err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProjectService_SetState_CloseThenReopen(t *testing.T) {
	repo := newStubProjectRepo()
	cache := newStubStateCache()
	svc := newProjectService(repo, &stubAuditRecorder{}, cache)
	p := mustCreateProject(t, svc, "drenaje sur")

	closed, err := svc.SetState(context.Background(), p.ID, domain.StateClosed, gerenteCaller)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.State != domain.StateClosed {
		t.Fatalf("expected closed, got %s", closed.State)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != p.ID {
		t.Fatalf("expected cache invalidation for %s, got %v", p.ID, cache.invalidated)
	}

	reopened, err := svc.SetState(context.Background(), p.ID, domain.StateEnabled, adminCaller)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.State != domain.StateEnabled {
		t.Fatalf("expected enabled, got %s", reopened.State)
	}
}

func TestProjectService_SetState_RecloseRejected(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, &stubAuditRecorder{}, newStubStateCache())
	p := mustCreateProject(t, svc, "compostaje")

	if _, err := svc.SetState(context.Background(), p.ID, domain.StateClosed, adminCaller); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Closing an already-closed project is never a silent double-application.
	_, err := svc.SetState(context.Background(), p.ID, domain.StateClosed, adminCaller)
	if err != domain.ErrProjectClosed {
		t.Fatalf("expected ErrProjectClosed, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), p.ID)
	if stored.State != domain.StateClosed {
		t.Fatalf("state corrupted by rejected transition: %s", stored.State)
	}
}

func TestProjectService_SetState_ReenableRejected(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), &stubAuditRecorder{}, newStubStateCache())
	p := mustCreateProject(t, svc, "vivero")

	_, err := svc.SetState(context.Background(), p.ID, domain.StateEnabled, adminCaller)
	if err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestProjectService_Update_GatedOnClosed(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), &stubAuditRecorder{}, newStubStateCache())
	p := mustCreateProject(t, svc, "siembra")

	if _, err := svc.SetState(context.Background(), p.ID, domain.StateClosed, adminCaller); err != nil {
		t.Fatalf("close: %v", err)
	}
	_, err := svc.Update(context.Background(), ports.UpdateProjectInput{
		ID: p.ID, Name: "siembra 2", StartDate: p.StartDate,
	}, gerenteCaller)
	if err != domain.ErrProjectClosed {
		t.Fatalf("expected ErrProjectClosed, got %v", err)
	}
}

func TestProjectService_Delete_BypassesLifecycle(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, &stubAuditRecorder{}, newStubStateCache())
	p := mustCreateProject(t, svc, "cosecha")

	if _, err := svc.SetState(context.Background(), p.ID, domain.StateClosed, adminCaller); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID, adminCaller); err != nil {
		t.Fatalf("delete of closed project should succeed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), p.ID); err != domain.ErrProjectNotFound {
		t.Fatalf("project should be gone, got %v", err)
	}
}

func TestProjectService_Delete_RequiresAdmin(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), &stubAuditRecorder{}, newStubStateCache())
	p := mustCreateProject(t, svc, "abono")

	if err := svc.Delete(context.Background(), p.ID, gerenteCaller); err != domain.ErrInsufficientRole {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestProjectService_Get_NotFound(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), &stubAuditRecorder{}, newStubStateCache())

	if _, err := svc.Get(context.Background(), "missing", plainCaller); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
