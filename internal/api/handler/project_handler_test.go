package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

type stubProjectService struct {
	createFn   func(ctx context.Context, input ports.CreateProjectInput, caller domain.Caller) (*domain.Project, error)
	getFn      func(ctx context.Context, id string, caller domain.Caller) (*domain.Project, error)
	listFn     func(ctx context.Context, caller domain.Caller) ([]*domain.Project, error)
	updateFn   func(ctx context.Context, input ports.UpdateProjectInput, caller domain.Caller) (*domain.Project, error)
	setStateFn func(ctx context.Context, id string, state domain.ProjectState, caller domain.Caller) (*domain.Project, error)
	deleteFn   func(ctx context.Context, id string, caller domain.Caller) error
}

func (s *stubProjectService) Create(ctx context.Context, input ports.CreateProjectInput, caller domain.Caller) (*domain.Project, error) {
	return s.createFn(ctx, input, caller)
}

func (s *stubProjectService) Get(ctx context.Context, id string, caller domain.Caller) (*domain.Project, error) {
	return s.getFn(ctx, id, caller)
}

func (s *stubProjectService) List(ctx context.Context, caller domain.Caller) ([]*domain.Project, error) {
	return s.listFn(ctx, caller)
}

func (s *stubProjectService) Update(ctx context.Context, input ports.UpdateProjectInput, caller domain.Caller) (*domain.Project, error) {
	return s.updateFn(ctx, input, caller)
}

func (s *stubProjectService) SetState(ctx context.Context, id string, state domain.ProjectState, caller domain.Caller) (*domain.Project, error) {
	return s.setStateFn(ctx, id, state, caller)
}

func (s *stubProjectService) Delete(ctx context.Context, id string, caller domain.Caller) error {
	return s.deleteFn(ctx, id, caller)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u-1")
	c.Set("username", "ana")
	c.Set("role", "admin")
	return c, rec
}

func TestProjectHandler_Create_Success(t *testing.T) {
	stub := &stubProjectService{
		createFn: func(ctx context.Context, input ports.CreateProjectInput, caller domain.Caller) (*domain.Project, error) {
			if input.Name != "Riego Norte" {
				t.Fatalf("unexpected name: %q", input.Name)
			}
			if caller.ID != "u-1" || caller.Role != domain.RoleAdmin {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			now := time.Now()
			return &domain.Project{
				ID:        "p-1",
				Name:      input.Name,
				StartDate: input.StartDate,
				State:     domain.StateEnabled,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		},
	}
	h := NewProjectHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/projects",
		`{"name":"Riego Norte","start_date":"2026-03-01T00:00:00Z"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "p-1" || resp.State != "enabled" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProjectHandler_Create_MissingName(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/projects",
		`{"start_date":"2026-03-01T00:00:00Z"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProjectHandler_Update_ClosedProject(t *testing.T) {
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, input ports.UpdateProjectInput, caller domain.Caller) (*domain.Project, error) {
			return nil, domain.ErrProjectClosed
		},
	}
	h := NewProjectHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/v1/projects/p-1",
		`{"name":"Renamed","start_date":"2026-03-01T00:00:00Z"}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reason != "project_closed" {
		t.Fatalf("expected reason project_closed, got %q", resp.Reason)
	}
}

func TestProjectHandler_SetState_InvalidValue(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, rec := newTestContext(t, http.MethodPatch, "/v1/projects/p-1/state",
		`{"state":"archived"}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := h.SetState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProjectHandler_Delete_Forbidden(t *testing.T) {
	stub := &stubProjectService{
		deleteFn: func(ctx context.Context, id string, caller domain.Caller) error {
			return domain.ErrInsufficientRole
		},
	}
	h := NewProjectHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/v1/projects/p-1", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reason != "insufficient_role" {
		t.Fatalf("expected reason insufficient_role, got %q", resp.Reason)
	}
}

func TestProjectHandler_MissingClaims(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/projects", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// no claims set on the context

	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}
