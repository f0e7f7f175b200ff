package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func defaultGateway() *Gateway {
	return NewGateway(Policy{DeleteBypassesClose: true}, discardLogger)
}

var (
	adminCaller     = domain.Caller{ID: "u-admin", Username: "ana", Role: domain.RoleAdmin}
	gerenteCaller   = domain.Caller{ID: "u-gerente", Username: "gloria", Role: domain.RoleGerente}
	encargadoCaller = domain.Caller{ID: "u-encargado", Username: "emilio", Role: domain.RoleEncargado}
	plainCaller     = domain.Caller{ID: "u-user", Username: "ursula", Role: domain.RoleUser}
)

type stubProjectRepo struct {
	projects  map[string]*domain.Project
	updateErr error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubLedgerRepo struct {
	lines map[string]*domain.LedgerLine
}

func newStubLedgerRepo() *stubLedgerRepo {
	return &stubLedgerRepo{lines: make(map[string]*domain.LedgerLine)}
}

func (r *stubLedgerRepo) Insert(_ context.Context, line *domain.LedgerLine) error {
	clone := *line
	r.lines[line.ID] = &clone
	return nil
}

func (r *stubLedgerRepo) FindByID(_ context.Context, kind domain.LedgerKind, id string) (*domain.LedgerLine, error) {
	l, ok := r.lines[id]
	if !ok || l.Kind != kind {
		return nil, domain.ErrLineNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubLedgerRepo) ListByProject(_ context.Context, kind domain.LedgerKind, projectID string) ([]domain.LedgerLine, error) {
	var out []domain.LedgerLine
	for _, l := range r.lines {
		if l.Kind == kind && l.ProjectID == projectID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLedgerRepo) Update(_ context.Context, line *domain.LedgerLine) error {
	if _, ok := r.lines[line.ID]; !ok {
		return domain.ErrLineNotFound
	}
	clone := *line
	r.lines[line.ID] = &clone
	return nil
}

func (r *stubLedgerRepo) Delete(_ context.Context, kind domain.LedgerKind, id string) error {
	l, ok := r.lines[id]
	if !ok || l.Kind != kind {
		return domain.ErrLineNotFound
	}
	delete(r.lines, id)
	return nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) UpdateProject(_ context.Context, id string, projectID *string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ProjectID = projectID
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubAuditRecorder struct {
	events    []domain.AuditEvent
	recordErr error
}

func (r *stubAuditRecorder) Record(_ context.Context, event *domain.AuditEvent) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *stubAuditRecorder) List(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]domain.AuditEvent, limit)
	copy(out, r.events[len(r.events)-limit:])
	return out, nil
}

// stubStateCache mimics the Redis project-state cache.
type stubStateCache struct {
	states      map[string]domain.ProjectState
	getErr      error
	invalidated []string
}

func newStubStateCache() *stubStateCache {
	return &stubStateCache{states: make(map[string]domain.ProjectState)}
}

func (c *stubStateCache) Get(_ context.Context, projectID string) (domain.ProjectState, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	s, ok := c.states[projectID]
	return s, ok, nil
}

func (c *stubStateCache) Set(_ context.Context, projectID string, state domain.ProjectState) error {
	c.states[projectID] = state
	return nil
}

func (c *stubStateCache) Invalidate(_ context.Context, projectID string) error {
	delete(c.states, projectID)
	c.invalidated = append(c.invalidated, projectID)
	return nil
}
