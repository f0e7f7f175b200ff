package domain

import "testing"

func TestIsAllowed_Matrix(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleAdmin, ActionCreateProject, true},
		{RoleGerente, ActionCreateProject, false},
		{RoleAdmin, ActionDeleteProject, true},
		{RoleGerente, ActionDeleteProject, false},

		{RoleAdmin, ActionSetProjectState, true},
		{RoleGerente, ActionSetProjectState, true},
		{RoleEncargado, ActionSetProjectState, false},

		{RoleGerente, ActionEditProject, true},
		{RoleUser, ActionEditProject, false},

		{RoleAdmin, ActionCreateUser, true},
		{RoleGerente, ActionCreateUser, false},
		{RoleAdmin, ActionChangeUserRole, true},
		{RoleGerente, ActionChangeUserRole, false},

		{RoleGerente, ActionAssignProject, true},
		{RoleEncargado, ActionAssignProject, false},

		{RoleAdmin, ActionCreateLine, true},
		{RoleGerente, ActionEditLine, true},
		{RoleGerente, ActionDeleteLine, true},
		{RoleEncargado, ActionCreateLine, false},
		{RoleUser, ActionDeleteLine, false},

		{RoleUser, ActionViewProject, true},
		{RoleEncargado, ActionViewProject, true},

		{RoleAdmin, ActionViewAuditLog, true},
		{RoleGerente, ActionViewAuditLog, false},
	}
	for _, tc := range cases {
		if got := IsAllowed(tc.role, tc.action); got != tc.want {
			t.Errorf("IsAllowed(%s, %s): expected %v, got %v", tc.role, tc.action, tc.want, got)
		}
	}
}

func TestIsAllowed_FailsClosed(t *testing.T) {
	if IsAllowed(Role("superuser"), ActionCreateProject) {
		t.Fatalf("unknown role must deny")
	}
	if IsAllowed(RoleAdmin, Action("format_disk")) {
		t.Fatalf("unknown action must deny")
	}
	if IsAllowed("", "") {
		t.Fatalf("empty role and action must deny")
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "gerente", "encargado", "user"} {
		if _, ok := ParseRole(s); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}
	if _, ok := ParseRole("root"); ok {
		t.Fatalf("unknown role string must not parse")
	}
}
