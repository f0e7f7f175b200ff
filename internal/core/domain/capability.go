package domain

// Action enumerates every operation the capability matrix knows about.
type Action string

const (
	ActionCreateProject   Action = "create_project"
	ActionDeleteProject   Action = "delete_project"
	ActionSetProjectState Action = "set_project_state"
	ActionEditProject     Action = "edit_project"

	ActionCreateUser     Action = "create_user"
	ActionDeleteUser     Action = "delete_user"
	ActionChangeUserRole Action = "change_user_role"
	ActionAssignProject  Action = "assign_project"

	ActionCreateLine Action = "create_line"
	ActionEditLine   Action = "edit_line"
	ActionDeleteLine Action = "delete_line"

	ActionViewProject  Action = "view_project"
	ActionViewAuditLog Action = "view_audit_log"
)

// capabilities is the static role-capability matrix. Encargados never act on
// anything beyond viewing their assigned project; they exist as selectable
// responsible parties on ledger lines.
var capabilities = map[Action][]Role{
	ActionCreateProject:   {RoleAdmin},
	ActionDeleteProject:   {RoleAdmin},
	ActionSetProjectState: {RoleAdmin, RoleGerente},
	ActionEditProject:     {RoleAdmin, RoleGerente},

	ActionCreateUser:     {RoleAdmin},
	ActionDeleteUser:     {RoleAdmin},
	ActionChangeUserRole: {RoleAdmin},
	ActionAssignProject:  {RoleAdmin, RoleGerente},

	ActionCreateLine: {RoleAdmin, RoleGerente},
	ActionEditLine:   {RoleAdmin, RoleGerente},
	ActionDeleteLine: {RoleAdmin, RoleGerente},

	ActionViewProject:  {RoleAdmin, RoleGerente, RoleEncargado, RoleUser},
	ActionViewAuditLog: {RoleAdmin},
}

// IsAllowed reports whether role may invoke action. Unknown roles and unknown
// actions always deny.
func IsAllowed(role Role, action Action) bool {
	for _, r := range capabilities[action] {
		if r == role {
			return true
		}
	}
	return false
}
