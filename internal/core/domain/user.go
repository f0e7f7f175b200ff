package domain

import (
	"errors"
	"time"
)

// Role is the closed set of actor roles. Roles are tagged values, not free
// strings: unknown strings never gain capabilities.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleGerente   Role = "gerente"
	RoleEncargado Role = "encargado"
	RoleUser      Role = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ParseRole maps a string to a known Role. Unknown values return false so
// callers fail closed.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleGerente, RoleEncargado, RoleUser:
		return Role(s), true
	}
	return "", false
}

// User models an account permitted to interact with the back office.
// Encargados additionally appear as the responsible party on ledger lines;
// that usage is pure data and grants nothing.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	GivenName    string    `json:"given_name"`
	Surname      string    `json:"surname"`
	NationalID   string    `json:"national_id"`
	Role         Role      `json:"role"`
	ProjectID    *string   `json:"project_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Caller identifies the authenticated actor behind a request. It is threaded
// explicitly through every operation rather than read from ambient state.
type Caller struct {
	ID       string
	Username string
	Role     Role
}
