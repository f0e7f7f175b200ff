package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// --- Request / Response types ---

type createProjectRequest struct {
	Name      string     `json:"name"       validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	CloseDate *time.Time `json:"close_date"`
}

type updateProjectRequest struct {
	Name      string     `json:"name"       validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	CloseDate *time.Time `json:"close_date"`
}

type setProjectStateRequest struct {
	State string `json:"state" validate:"required,oneof=enabled closed"`
}

type projectResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	CloseDate *time.Time `json:"close_date,omitempty"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type listProjectsResponse struct {
	Data []projectResponse `json:"data"`
}
