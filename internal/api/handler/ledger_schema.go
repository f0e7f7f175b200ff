package handler

import "time"

// lineRequest is shared by create and update. Every field is optional: absent
// fields keep their stored value on update and default to zero on create. The
// amount is never accepted from a caller.
type lineRequest struct {
	Activity    *string  `json:"activity"`
	SubAction   *string  `json:"sub_action"`
	Responsible *string  `json:"responsible"`
	Time        *float64 `json:"time"     validate:"omitempty,gte=0"`
	Quantity    *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Hours       *float64 `json:"hours"    validate:"omitempty,gte=0"`
	UnitCost    *float64 `json:"unit_cost" validate:"omitempty,gte=0"`
}

type lineResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Activity    string    `json:"activity"`
	SubAction   string    `json:"sub_action"`
	Responsible string    `json:"responsible"`
	Time        float64   `json:"time"`
	Quantity    float64   `json:"quantity"`
	Hours       float64   `json:"hours"`
	UnitCost    float64   `json:"unit_cost"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listLinesResponse struct {
	Data  []lineResponse `json:"data"`
	Total float64        `json:"total"`
}
