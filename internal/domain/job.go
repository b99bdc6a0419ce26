package domain

import (
	"time"
)

// Job posting status values.
const (
	JobActive   = 1
	JobDisabled = 0
)

// Job represents a job posting owned by a company.
type Job struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Area        string    `json:"area,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Status      int       `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
