package domain

import (
	"time"
)

// Plan is a subscription package limiting how many active job postings a
// company may hold.
type Plan struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	MaxJobs    int    `json:"max_jobs"`
	PriceCents int64  `json:"price_cents"`
	Status     int    `json:"status"`
}

// Subscription status values.
const (
	SubscriptionActive   = 1
	SubscriptionCanceled = 0
)

// Subscription links a company to its current plan.
type Subscription struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	PlanID    int       `json:"plan_id"`
	Plan      *Plan     `json:"plan,omitempty"`
	Status    int       `json:"status"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
