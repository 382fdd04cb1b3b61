package store

import (
	"context"
	"errors"
	"time"
)

// DefaultPlan is assigned when the signup form omits a plan.
const DefaultPlan = "starter"

var (
	// ErrEmailRequired rejects a lead without an email before any write.
	ErrEmailRequired = errors.New("email is required")
	// ErrDuplicateEmail surfaces the unique-email constraint as its own kind
	// so handlers can answer 409 instead of a generic failure.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Lead is a sales contact captured from the marketing site's signup form.
// Created once; never updated or deleted by this system.
type Lead struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Company   string    `json:"company,omitempty"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository persists leads.
type Repository interface {
	CreateLead(ctx context.Context, lead Lead) (Lead, error)
	Ping(ctx context.Context) error
	Close() error
}
