package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical textual form of the ID.
func (id UserID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the zero UUID, i.e. not assigned yet.
func (id UserID) IsZero() bool { return uuid.UUID(id) == uuid.UUID{} }

// User represents a registered user of the system.
// The ID is assigned by the storage layer on first save and is immutable
// afterwards. Email is unique across all users (compared case-insensitively).
type User struct {
	// ID is the unique identifier of the user, zero before creation.
	ID UserID `json:"id"`

	// Name is the user's display name, 2 to 100 characters.
	Name string `json:"name"`
	// Email is the user's address, stored lower-cased.
	Email string `json:"email"`
	// Phone is the user's phone number, 10 to 15 digits.
	Phone string `json:"phone"`

	// CreatedAt is the time when the user record was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the user record was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserInput carries the caller-supplied fields for creating or updating a
// user. Field-level constraints (name length, email syntax, phone format) are
// enforced at the transport boundary before the input reaches the domain
// service.
type UserInput struct {
	Name  string
	Email string
	Phone string
}
