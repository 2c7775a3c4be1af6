package users

import (
	"context"
	"userapi/pkg/domain"
)

// Service is the user domain service: the single authority for the email
// uniqueness and existence invariants. All mutations of users go through it.
//
//go:generate mockgen -package mockusers -source=interface.go -destination=mock/mockusers.go *
type Service interface {
	// Create stores a new user built from input and returns the persisted
	// representation with its assigned id. Fails with serrors.ErrConflict when
	// a user with the same email already exists.
	Create(ctx context.Context, input domain.UserInput) (*domain.User, error)
	// All returns every stored user, fully materialized, in insertion order
	// (created_at then id; stable across calls).
	All(ctx context.Context) ([]domain.User, error)
	// ByID returns the user with the given id, or serrors.ErrNotFound.
	ByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// Update overwrites name, email and phone of an existing user. Fails with
	// serrors.ErrNotFound when the id does not exist and serrors.ErrConflict
	// when the new email is already held by another user. Keeping the current
	// email is always permitted.
	Update(ctx context.Context, id domain.UserID, input domain.UserInput) (*domain.User, error)
	// Delete removes the user with the given id, or fails with
	// serrors.ErrNotFound. Deleting the same id twice fails the second time.
	Delete(ctx context.Context, id domain.UserID) error
}
