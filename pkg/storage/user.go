package storage

import (
	"context"
	"userapi/pkg/domain"
)

// UserStorage defines persistence operations for user records. Email
// comparisons are case-insensitive everywhere: implementations must apply the
// same folding in lookups, existence checks and the uniqueness constraint.
type UserStorage interface {
	// StoreUser inserts a new user and returns the stored row as it exists in
	// the database (including the generated id and timestamps). It returns
	// ErrDuplicateEmail (possibly wrapped) when the insert would violate the
	// email uniqueness constraint.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UpdateUser overwrites name, email and phone of the row identified by
	// user.ID and returns the updated row, or nil when no such row exists.
	// Returns ErrDuplicateEmail when the new email collides with another row.
	UpdateUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID fetches a user by id. Returns nil when not found.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByEmail fetches a user by email. Returns nil when not found.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// Users returns all stored users ordered by creation time, then id.
	// The order is stable across calls.
	Users(ctx context.Context) ([]domain.User, error)
	// UserExistsByEmail reports whether a user with the given email exists.
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	// UserExistsByID reports whether a user with the given id exists.
	UserExistsByID(ctx context.Context, id domain.UserID) (bool, error)
	// DeleteUser removes the row identified by id and reports whether a row
	// was actually deleted.
	DeleteUser(ctx context.Context, id domain.UserID) (bool, error)
}
