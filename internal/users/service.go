// Package users implements the user domain service. It enforces the business
// invariants around user records: at most one user per email address, and
// existence checks on reads, updates and deletes. Transport concerns (input
// validation, status codes) and persistence concerns (SQL, pooling) live in
// their own layers; this package only orchestrates repository calls inside
// explicit units of work.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"userapi/pkg/domain"
	"userapi/pkg/serrors"
	"userapi/pkg/storage"
)

// service is the concrete implementation of Service backed by a storage layer.
type service struct {
	storage storage.Storage
}

// New creates a user domain service on top of the provided storage.
func New(storage storage.Storage) Service {
	return &service{storage: storage}
}

// normalizeEmail applies the email case policy: addresses are compared and
// stored lower-cased, so "John@Example.com" and "john@example.com" collide.
func normalizeEmail(email string) string {
	return strings.ToLower(email)
}

// duplicateEmail builds the conflict error surfaced to callers when an email
// is already taken. cause may be nil (pre-flight check) or the storage
// constraint violation (lost race against a concurrent writer).
func duplicateEmail(cause error, email string) error {
	if cause == nil {
		return serrors.With(serrors.ErrConflict, "Email already exists: %s", email)
	}

	return serrors.Wrap(serrors.ErrConflict, cause, "Email already exists: %s", email)
}

// Create checks email uniqueness and persists a new user inside one
// transaction. The pre-flight existence check produces the friendly error;
// the unique index on the users table is the real guard, and its violation is
// translated to the same conflict so a concurrent duplicate insert never
// escapes as an opaque storage error.
func (s service) Create(ctx context.Context, input domain.UserInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	var user *domain.User
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		exists, err := tx.UserExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("could not check email existence: %w", err)
		}
		if exists {
			return duplicateEmail(nil, email)
		}

		stored, err := tx.StoreUser(ctx, domain.User{
			Name:  input.Name,
			Email: email,
			Phone: input.Phone,
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateEmail) {
				return duplicateEmail(err, email)
			}

			return fmt.Errorf("could not store user: %w", err)
		}
		user = stored

		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// All returns every stored user. The sequence is fully materialized and
// ordered by creation time then id, so it is stable within a process run.
func (s service) All(ctx context.Context) ([]domain.User, error) {
	users, err := s.storage.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}

	return users, nil
}

// ByID returns a single user or a not-found error carrying the id.
func (s service) ByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "User not found with id: %s", id)
	}

	return user, nil
}

// Update re-reads the record, checks the email invariant when the address
// changes, and overwrites name, email and phone in the same transaction.
// Changing the email to its own current value is a permitted no-op.
func (s service) Update(ctx context.Context, id domain.UserID, input domain.UserInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	var user *domain.User
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.UserByID(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if existing == nil {
			return serrors.With(serrors.ErrNotFound, "User not found with id: %s", id)
		}

		if existing.Email != email {
			exists, err := tx.UserExistsByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("could not check email existence: %w", err)
			}
			if exists {
				return duplicateEmail(nil, email)
			}
		}

		existing.Name = input.Name
		existing.Email = email
		existing.Phone = input.Phone

		updated, err := tx.UpdateUser(ctx, *existing)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateEmail) {
				return duplicateEmail(err, email)
			}

			return fmt.Errorf("could not update user: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "User not found with id: %s", id)
		}
		user = updated

		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete checks existence and removes the record. Delete is deliberately not
// idempotent: a second delete of the same id reports not found.
func (s service) Delete(ctx context.Context, id domain.UserID) error {
	return s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		exists, err := tx.UserExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("could not check user existence: %w", err)
		}
		if !exists {
			return serrors.With(serrors.ErrNotFound, "User not found with id: %s", id)
		}

		deleted, err := tx.DeleteUser(ctx, id)
		if err != nil {
			return fmt.Errorf("could not delete user: %w", err)
		}
		if !deleted {
			return serrors.With(serrors.ErrNotFound, "User not found with id: %s", id)
		}

		return nil
	})
}
