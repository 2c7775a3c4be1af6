package postgres_test

import (
	"context"
	"testing"
	"userapi/pkg/domain"
	"userapi/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_StoreUser(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	t.Run("store assigns id and timestamps", func(t *testing.T) {
		stored, err := pgSQL.StoreUser(ctx, domain.User{
			Name:  "John Doe",
			Email: "john@example.com",
			Phone: "1234567890",
		})
		require.NoError(t, err)
		require.False(t, stored.ID.IsZero())
		require.Equal(t, "John Doe", stored.Name)
		require.Equal(t, "john@example.com", stored.Email)
		require.Equal(t, "1234567890", stored.Phone)
		require.False(t, stored.CreatedAt.IsZero())
	})

	t.Run("duplicate email is a constraint violation", func(t *testing.T) {
		_, err := pgSQL.StoreUser(ctx, domain.User{
			Name:  "John Clone",
			Email: "john@example.com",
			Phone: "1234567890",
		})
		require.Error(t, err)
		require.ErrorIs(t, err, storage.ErrDuplicateEmail)
	})

	t.Run("duplicate email differing only in case is rejected", func(t *testing.T) {
		_, err := pgSQL.StoreUser(ctx, domain.User{
			Name:  "John Shout",
			Email: "JOHN@EXAMPLE.COM",
			Phone: "1234567890",
		})
		require.Error(t, err)
		require.ErrorIs(t, err, storage.ErrDuplicateEmail)
	})
}

func TestPgSQL_UserLookups(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	stored, err := pgSQL.StoreUser(ctx, domain.User{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "0987654321",
	})
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		found, err := pgSQL.UserByID(ctx, stored.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, stored.ID, found.ID)
		require.Equal(t, "jane@example.com", found.Email)
	})

	t.Run("by id not found", func(t *testing.T) {
		found, err := pgSQL.UserByID(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Nil(t, found)
	})

	t.Run("by email is case-insensitive", func(t *testing.T) {
		found, err := pgSQL.UserByEmail(ctx, "Jane@Example.COM")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, stored.ID, found.ID)
	})

	t.Run("by email not found", func(t *testing.T) {
		found, err := pgSQL.UserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.Nil(t, found)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := pgSQL.UserExistsByEmail(ctx, "JANE@example.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = pgSQL.UserExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("exists by id", func(t *testing.T) {
		exists, err := pgSQL.UserExistsByID(ctx, stored.ID)
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = pgSQL.UserExistsByID(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestPgSQL_Users_InsertionOrder(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, e := range emails {
		_, err := pgSQL.StoreUser(ctx, domain.User{Name: "User", Email: e, Phone: "1234567890"})
		require.NoError(t, err)
	}

	all, err := pgSQL.Users(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, e := range emails {
		require.Equal(t, e, all[i].Email)
	}

	// calling again yields the same order
	again, err := pgSQL.Users(ctx)
	require.NoError(t, err)
	require.Equal(t, all, again)
}

func TestPgSQL_UpdateUser(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	first, err := pgSQL.StoreUser(ctx, domain.User{
		Name: "John Doe", Email: "john@example.com", Phone: "1234567890",
	})
	require.NoError(t, err)
	second, err := pgSQL.StoreUser(ctx, domain.User{
		Name: "Jane Doe", Email: "jane@example.com", Phone: "0987654321",
	})
	require.NoError(t, err)

	t.Run("overwrites fields and sets updated_at", func(t *testing.T) {
		updated, err := pgSQL.UpdateUser(ctx, domain.User{
			ID: first.ID, Name: "John Q. Doe", Email: "john@example.com", Phone: "1111111111",
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, first.ID, updated.ID)
		require.Equal(t, "John Q. Doe", updated.Name)
		require.Equal(t, "1111111111", updated.Phone)
		require.False(t, updated.UpdatedAt.IsZero())
	})

	t.Run("missing id returns nil", func(t *testing.T) {
		updated, err := pgSQL.UpdateUser(ctx, domain.User{
			ID: domain.UserID(uuid.New()), Name: "Ghost", Email: "ghost@example.com", Phone: "2222222222",
		})
		require.NoError(t, err)
		require.Nil(t, updated)
	})

	t.Run("stealing another user's email is a constraint violation", func(t *testing.T) {
		_, err := pgSQL.UpdateUser(ctx, domain.User{
			ID: second.ID, Name: "Jane Doe", Email: "john@example.com", Phone: "0987654321",
		})
		require.Error(t, err)
		require.ErrorIs(t, err, storage.ErrDuplicateEmail)

		// the stored email must remain unchanged
		current, err := pgSQL.UserByID(ctx, second.ID)
		require.NoError(t, err)
		require.Equal(t, "jane@example.com", current.Email)
	})
}

func TestPgSQL_DeleteUser(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	stored, err := pgSQL.StoreUser(ctx, domain.User{
		Name: "John Doe", Email: "john@example.com", Phone: "1234567890",
	})
	require.NoError(t, err)

	// first delete removes the row
	deleted, err := pgSQL.DeleteUser(ctx, stored.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	found, err := pgSQL.UserByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Nil(t, found)

	// second delete affects nothing
	deleted, err = pgSQL.DeleteUser(ctx, stored.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}
