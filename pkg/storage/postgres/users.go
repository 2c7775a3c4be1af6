package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"userapi/pkg/domain"
	"userapi/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	usersTable = "users"
)

// translateUserError maps a unique-violation on the users email index to
// storage.ErrDuplicateEmail so the domain layer can distinguish a racing
// duplicate insert from any other storage failure. Everything else passes
// through wrapped.
func translateUserError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, storage.ErrDuplicateEmail)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// lowerEmail builds the case-insensitive email comparison used by lookups and
// existence checks. The same folding backs the unique index on LOWER(email).
func lowerEmail(email string) goqu.Expression {
	return goqu.Func("LOWER", goqu.C("email")).Eq(strings.ToLower(email))
}

func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var pgUser PgUser
	pgUser.FromDomain(user)

	var row PgUser
	found, err := p.Builder.Insert(usersTable).
		Rows(pgUser).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, translateUserError(err, "could not store user into pg")
	}
	if !found {
		return nil, fmt.Errorf("could not store user into pg: no row returned")
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UpdateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(goqu.Record{
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(user.ID)),
	).Returning(&PgUser{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, translateUserError(err, "could not update user in pg")
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(lowerEmail(email)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by email: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// Users returns all users ordered by created_at, then id, so the sequence is
// stable (insertion order) across calls.
func (p *PgSQL) Users(ctx context.Context) ([]domain.User, error) {
	var rows []PgUser
	if err := p.Builder.From(usersTable).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch users from pg: %w", err)
	}

	return pgUsersToDomain(rows), nil
}

func (p *PgSQL) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	var one int
	found, err := p.Builder.From(usersTable).
		Where(lowerEmail(email)).
		Select(goqu.V(1)).
		Limit(1).
		Executor().ScanValContext(ctx, &one)
	if err != nil {
		return false, fmt.Errorf("could not check user existence by email: %w", err)
	}

	return found, nil
}

func (p *PgSQL) UserExistsByID(ctx context.Context, id domain.UserID) (bool, error) {
	var one int
	found, err := p.Builder.From(usersTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Select(goqu.V(1)).
		Limit(1).
		Executor().ScanValContext(ctx, &one)
	if err != nil {
		return false, fmt.Errorf("could not check user existence by id: %w", err)
	}

	return found, nil
}

func (p *PgSQL) DeleteUser(ctx context.Context, id domain.UserID) (bool, error) {
	res, err := p.Builder.Delete(usersTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete user in pg: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get affected rows: %w", err)
	}

	return affected > 0, nil
}
