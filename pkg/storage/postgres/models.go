package postgres

import (
	"database/sql"
	"time"
	"userapi/pkg/domain"

	"github.com/google/uuid"
)

// PgUser is the row representation of a user. Conversion to and from the
// domain type is explicit so generated columns (id, timestamps) stay under the
// database's control.
type PgUser struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert,skipupdate"`

	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert,skipupdate"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert,skipupdate"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:        domain.UserID(p.ID),
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:        uuid.UUID(user.ID),
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  user.UpdatedAt,
			Valid: !user.UpdatedAt.IsZero(),
		},
	}
}

func pgUsersToDomain(users []PgUser) []domain.User {
	out := make([]domain.User, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToDomain())
	}

	return out
}
