package userrepo

import (
	"context"

	"github.com/Thadzy/FIBO-Store/model"

	"github.com/jackc/pgx/v5"
)

type Repo interface {
	ByEmail(ctx context.Context, tx pgx.Tx, email string) (*model.User, error)
	Insert(ctx context.Context, tx pgx.Tx, email, fullName string) (*model.User, error)
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) ByEmail(ctx context.Context, tx pgx.Tx, email string) (*model.User, error) {
	u := &model.User{}
	err := tx.QueryRow(ctx, `
		SELECT user_id, email, COALESCE(full_name,''), COALESCE(role,'Student'), created_at
		FROM users
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.UserID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Insert lets the store assign the identifier; role defaults to Student.
// When a concurrent transaction already took the email, ON CONFLICT DO
// NOTHING inserts no row and the transaction stays usable — the absent
// RETURNING row surfaces as pgx.ErrNoRows, never as a statement error.
func (r *repo) Insert(ctx context.Context, tx pgx.Tx, email, fullName string) (*model.User, error) {
	u := &model.User{}
	err := tx.QueryRow(ctx, `
		INSERT INTO users (email, full_name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
		RETURNING user_id, email, COALESCE(full_name,''), COALESCE(role,'Student'), created_at`,
		email, fullName,
	).Scan(&u.UserID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
