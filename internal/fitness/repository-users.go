package fitness

import (
	"context"

	"github.com/myrjola/macrofit/internal/errors"
)

type sqliteUserRepository struct {
	baseRepository
}

// Create inserts the user unless it already exists.
func (r *sqliteUserRepository) Create(ctx context.Context, userID string) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		`INSERT INTO users (id) VALUES (?) ON CONFLICT (id) DO NOTHING`, userID); err != nil {
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *sqliteUserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	if err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "query user")
	}
	return exists, nil
}

// Ping checks that both connection pools answer.
func (r *sqliteUserRepository) Ping(ctx context.Context) error {
	if err := r.db.ReadOnly.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping read-only pool")
	}
	if err := r.db.ReadWrite.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping read-write pool")
	}
	return nil
}
