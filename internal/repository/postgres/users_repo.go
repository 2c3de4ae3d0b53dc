package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ratewallet/internal/models"
	repo "ratewallet/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func (r *usersRepo) CreateWithBalance(ctx context.Context, username, email, passwordHash string, startingCoins int64) (models.User, error) {
	id := uuid.NewString()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO users(id, username, email, password_hash) VALUES($1,$2,$3,$4)`,
		id, username, email, passwordHash,
	)
	if err != nil {
		return models.User{}, translate(err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO balances(user_id, amount, last_updated_at) VALUES($1,$2,now())`,
		id, startingCoins,
	)
	if err != nil {
		return models.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.get(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id=$1`, id)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.get(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username=$1`, username)
}

func (r *usersRepo) get(ctx context.Context, q, arg string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repo.ErrNotFound
	}
	return u, err
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repo.ErrDuplicate
	}
	return err
}
