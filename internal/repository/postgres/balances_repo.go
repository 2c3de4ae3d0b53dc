package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ratewallet/internal/models"
	repo "ratewallet/internal/repository"
)

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) Get(ctx context.Context, userID string) (models.Balance, error) {
	var b models.Balance
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, amount, last_updated_at FROM balances WHERE user_id=$1`,
		userID,
	).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{}, repo.ErrNotFound
	}
	return b, err
}

func (r *balancesRepo) Debit(ctx context.Context, tx pgx.Tx, userID string, coins int64) (models.Balance, error) {
	var b models.Balance
	err := tx.QueryRow(ctx,
		`UPDATE balances
		    SET amount = amount - $2,
		        last_updated_at = now()
		  WHERE user_id = $1 AND amount >= $2
		  RETURNING user_id, amount, last_updated_at`,
		userID, coins,
	).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row matched: either the balance does not cover coins or the user
		// has no balance row at all.
		var exists bool
		if err2 := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM balances WHERE user_id=$1)`, userID).Scan(&exists); err2 != nil {
			return models.Balance{}, err2
		}
		if !exists {
			return models.Balance{}, repo.ErrNotFound
		}
		return models.Balance{}, repo.ErrInsufficientFunds
	}
	return b, err
}
