package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ratewallet/internal/models"
	repo "ratewallet/internal/repository"
)

type exchangesRepo struct{ pool *pgxpool.Pool }

func (r *exchangesRepo) Append(ctx context.Context, tx pgx.Tx, rec models.Exchange) (models.Exchange, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO exchanges(id, user_id, currency_code, rate, cost_coins)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, user_id, currency_code, rate, cost_coins, created_at`,
		rec.ID, rec.UserID, rec.CurrencyCode, rec.Rate, rec.CostCoins,
	).Scan(&rec.ID, &rec.UserID, &rec.CurrencyCode, &rec.Rate, &rec.CostCoins, &rec.CreatedAt)
	return rec, err
}

// List returns records newest first. The currency filter matches
// case-insensitively; the day filter covers [Day 00:00, +24h) in UTC.
func (r *exchangesRepo) List(ctx context.Context, f repo.HistoryFilter) ([]models.Exchange, error) {
	q := `SELECT id, user_id, currency_code, rate, cost_coins, created_at
	        FROM exchanges WHERE user_id=$1`
	args := []any{f.UserID}

	if f.CurrencyCode != "" {
		args = append(args, f.CurrencyCode)
		q += ` AND upper(currency_code) = upper($` + strconv.Itoa(len(args)) + `)`
	}
	if !f.Day.IsZero() {
		y, m, d := f.Day.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		args = append(args, day)
		q += ` AND created_at >= $` + strconv.Itoa(len(args))
		args = append(args, day.AddDate(0, 0, 1))
		q += ` AND created_at < $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Exchange
	for rows.Next() {
		var rec models.Exchange
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CurrencyCode, &rec.Rate, &rec.CostCoins, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// WithTx runs fn in one transaction at the default read-committed level.
// The debit's conditional UPDATE is the serialization point: a concurrent
// writer makes the loser re-evaluate the WHERE clause after the row lock
// clears and match zero rows, instead of aborting with a serialization
// failure as a stricter level would.
func (r *exchangesRepo) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
