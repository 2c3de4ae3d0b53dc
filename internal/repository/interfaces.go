package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"ratewallet/internal/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type Users interface {
	// CreateWithBalance inserts the user and its balance row (seeded with
	// startingCoins) in one transaction.
	CreateWithBalance(ctx context.Context, username, email, passwordHash string, startingCoins int64) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type Balances interface {
	Get(ctx context.Context, userID string) (models.Balance, error)
	// Debit decrements the balance by coins on the caller's transaction, but
	// only if the current amount covers it. Returns ErrInsufficientFunds when
	// it does not, ErrNotFound when no balance row exists. The conditional
	// update is a single statement; callers never read-then-write.
	Debit(ctx context.Context, tx pgx.Tx, userID string, coins int64) (models.Balance, error)
}

// HistoryFilter narrows an exchange history listing. Zero values mean "no
// filter". Day is interpreted as a UTC calendar day.
type HistoryFilter struct {
	UserID       string
	CurrencyCode string
	Day          time.Time
}

type Exchanges interface {
	// Append inserts the record on the caller's transaction.
	Append(ctx context.Context, tx pgx.Tx, rec models.Exchange) (models.Exchange, error)
	List(ctx context.Context, f HistoryFilter) ([]models.Exchange, error)
	// WithTx runs fn inside one transaction, committing on nil and rolling
	// back on error.
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
