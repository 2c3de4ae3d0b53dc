package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ratewallet/internal/models"
	"ratewallet/internal/rates"
	repo "ratewallet/internal/repository"
)

// In-memory stand-ins for the postgres repositories. They reproduce the store
// semantics the engine relies on: the conditional decrement is a single atomic
// step, and history rows are returned newest first.

type fakeBalances struct {
	mu   sync.Mutex
	rows map[string]*models.Balance
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{rows: map[string]*models.Balance{}}
}

func (f *fakeBalances) set(userID string, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[userID] = &models.Balance{UserID: userID, Amount: amount, LastUpdatedAt: time.Now()}
}

func (f *fakeBalances) Get(_ context.Context, userID string) (models.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[userID]
	if !ok {
		return models.Balance{}, repo.ErrNotFound
	}
	return *b, nil
}

func (f *fakeBalances) Debit(_ context.Context, _ pgx.Tx, userID string, coins int64) (models.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[userID]
	if !ok {
		return models.Balance{}, repo.ErrNotFound
	}
	if b.Amount < coins {
		return models.Balance{}, repo.ErrInsufficientFunds
	}
	b.Amount -= coins
	b.LastUpdatedAt = time.Now()
	return *b, nil
}

type fakeExchanges struct {
	mu   sync.Mutex
	rows []models.Exchange
}

func (f *fakeExchanges) Append(_ context.Context, _ pgx.Tx, rec models.Exchange) (models.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	f.rows = append(f.rows, rec)
	return rec, nil
}

func (f *fakeExchanges) List(_ context.Context, flt repo.HistoryFilter) ([]models.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Exchange
	for _, rec := range f.rows {
		if rec.UserID != flt.UserID {
			continue
		}
		if flt.CurrencyCode != "" && !strings.EqualFold(rec.CurrencyCode, flt.CurrencyCode) {
			continue
		}
		if !flt.Day.IsZero() {
			y, m, d := flt.Day.UTC().Date()
			day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			if rec.CreatedAt.UTC().Before(day) || !rec.CreatedAt.UTC().Before(day.AddDate(0, 0, 1)) {
				continue
			}
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeExchanges) WithTx(_ context.Context, fn func(pgx.Tx) error) error {
	return fn(nil)
}

func (f *fakeExchanges) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeAudit struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (f *fakeAudit) Create(_ context.Context, l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, l)
	return nil
}

type fakeRates struct {
	mu      sync.Mutex
	calls   int
	quote   rates.Quote
	err     error
	onQuote func()
}

func (f *fakeRates) Quote(_ context.Context, code string) (rates.Quote, error) {
	f.mu.Lock()
	f.calls++
	hook := f.onQuote
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.err != nil {
		return rates.Quote{}, f.err
	}
	q := f.quote
	if q.CurrencyCode == "" {
		q.CurrencyCode = strings.ToUpper(code)
	}
	return q, nil
}

func (f *fakeRates) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeUsers struct {
	mu            sync.Mutex
	rows          map[string]models.User
	startingCoins int64
	balances      *fakeBalances
}

func newFakeUsers(b *fakeBalances) *fakeUsers {
	return &fakeUsers{rows: map[string]models.User{}, balances: b}
}

func (f *fakeUsers) CreateWithBalance(_ context.Context, username, email, passwordHash string, startingCoins int64) (models.User, error) {
	f.mu.Lock()
	for _, u := range f.rows {
		if u.Username == username || u.Email == email {
			f.mu.Unlock()
			return models.User{}, repo.ErrDuplicate
		}
	}
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.rows[u.ID] = u
	f.startingCoins = startingCoins
	f.mu.Unlock()

	f.balances.set(u.ID, startingCoins)
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}
