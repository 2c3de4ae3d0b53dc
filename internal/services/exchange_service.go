package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ratewallet/internal/metrics"
	"ratewallet/internal/models"
	"ratewallet/internal/rates"
	repo "ratewallet/internal/repository"
	"ratewallet/internal/worker"
)

var codeRe = regexp.MustCompile(`^[A-Za-z]{2,10}$`)

// ExchangeService is the transaction engine: it validates the request, quotes
// the external provider, and commits the debit plus the history record as one
// database transaction. A quote failure charges nothing; a committed record
// always has its debit.
type ExchangeService struct {
	balances repo.Balances
	history  repo.Exchanges
	audit    repo.AuditLogs
	rates    rates.Source
	wp       *worker.Pool
	logger   *slog.Logger
}

func NewExchangeService(balances repo.Balances, history repo.Exchanges, audit repo.AuditLogs, src rates.Source, wp *worker.Pool, logger *slog.Logger) *ExchangeService {
	return &ExchangeService{balances: balances, history: history, audit: audit, rates: src, wp: wp, logger: logger}
}

func (s *ExchangeService) Exchange(ctx context.Context, userID, currencyCode string) (models.Exchange, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if !codeRe.MatchString(code) {
		return models.Exchange{}, fmt.Errorf("%w: currency_code", ErrValidation)
	}

	// Advisory fast path: reject before paying for the provider call. The
	// conditional debit below stays the authoritative check.
	b, err := s.balances.Get(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Exchange{}, ErrNotFound
	}
	if err != nil {
		return models.Exchange{}, err
	}
	if b.Amount < models.ExchangeCost {
		s.recordOutcome(userID, code, "insufficient_balance")
		return models.Exchange{}, ErrInsufficientBalance
	}

	start := time.Now()
	quote, err := s.rates.Quote(ctx, code)
	metrics.ProviderRequestSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		reason := "provider"
		var perr *rates.Error
		if errors.As(err, &perr) {
			reason = perr.Kind.String()
		}
		s.recordOutcome(userID, code, reason)
		s.logger.Warn("quote failed", "user_id", userID, "currency", code, "err", err)
		return models.Exchange{}, err
	}

	rec := models.Exchange{
		ID:           uuid.NewString(),
		UserID:       userID,
		CurrencyCode: quote.CurrencyCode,
		Rate:         quote.Rate,
		CostCoins:    models.ExchangeCost,
	}

	// Once the atomic unit is entered it runs to commit or rollback even if
	// the request context is cancelled; a half-written debit/record pair must
	// never exist.
	commitCtx := context.WithoutCancel(ctx)
	err = s.history.WithTx(commitCtx, func(tx pgx.Tx) error {
		if _, err := s.balances.Debit(commitCtx, tx, userID, models.ExchangeCost); err != nil {
			return err
		}
		var err error
		rec, err = s.history.Append(commitCtx, tx, rec)
		return err
	})
	if errors.Is(err, repo.ErrInsufficientFunds) {
		// Balance changed between the pre-check and the debit.
		s.recordOutcome(userID, code, "insufficient_balance")
		return models.Exchange{}, ErrInsufficientBalance
	}
	if errors.Is(err, repo.ErrNotFound) {
		return models.Exchange{}, ErrNotFound
	}
	if err != nil {
		metrics.ExchangesFailedTotal.WithLabelValues("store").Inc()
		return models.Exchange{}, err
	}

	metrics.ExchangesTotal.Inc()
	s.recordOutcome(userID, code, "committed")
	return rec, nil
}

// History lists the user's committed exchanges newest first. currencyCode
// matches case-insensitively; a non-zero day narrows results to that calendar
// day, matched against record timestamps in UTC.
func (s *ExchangeService) History(ctx context.Context, userID, currencyCode string, day time.Time) ([]models.Exchange, error) {
	f := repo.HistoryFilter{UserID: userID, Day: day}
	if currencyCode != "" {
		if !codeRe.MatchString(currencyCode) {
			return nil, fmt.Errorf("%w: currency_code", ErrValidation)
		}
		f.CurrencyCode = strings.ToUpper(currencyCode)
	}
	return s.history.List(ctx, f)
}

// recordOutcome appends an audit row off the request path. Best effort: audit
// is observability, not ledger state.
func (s *ExchangeService) recordOutcome(userID, code, outcome string) {
	if outcome != "committed" {
		metrics.ExchangesFailedTotal.WithLabelValues(outcome).Inc()
	}
	uid := userID
	s.wp.Submit(func() {
		err := s.audit.Create(context.Background(), models.AuditLog{
			EntityType: "exchange",
			EntityID:   &uid,
			Action:     outcome,
			Details:    map[string]any{"currency_code": code},
		})
		if err != nil {
			s.logger.Warn("audit write failed", "err", err)
		}
	})
}
