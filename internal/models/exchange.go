package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeCost is the coin price of a single rate lookup.
const ExchangeCost int64 = 1

// Exchange is one committed rate lookup. Immutable once written; the row exists
// iff the matching balance debit committed.
type Exchange struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	CurrencyCode string          `json:"currency_code"`
	Rate         decimal.Decimal `json:"rate"`
	CostCoins    int64           `json:"cost_coins"`
	CreatedAt    time.Time       `json:"created_at"`
}
