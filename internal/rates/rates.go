package rates

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindNetwork: the provider could not be reached.
	KindNetwork Kind = iota
	// KindTimeout: the call exceeded the client's bounded timeout.
	KindTimeout
	// KindUpstream: the provider answered with a non-success status or a
	// payload we could not use.
	KindUpstream
	// KindUnknownCurrency: the provider explicitly rejected the code.
	KindUnknownCurrency
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindUpstream:
		return "upstream"
	case KindUnknownCurrency:
		return "unknown_currency"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Quote is one rate lookup result: the value of one unit of CurrencyCode in
// the configured quote currency, as of ProviderTime.
type Quote struct {
	CurrencyCode string
	Rate         decimal.Decimal
	ProviderTime time.Time
}

// Source yields rate quotes. Implementations are stateless between calls and
// never retry on their own.
type Source interface {
	Quote(ctx context.Context, currencyCode string) (Quote, error)
}
