package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// Client calls the ExchangeRate-API v6 endpoint
// {url}/{key}/latest/{CODE} with a bounded timeout. A circuit breaker
// fail-fasts while the provider is down; breaker rejections surface as
// KindNetwork errors.
type Client struct {
	url           string
	key           string
	quoteCurrency string

	client http.Client
	cb     *gobreaker.CircuitBreaker[Quote]
	logger *slog.Logger
}

func NewClient(url, key, quoteCurrency string, timeout time.Duration, logger *slog.Logger) *Client {
	c := &Client{
		url:           strings.TrimRight(url, "/"),
		key:           key,
		quoteCurrency: strings.ToUpper(quoteCurrency),
		client:        http.Client{Timeout: timeout},
		logger:        logger,
	}
	c.cb = gobreaker.NewCircuitBreaker[Quote](gobreaker.Settings{
		Name:    "rate-provider",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A rejected currency code says nothing about provider health.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var perr *Error
			return errors.As(err, &perr) && perr.Kind == KindUnknownCurrency
		},
	})
	return c
}

func (c *Client) Quote(ctx context.Context, currencyCode string) (Quote, error) {
	q, err := c.cb.Execute(func() (Quote, error) {
		return c.fetch(ctx, currencyCode)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Quote{}, &Error{Kind: KindNetwork, Msg: "rate provider unavailable", Err: err}
	}
	return q, err
}

func (c *Client) fetch(ctx context.Context, currencyCode string) (Quote, error) {
	code := strings.ToUpper(currencyCode)
	url := fmt.Sprintf("%s/%s/latest/%s", c.url, c.key, code)

	c.logger.Debug("loading exchange rate", "currency", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, &Error{Kind: KindNetwork, Msg: "building request", Err: err}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return Quote{}, &Error{Kind: KindTimeout, Msg: "rate provider timeout", Err: err}
		}
		return Quote{}, &Error{Kind: KindNetwork, Msg: "rate provider unreachable", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, &Error{Kind: KindUpstream, Msg: "reading response", Err: err}
	}

	var payload struct {
		Result             string                     `json:"result"`
		ErrorType          string                     `json:"error-type"`
		TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
		ConversionRates    map[string]decimal.Decimal `json:"conversion_rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Quote{}, &Error{Kind: KindUpstream, Msg: "malformed payload", Err: err}
	}
	if payload.ErrorType == "unsupported-code" {
		return Quote{}, &Error{Kind: KindUnknownCurrency, Msg: "unknown currency code " + code}
	}
	if resp.StatusCode != http.StatusOK || payload.Result != "success" {
		return Quote{}, &Error{Kind: KindUpstream, Msg: fmt.Sprintf("rate provider status %d", resp.StatusCode)}
	}
	rate, ok := payload.ConversionRates[c.quoteCurrency]
	if !ok {
		return Quote{}, &Error{Kind: KindUpstream, Msg: "no rate for " + c.quoteCurrency}
	}

	return Quote{
		CurrencyCode: code,
		Rate:         rate,
		ProviderTime: time.Unix(payload.TimeLastUpdateUnix, 0).UTC(),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
