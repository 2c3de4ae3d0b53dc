package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ratewallet/internal/api/httpx"
	"ratewallet/internal/api/validate"
	"ratewallet/internal/middleware"
	"ratewallet/internal/models"
	"ratewallet/internal/rates"
	"ratewallet/internal/services"
)

type WalletHandler struct {
	Balances  *services.BalanceService
	Exchanges *services.ExchangeService
}

func NewWalletHandler(bs *services.BalanceService, es *services.ExchangeService) *WalletHandler {
	return &WalletHandler{Balances: bs, Exchanges: es}
}

func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}
	b, err := h.Balances.Current(r.Context(), uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

type exchangeReq struct {
	CurrencyCode string `json:"currency_code"`
}

func (h *WalletHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}
	var req exchangeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}
	rec, err := h.Exchanges.Exchange(r.Context(), uid, req.CurrencyCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

func (h *WalletHandler) History(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}
	q := r.URL.Query()
	var day time.Time
	if v := q.Get("date"); v != "" {
		d, ef := validate.Date("date", v)
		if ef != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation_error", ef.Field+": "+ef.Msg, validate.Errs{*ef})
			return
		}
		day = d
	}
	recs, err := h.Exchanges.History(r.Context(), uid, q.Get("currency_code"), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if recs == nil {
		recs = []models.Exchange{}
	}
	httpx.WriteJSON(w, http.StatusOK, recs)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, services.ErrInsufficientBalance):
		httpx.WriteError(w, http.StatusForbidden, "insufficient_balance", "insufficient balance", nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	default:
		var perr *rates.Error
		if errors.As(err, &perr) {
			if perr.Kind == rates.KindUnknownCurrency {
				httpx.WriteError(w, http.StatusBadRequest, "unknown_currency", perr.Msg, nil)
				return
			}
			httpx.WriteError(w, http.StatusBadGateway, "provider_error", "rate provider failed", nil)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
