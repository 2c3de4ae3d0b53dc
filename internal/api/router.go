package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"ratewallet/internal/api/handlers"
	"ratewallet/internal/config"
	"ratewallet/internal/metrics"
	"ratewallet/internal/middleware"
	"ratewallet/internal/services"
)

type RouterDeps struct {
	Cfg         config.Config
	Auth        *middleware.AuthMiddleware
	UserSvc     *services.UserService
	BalanceSvc  *services.BalanceService
	ExchangeSvc *services.ExchangeService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	ah := handlers.NewAuthHandler(d.UserSvc)
	wh := handlers.NewWalletHandler(d.BalanceSvc, d.ExchangeSvc)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Post("/register", ah.Register)
	r.Post("/login", ah.Login)
	r.Post("/refresh", ah.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(d.Auth.Auth)
		r.Get("/balance", wh.Balance)
		r.Post("/currency", wh.Exchange)
		r.Get("/history", wh.History)
	})

	return r
}
