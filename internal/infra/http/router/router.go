package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

type Handlers struct {
	Webhook       *handlers.WebhookHandler
	Orders        *handlers.OrderHandler
	Notifications *handlers.NotificationHandler
	Health        *handlers.HealthHandler
}

type Options struct {
	WebhookSecret  string
	RequestTimeout time.Duration
}

func New(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	// O construtor de sites e o painel chamam de origens diversas.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	if h.Health != nil {
		r.Get("/health", h.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chimw.Timeout(opts.RequestTimeout))
		}

		r.With(middleware.RequireSecret(opts.WebhookSecret)).Post("/webhook", h.Webhook.Handle)
		r.Options("/webhook", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/orders/{orderNumber}", h.Orders.HandleGet)
		r.Patch("/orders/{orderNumber}/status", h.Orders.HandleUpdateStatus)

		r.Get("/notifications/{userId}", h.Notifications.HandleList)
		r.Post("/notifications/{id}/read", h.Notifications.HandleMarkRead)
	})

	return r
}
