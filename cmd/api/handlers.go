package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
)

type routeHandlers struct {
	Outreach  *handlers.OutreachHandler
	Calendly  *handlers.CalendlyWebhookHandler
	Leads     *handlers.LeadHandler
	Templates *handlers.TemplateHandler
	Offer     *handlers.OfferConfigHandler
	Health    *handlers.HealthHandler
}

func newRouter(h routeHandlers, origins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/outreach/send", h.Outreach.Send)
		r.Post("/calendly/webhook", h.Calendly.Handle)

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", h.Leads.List)
			r.Post("/", h.Leads.Create)
			r.Post("/import", h.Leads.Import)
			r.Post("/capture", h.Leads.CaptureLead)
			r.Get("/{id}", h.Leads.Get)
			r.Put("/{id}", h.Leads.Update)
			r.Delete("/{id}", h.Leads.Delete)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.Templates.List)
			r.Post("/", h.Templates.Create)
			r.Get("/{id}", h.Templates.Get)
			r.Put("/{id}", h.Templates.Update)
			r.Delete("/{id}", h.Templates.Delete)
		})

		r.Get("/offer-config", h.Offer.Get)
		r.Put("/offer-config", h.Offer.Put)
	})

	return r
}
