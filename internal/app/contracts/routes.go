package contracts

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/contract-validity/docs"

	"github.com/magabrotheeeer/contract-validity/internal/config"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/create"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/dashboard"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/list"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/read"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/remove"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/renew"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/renewals"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/renewpreview"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/contract/update"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/health"
	"github.com/magabrotheeeer/contract-validity/internal/http/handlers/validity/check"
	"github.com/magabrotheeeer/contract-validity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/contract-validity/internal/metrics"
	services "github.com/magabrotheeeer/contract-validity/internal/services/contract"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer,
	contractService *services.ContractService, m *metrics.Metrics, gatherer prometheus.Gatherer) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(m),
	)

	r.Get("/health", health.New().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimitRPS, cfg.RateBurst))

		r.Get("/health", health.New().ServeHTTP)
		r.Post("/validity", check.New(logger, contractService).ServeHTTP)

		r.Route("/contracts", func(r chi.Router) {
			r.Post("/", create.New(logger, contractService).ServeHTTP)
			r.Get("/", list.New(logger, contractService).ServeHTTP)
			r.Get("/dashboard", dashboard.New(logger, contractService).ServeHTTP)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", read.New(logger, contractService).ServeHTTP)
				r.Put("/", update.New(logger, contractService).ServeHTTP)
				r.Delete("/", remove.New(logger, contractService).ServeHTTP)
				r.Get("/renewals", renewals.New(logger, contractService).ServeHTTP)
				r.Post("/renewals", renew.New(logger, contractService).ServeHTTP)
				r.Post("/renewals/preview", renewpreview.New(logger, contractService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
