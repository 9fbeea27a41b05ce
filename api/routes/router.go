package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/worklabs/emarket-backend/api/controllers"
	basketcontrollers "github.com/worklabs/emarket-backend/api/controllers/basket"
	"github.com/worklabs/emarket-backend/api/middleware"
	"github.com/worklabs/emarket-backend/pkg/config"
	"github.com/worklabs/emarket-backend/pkg/db"
	"github.com/worklabs/emarket-backend/pkg/logger"
	"github.com/worklabs/emarket-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	idempotencyStore redis.IdempotencyStore,
	basketService basketcontrollers.Service,
	storefrontService controllers.StorefrontService,
	orderCoordinator controllers.OrderCoordinator,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Get("/store", controllers.StoreFetch(storefrontService, logg))
		r.Get("/products", controllers.ProductList(storefrontService, logg))

		r.Route("/basket", func(r chi.Router) {
			r.Get("/", basketcontrollers.BasketFetch(basketService, logg))
			r.Delete("/", basketcontrollers.BasketClear(basketService, logg))
			r.Post("/items", basketcontrollers.BasketAddItem(basketService, logg))
			r.Delete("/items/{productName}", basketcontrollers.BasketRemoveItem(basketService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderSubmit(orderCoordinator, logg))
			r.Get("/status", controllers.OrderStatus(orderCoordinator, logg))
		})
	})

	return r
}
