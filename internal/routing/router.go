package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Router struct {
	handler *ProductHandler
	logger  *Logger
	metrics *Metrics
}

func NewRouter(handler *ProductHandler, logger *Logger, metrics *Metrics) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (router *Router) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(router.logger.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.metrics.Middleware)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", router.handler.GetProducts)
		r.Post("/", router.handler.CreateProduct)
		r.Get("/{id}", router.handler.GetProductById)
		r.Patch("/{id}", router.handler.UpdateProduct)
		r.Delete("/{id}", router.handler.DeleteProduct)
	})

	r.Get("/health", router.handler.Health)
	r.Method(http.MethodGet, "/metrics", router.metrics.Handler())

	return r
}
