package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auditHandler "github.com/elcarbonero/brasa/internal/http/audit"
	"github.com/elcarbonero/brasa/internal/http/auth"
	collectionHandler "github.com/elcarbonero/brasa/internal/http/collection"
	customerHandler "github.com/elcarbonero/brasa/internal/http/customer"
	productHandler "github.com/elcarbonero/brasa/internal/http/product"
	saleHandler "github.com/elcarbonero/brasa/internal/http/sale"
	settingsHandler "github.com/elcarbonero/brasa/internal/http/settings"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func New(
	salesV1 *saleHandler.Handler,
	productsV1 *productHandler.Handler,
	customersV1 *customerHandler.Handler,
	collectionsV1 *collectionHandler.Handler,
	settingsV1 *settingsHandler.Handler,
	logsV1 *auditHandler.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/ventas", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			salesV1.Routes(r)
		})

		r.Route("/inventario", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			productsV1.Routes(r)
		})

		r.Route("/clientes", customersV1.Routes)

		r.Route("/cobranzas", collectionsV1.Routes)

		r.Route("/configuracion", settingsV1.Routes)

		r.Route("/logs", logsV1.Routes)
	})

	return router
}
