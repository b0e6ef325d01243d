package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rmarques/smartbooks/internal/http/account"
	"github.com/rmarques/smartbooks/internal/http/category"
	"github.com/rmarques/smartbooks/internal/http/export"
	"github.com/rmarques/smartbooks/internal/http/importcsv"
	"github.com/rmarques/smartbooks/internal/http/ledger"
)

func New(
	transactionsV1 *ledger.Handler,
	accountsV1 *account.Handler,
	categoriesV1 *category.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Get("/tags", transactionsV1.ListTags)

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)
	})

	return router
}
