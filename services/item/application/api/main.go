package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/laundry-inventory/pkg/app"
	"github.com/ghuser/laundry-inventory/services/item/application/handlers"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a))
}

// Mount registers item endpoints backed by an already-wired service container.
func Mount(r chi.Router, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/search", handlers.NewSearchItemsHandler(svcs).Execute)
			r.Get("/low-stock", handlers.NewListLowStockHandler(svcs).Execute)
			r.Get("/stock-at-most", handlers.NewListStockAtMostHandler(svcs).Execute)
			r.Get("/category/{category}", handlers.NewListByCategoryHandler(svcs).Execute)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetItemHandler(svcs).Execute)
				r.Put("/", handlers.NewPutItemHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteItemHandler(svcs).Execute)
				r.Patch("/stock", handlers.NewPatchStockHandler(svcs).Execute)
			})
		})
	})
}
