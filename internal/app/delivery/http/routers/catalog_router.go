package routers

import (
	"clinicbook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachCatalogRouter(router chi.Router, catalogController *controllers.CatalogController) {
	router.Get("/services", catalogController.GetServices)
	router.Get("/services/{serviceID}/providers", catalogController.GetProvidersByService)
	router.Get("/providers/{providerID}/slots", catalogController.GetSlots)
}
