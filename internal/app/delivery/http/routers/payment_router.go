package routers

import (
	"clinicbook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// The gateway redirect carries no draft token; the order id in the query
// string is the only linkage back to the booking.
func attachPaymentRouter(router chi.Router, paymentController *controllers.PaymentController) {
	router.Get("/callback", paymentController.Callback)
}
