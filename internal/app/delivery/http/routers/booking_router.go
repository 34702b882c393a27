package routers

import (
	"clinicbook-service/internal/app/delivery/http/controllers"
	"clinicbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBookingRouter(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController, paymentController *controllers.PaymentController) {
	router.Post("/", bookingController.CreateDraft)

	router.Route("/{draftID}", func(r chi.Router) {
		r.Use(middlewares.DraftAuthorization)
		r.Get("/", bookingController.GetDraft)
		r.Post("/advance", bookingController.Advance)
		r.Post("/retreat", bookingController.Retreat)
		r.Post("/edit", bookingController.EditFrom)
		r.Post("/cancel", bookingController.Cancel)

		r.Route("/payment", func(r chi.Router) {
			r.Post("/qr", paymentController.GenerateQR)
			r.Get("/status", paymentController.CheckPaymentStatus)
		})
	})
}
