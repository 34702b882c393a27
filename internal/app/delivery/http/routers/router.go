package routers

import (
	"time"

	"clinicbook-service/internal/app/config"
	"clinicbook-service/internal/app/delivery/http/controllers"
	"clinicbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	bookingController *controllers.BookingController,
	catalogController *controllers.CatalogController,
	paymentController *controllers.PaymentController,
	healthController *controllers.HealthController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Draft-Token"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			attachBookingRouter(r, middlewares, bookingController, paymentController)
		})

		r.Route("/catalog", func(r chi.Router) {
			attachCatalogRouter(r, catalogController)
		})

		r.Route("/payments", func(r chi.Router) {
			attachPaymentRouter(r, paymentController)
		})

		r.Get("/health", healthController.Health)
	})
}
