package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook-service/internal/app/config"
	"clinicbook-service/internal/app/delivery/http/controllers"
	"clinicbook-service/internal/app/delivery/http/middlewares"
	"clinicbook-service/internal/app/delivery/http/routers"
	"clinicbook-service/internal/app/drivers/database"
	"clinicbook-service/internal/app/drivers/logger"
	"clinicbook-service/internal/app/drivers/messaging"
	minioDriver "clinicbook-service/internal/app/drivers/storage"
	"clinicbook-service/internal/app/services/core/booking"
	"clinicbook-service/internal/app/services/core/catalog"
	"clinicbook-service/internal/app/services/core/payments"
	"clinicbook-service/internal/app/services/shared/locker"
	"clinicbook-service/internal/app/services/shared/notification"
	"clinicbook-service/internal/app/services/shared/payment_gateway"
	redisRepo "clinicbook-service/internal/app/services/shared/redis"
	"clinicbook-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := minioDriver.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConnection,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	// Shared services
	redisRepository := redisRepo.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	storageService := storage.NewMinioStorage(minioClient)
	notificationPublisher := notification.NewRabbitMQPublisher(rabbitConnection, internalConfig.Booking.RabbitMQEventsQueue, zapLogger)
	gatewayService := payment_gateway.NewGatewayService(internalConfig, zapLogger)

	// Repositories
	draftRepository := booking.NewBookingRedisRepository(redisRepository)
	catalogRepository := catalog.NewCatalogMongoRepository(mongoClient, driverConfig.MongoDB.DbName)
	transactionRepository := payments.NewTransactionMongoRepository(mongoClient, driverConfig.MongoDB.DbName)

	// Usecases
	bookingUsecase := booking.NewBookingUsecase(
		draftRepository,
		catalogRepository,
		transactionRepository,
		gatewayService,
		lockerService,
		notificationPublisher,
		internalConfig,
		zapLogger,
	)
	catalogUsecase := catalog.NewCatalogUsecase(catalogRepository, zapLogger)
	paymentUsecase := payments.NewPaymentUsecase(
		draftRepository,
		transactionRepository,
		catalogRepository,
		gatewayService,
		storageService,
		lockerService,
		notificationPublisher,
		internalConfig,
		zapLogger,
	)

	// Delivery
	middlewareSet := middlewares.NewMiddlewares(zapLogger, internalConfig)
	bookingController := controllers.NewBookingController(zapLogger, bookingUsecase)
	catalogController := controllers.NewCatalogController(zapLogger, catalogUsecase)
	paymentController := controllers.NewPaymentController(zapLogger, paymentUsecase)
	healthController := controllers.NewHealthController(zapLogger, internalConfig)

	routers.SetupRoutes(chiRouter, internalConfig, middlewareSet, bookingController, catalogController, paymentController, healthController)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	bootLog.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	bootLog.Println("Waiting for pending requests to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootLog.Printf("Error during dependency shutdown: %v", err)
	}

	bootLog.Println("Server exiting")
}
