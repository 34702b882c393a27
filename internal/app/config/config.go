package config

import (
	"clinicbook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "clinicbook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/v1"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Booking: Booking{
			IDPrefix:               utils.GetEnvString("BOOKING_ID_PREFIX", "APT"),
			DraftTTLInMinutes:      utils.GetEnvInt("BOOKING_DRAFT_TTL_IN_MINUTES", 60),
			SlotLockTTLInSeconds:   utils.GetEnvInt("BOOKING_SLOT_LOCK_TTL_IN_SECONDS", 600),
			RabbitMQEventsQueue:    utils.GetEnvString("BOOKING_RABBITMQ_EVENTS_QUEUE", "booking_events"),
			QRImageBucketName:      utils.GetEnvString("BOOKING_QR_IMAGE_BUCKET_NAME", "booking-qr"),
			QRImageExpiryInMinutes: utils.GetEnvInt("BOOKING_QR_IMAGE_EXPIRY_IN_MINUTES", 15),
		},
		JWT: JWT{
			Secret:           utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInMinutes: utils.GetEnvInt("JWT_EXP_TIME_IN_MINUTES", 60),
		},
		PaymentGateway: PaymentGateway{
			BaseUrl:                 utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", ""),
			ApiKey:                  utils.GetEnvString("PAYMENT_GATEWAY_API_KEY", ""),
			MerchantID:              utils.GetEnvString("PAYMENT_GATEWAY_MERCHANT_ID", ""),
			RequestTimeoutInSeconds: utils.GetEnvInt("PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 10),
			VerifyRatePerSecond:     utils.GetEnvInt("PAYMENT_GATEWAY_VERIFY_RATE_PER_SECOND", 5),
		},
	}
}
