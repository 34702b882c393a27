package config

type (
	InternalConfig struct {
		App            App
		Booking        Booking
		JWT            JWT
		PaymentGateway PaymentGateway
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		BaseUrl                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
	}

	Booking struct {
		IDPrefix               string
		DraftTTLInMinutes      int
		SlotLockTTLInSeconds   int
		RabbitMQEventsQueue    string
		QRImageBucketName      string
		QRImageExpiryInMinutes int
	}

	JWT struct {
		Secret           string
		ExpTimeInMinutes int
	}

	// PaymentGateway is optional. An empty BaseUrl means no gateway is
	// configured and every gateway-backed method degrades to pay at clinic.
	PaymentGateway struct {
		BaseUrl                 string
		ApiKey                  string
		MerchantID              string
		RequestTimeoutInSeconds int
		VerifyRatePerSecond     int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)
