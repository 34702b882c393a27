package constvars

// Client-facing messages. Never leak internals here.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please recheck your request"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientDraftNotFound                 = "Booking session not found or expired, please start a new booking"
	ErrClientDraftTerminal                 = "This booking is already finalized and can no longer be changed"
	ErrClientStepNotAllowed                = "This step cannot be submitted yet, please complete the previous steps"
	ErrClientSlotUnavailable               = "The selected time slot is no longer available, please pick another slot"
	ErrClientSlotTaken                     = "The selected time slot was just booked by someone else, please pick another slot"
	ErrClientProviderNotQualified          = "The selected practitioner does not offer this service"
	ErrClientCatalogNotFound               = "The selected item is no longer available, please refresh and choose again"
	ErrClientPaymentMethodMissing          = "Please select a payment method before continuing"
	ErrClientPaymentInFlight               = "A payment request is already in progress, please wait"
	ErrClientPaymentUnavailable            = "Online payment is currently unavailable, please choose pay at clinic"
	ErrClientPaymentNotProcessed           = "Your payment could not be processed, please try again"
	ErrClientInvalidPaymentResponse        = "Invalid payment response"
	ErrClientQRNotActive                   = "QR payment is not active for this booking"
)

// Dev-facing messages, surfaced only outside production.
const (
	ErrDevValidationFailed         = "validation failed for request payload"
	ErrDevCannotParseJSON          = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON        = "failed to marshal value to JSON"
	ErrDevCannotParseDate          = "failed to parse date value"
	ErrDevMissingRequestID         = "request ID missing from request context"
	ErrDevServerDeadlineExceeded   = "context deadline exceeded while processing request"
	ErrDevServerProcess            = "internal server processing error"
	ErrDevDraftNotFound            = "booking draft not found in store"
	ErrDevDraftTerminalState       = "booking draft is in a terminal state"
	ErrDevDraftStepMismatch        = "fragment does not match the draft's current step"
	ErrDevDraftTokenInvalid        = "draft token invalid or expired"
	ErrDevDraftTokenMismatch       = "draft token does not match requested draft"
	ErrDevRedisGetNoData           = "failed to get data from redis with key: %s"
	ErrDevRedisSetData             = "failed to set data to redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRedisIncrementValue      = "failed to increment redis counter"
	ErrDevRedisSetNX               = "failed to acquire redis lock"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevMongoDBFindDocument      = "failed to find document in mongodb"
	ErrDevCatalogNotFound          = "catalog document not found: %s"
	ErrDevMongoDBInsertDocument    = "failed to insert document into mongodb"
	ErrDevMongoDBUpdateDocument    = "failed to update document in mongodb"
	ErrDevMongoDBIterateDocuments  = "failed to iterate mongodb cursor"
	ErrDevGatewayNotConfigured     = "payment gateway credentials are not configured"
	ErrDevGatewayRequestFailed     = "payment gateway request failed"
	ErrDevGatewayDecodeResponse    = "failed to decode payment gateway response"
	ErrDevTransactionNotFound      = "payment transaction not found for order: %s"
	ErrDevTransactionMissingID     = "callback received without transaction_id"
	ErrDevRabbitMQPublishMessage   = "failed to publish message to queue: %s"
	ErrDevMinioCreateObject        = "failed to store object in bucket: %s"
	ErrDevMinioPresignObject       = "failed to presign object in bucket: %s"
	ErrDevCreateHTTPRequest        = "failed to create outbound HTTP request"
	ErrDevSendHTTPRequest          = "failed to send outbound HTTP request"
	ErrDevSlotUnavailable          = "slot is marked unavailable at payment boundary"
	ErrDevSlotLockNotAcquired      = "slot reservation lock not acquired"
	ErrDevUnknownPaymentMethod     = "unknown payment method kind"
	ErrDevQRGenerationSuperseded   = "qr generation superseded by a newer request"
	ErrDevVerificationRateLimited  = "verification poll rate limited"
	ErrDevUnknownVerifiedStatus    = "gateway returned an unrecognized verification status"
	ErrDevInvalidInput             = "invalid input"
	ErrDevBookingCounterMissing    = "booking counter unavailable, falling back to time-derived suffix"
	ErrDevNotificationPublishAsync = "async notification publish failed"
)

const ResponseUnknown = "unknown"
