package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingRequestKey            = "request"
	LoggingResponseKey           = "response"
	LoggingEndpointKey           = "endpoint"
	LoggingMethodKey             = "method"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingErrorTypeKey          = "error_type"
	LoggingDraftIDKey            = "draft_id"
	LoggingDraftStatusKey        = "draft_status"
	LoggingStepKey               = "step"
	LoggingServiceIDKey          = "service_id"
	LoggingProviderIDKey         = "provider_id"
	LoggingSlotIDKey             = "slot_id"
	LoggingBookingIDKey          = "booking_id"
	LoggingOrderIDKey            = "order_id"
	LoggingTransactionIDKey      = "transaction_id"
	LoggingPaymentMethodKey      = "payment_method"
	LoggingPaymentStatusKey      = "payment_status"
	LoggingPaymentModeKey        = "payment_mode"
	LoggingCallbackAmountKey     = "callback_amount"
	LoggingVerifiedAmountKey     = "verified_amount"
	LoggingQRGenerationKey       = "qr_generation"
	LoggingAmountKey             = "amount"
	LoggingEventKey              = "event"
	LoggingQueueKey              = "queue"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingAttemptsKey           = "verification_attempts"
)
