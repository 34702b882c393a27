package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_DRAFT_ID_KEY             ContextKey = "draft_id"
)

const (
	URLParamDraftID    = "draftID"
	URLParamServiceID  = "serviceID"
	URLParamProviderID = "providerID"
)

const (
	RedisDraftKeyPrefix     = "clinicbook:draft:"
	RedisSlotLockKeyPrefix  = "clinicbook:slot_lock:"
	RedisBookingCounterKey  = "clinicbook:booking_counter"
	MongoCollServices       = "services"
	MongoCollProviders      = "providers"
	MongoCollSlots          = "slots"
	MongoCollTransactions   = "transactions"
	QueryParamDate          = "date"
	QueryParamTransactionID = "transaction_id"
	QueryParamOrderID       = "order_id"
	QueryParamOrderStatus   = "order_status"
	QueryParamAmount        = "amount"
)
