package constvars

// Verification statuses reported by the payment gateway. The gateway's
// order_status is the single source of truth for outcome classification.
const (
	GatewayStatusSuccess = "Success"
	GatewayStatusAborted = "Aborted"
	GatewayStatusPending = "Pending"
	GatewayStatusFailed  = "Failed"
)

// Outcome classifications shown on the redirect landing page. An aborted
// transaction reads as cancelled to the patient.
const (
	CallbackOutcomeSuccess   = "success"
	CallbackOutcomeCancelled = "cancelled"
	CallbackOutcomeFailed    = "failed"
)

const (
	NotificationEventBookingConfirmed = "booking_confirmed"
	NotificationEventPaymentFailed    = "payment_failed"
)
