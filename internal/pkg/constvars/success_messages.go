package constvars

const (
	ResponseSuccess = "Success"

	DraftCreatedMessage       = "Booking started, please select a service"
	DraftAdvancedMessage      = "Step completed"
	DraftRetreatedMessage     = "Returned to previous step"
	DraftEditMessage          = "Booking reopened for editing"
	DraftCancelledMessage     = "Booking cancelled"
	BookingConfirmedMessage   = "Your appointment is confirmed"
	QRGeneratedMessage        = "Scan the QR code to complete your payment"
	PaymentStatusMessage      = "Payment status retrieved"
	CallbackProcessedMessage  = "Payment callback processed"
	CatalogRetrievedMessage   = "Catalog retrieved"
	PaymentCancelledMessage   = "Payment was cancelled"
	PaymentFailedShownMessage = "Payment could not be processed"
)
