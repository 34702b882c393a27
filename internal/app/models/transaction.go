package models

import "time"

type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionProcessing TransactionStatus = "processing"
	TransactionSuccess    TransactionStatus = "success"
	TransactionAborted    TransactionStatus = "aborted"
	TransactionFailed     TransactionStatus = "failed"
)

func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionSuccess || s == TransactionAborted || s == TransactionFailed
}

// PaymentTransaction is created the moment a gateway-backed method is chosen
// and persisted so the redirect callback can find its way back to the draft
// it belongs to. Exactly one transaction per draft in processing_payment;
// pay_at_clinic bookings never get one.
type PaymentTransaction struct {
	OrderID              string            `json:"order_id" bson:"_id"`
	DraftID              string            `json:"draft_id" bson:"draft_id"`
	GatewayTransactionID string            `json:"gateway_transaction_id,omitempty" bson:"gateway_transaction_id,omitempty"`
	Status               TransactionStatus `json:"status" bson:"status"`
	PaymentMode          string            `json:"payment_mode,omitempty" bson:"payment_mode,omitempty"`
	Amount               int               `json:"amount" bson:"amount"`
	Method               PaymentMethodKind `json:"method" bson:"method"`
	VerificationAttempts int               `json:"verification_attempts" bson:"verification_attempts"`
	CreatedAt            time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at" bson:"updated_at"`
}
