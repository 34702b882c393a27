package models

import "time"

type BookingStatus string

const (
	BookingStatusSelectingService    BookingStatus = "selecting_service"
	BookingStatusSelectingProvider   BookingStatus = "selecting_provider"
	BookingStatusSelectingSlot       BookingStatus = "selecting_slot"
	BookingStatusEnteringPatientInfo BookingStatus = "entering_patient_info"
	BookingStatusSelectingPayment    BookingStatus = "selecting_payment"
	BookingStatusProcessingPayment   BookingStatus = "processing_payment"
	BookingStatusConfirmed           BookingStatus = "confirmed"
	BookingStatusCancelled           BookingStatus = "cancelled"
	BookingStatusFailed              BookingStatus = "failed"
)

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled || s == BookingStatusFailed
}

// StepOrder gives the position of each pre-terminal status in the wizard,
// used for retreat and edit-from transitions.
var StepOrder = []BookingStatus{
	BookingStatusSelectingService,
	BookingStatusSelectingProvider,
	BookingStatusSelectingSlot,
	BookingStatusEnteringPatientInfo,
	BookingStatusSelectingPayment,
	BookingStatusProcessingPayment,
}

func StepIndex(s BookingStatus) int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// BookingDraft is the single aggregate the wizard mutates. One draft per
// wizard session, owned exclusively by that session until it reaches a
// terminal status.
type BookingDraft struct {
	ID          string         `json:"id"`
	Status      BookingStatus  `json:"status"`
	Service     *Service       `json:"service,omitempty"`
	Provider    *Provider      `json:"provider,omitempty"`
	Date        string         `json:"date,omitempty"`
	Slot        *Slot          `json:"slot,omitempty"`
	PatientInfo *PatientInfo   `json:"patient_info,omitempty"`
	Payment     *PaymentChoice `json:"payment,omitempty"`
	BookingID   string         `json:"booking_id,omitempty"`

	// SlotLockValue is the fencing token for the redis slot reservation held
	// by this draft, empty when no slot is reserved.
	SlotLockValue string    `json:"slot_lock_value,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentChoice records the selected method and the state of any
// gateway-backed flow attached to the draft.
type PaymentChoice struct {
	Method PaymentMethodKind `json:"method"`

	// Masked payload, method dependent. Raw card numbers are never stored.
	CardLast4 string `json:"card_last4,omitempty"`
	UpiID     string `json:"upi_id,omitempty"`

	OrderID              string `json:"order_id,omitempty"`
	GatewayTransactionID string `json:"gateway_transaction_id,omitempty"`

	// QRGeneration counts regenerate requests. Only a response stamped with
	// the current value may be folded back into the draft; anything older
	// was superseded and must be discarded.
	QRGeneration int    `json:"qr_generation,omitempty"`
	QRImageURL   string `json:"qr_image_url,omitempty"`
	InFlight     bool   `json:"in_flight,omitempty"`
}

type PaymentMethodKind string

const (
	PaymentMethodCard        PaymentMethodKind = "card"
	PaymentMethodUPI         PaymentMethodKind = "upi"
	PaymentMethodQR          PaymentMethodKind = "qr"
	PaymentMethodPayAtClinic PaymentMethodKind = "pay_at_clinic"
)

// RequiresGateway reports whether choosing this method creates a
// PaymentTransaction. Pay-at-clinic never touches the gateway.
func (k PaymentMethodKind) RequiresGateway() bool {
	switch k {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodQR:
		return true
	}
	return false
}
