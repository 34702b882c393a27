package responses

import "clinicbook-service/internal/app/models"

type DraftCreated struct {
	DraftID     string `json:"draft_id"`
	AccessToken string `json:"access_token"`
	Status      string `json:"status"`
	ExpiresIn   int    `json:"expires_in_seconds"`
}

// DraftView is the full wizard state echoed back after every transition, so
// clients can render the current step without tracking anything themselves.
type DraftView struct {
	DraftID     string              `json:"draft_id"`
	Status      string              `json:"status"`
	Service     *models.Service     `json:"service,omitempty"`
	Provider    *models.Provider    `json:"provider,omitempty"`
	Date        string              `json:"date,omitempty"`
	Slot        *models.Slot        `json:"slot,omitempty"`
	PatientInfo *models.PatientInfo `json:"patient_info,omitempty"`
	Payment     *PaymentSummary     `json:"payment,omitempty"`
	BookingID   string              `json:"booking_id,omitempty"`
	TotalAmount int                 `json:"total_amount,omitempty"`
}

// PaymentSummary never carries raw payment details, only what the
// confirmation screen shows.
type PaymentSummary struct {
	Method     string `json:"method"`
	CardLast4  string `json:"card_last4,omitempty"`
	UpiID      string `json:"upi_id,omitempty"`
	OrderID    string `json:"order_id,omitempty"`
	QRImageURL string `json:"qr_image_url,omitempty"`
	Status     string `json:"status,omitempty"`
}
