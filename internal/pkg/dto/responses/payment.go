package responses

type QRPayment struct {
	OrderID    string `json:"order_id"`
	QRImageURL string `json:"qr_image_url"`
	Generation int    `json:"generation"`
	ExpiresIn  int    `json:"expires_in_seconds"`
}

type PaymentStatus struct {
	OrderID     string `json:"order_id"`
	Status      string `json:"status"`
	PaymentMode string `json:"payment_mode,omitempty"`
	BookingID   string `json:"booking_id,omitempty"`
	Message     string `json:"message,omitempty"`
}

// CallbackResult is what the redirect landing endpoint reports after the
// out-of-band gateway response has been folded into the draft. Outcome is
// the UI-facing classification, not the raw transaction status.
type CallbackResult struct {
	OrderID     string `json:"order_id"`
	Outcome     string `json:"outcome"`
	PaymentMode string `json:"payment_mode,omitempty"`
	BookingID   string `json:"booking_id,omitempty"`
	Message     string `json:"message,omitempty"`
}
