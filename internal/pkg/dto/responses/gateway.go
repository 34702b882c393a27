package responses

// GatewayQRResponse is the upstream gateway's answer to a QR mint request.
// QRImageBase64 is a PNG; the adapter uploads it to object storage and hands
// out a presigned URL instead of the raw bytes.
type GatewayQRResponse struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	QRImageBase64 string `json:"qr_image_base64"`
	Status        string `json:"status"`
}

type GatewayVerifyResponse struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	Status        string `json:"order_status"`
	PaymentMode   string `json:"payment_mode,omitempty"`
	Amount        int    `json:"amount"`
	Message       string `json:"status_message,omitempty"`
}
