package requests

// PaymentSelection is a tagged union keyed on Method. Only the details block
// matching the method may be present; the others must be absent. The usecase
// masks card numbers before anything is stored.
type PaymentSelection struct {
	Method string `json:"method" validate:"required,oneof=card upi qr pay_at_clinic"`

	Card  *CardDetails `json:"card,omitempty"`
	UpiID string       `json:"upi_id,omitempty" validate:"omitempty,upi_id"`
}

type CardDetails struct {
	Number     string `json:"number" validate:"required,card_number"`
	HolderName string `json:"holder_name" validate:"required,min=2,max=100"`
	Expiry     string `json:"expiry" validate:"required,card_expiry"`
	CVV        string `json:"cvv" validate:"required,min=3,max=4,numeric"`
}

// GatewayQRRequest is what the gateway adapter sends upstream to mint a QR
// code for an order. The customer and appointment fields let the gateway
// show the payer what the QR is for.
type GatewayQRRequest struct {
	OrderID       string `json:"order_id" validate:"required"`
	Amount        int    `json:"amount" validate:"required,min=1"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	AppointmentID string `json:"appointment_id"`
	ServiceType   string `json:"service_type"`
	Generation    int    `json:"-"`
}

// PaymentCallback is decoded from the gateway redirect's query string, the
// only entry path that does not originate from the booking flow itself.
type PaymentCallback struct {
	OrderID       string `json:"order_id" validate:"required"`
	OrderStatus   string `json:"order_status" validate:"required"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
}
