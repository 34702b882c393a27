package contracts

import (
	"context"

	"clinicbook-service/internal/pkg/dto/requests"
	"clinicbook-service/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	GenerateQR(ctx context.Context, request *requests.GatewayQRRequest) (*responses.GatewayQRResponse, error)
	VerifyPayment(ctx context.Context, transactionID string) (*responses.GatewayVerifyResponse, error)
	Configured() bool
}
