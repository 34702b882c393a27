package contracts

import (
	"context"

	"clinicbook-service/internal/pkg/dto/requests"
	"clinicbook-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	GenerateQR(ctx context.Context, draftID string) (*responses.QRPayment, error)
	CheckPaymentStatus(ctx context.Context, draftID string) (*responses.PaymentStatus, error)
	HandleCallback(ctx context.Context, request *requests.PaymentCallback) (*responses.CallbackResult, error)
}
