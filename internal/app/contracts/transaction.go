package contracts

import (
	"context"

	"clinicbook-service/internal/app/models"
)

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, transaction *models.PaymentTransaction) (*models.PaymentTransaction, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error)
	FindByDraftID(ctx context.Context, draftID string) (*models.PaymentTransaction, error)
	UpdateTransaction(ctx context.Context, transaction *models.PaymentTransaction) (*models.PaymentTransaction, error)
}
