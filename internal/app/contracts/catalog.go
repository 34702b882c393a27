package contracts

import (
	"context"

	"clinicbook-service/internal/app/models"
)

type CatalogUsecase interface {
	FindAllServices(ctx context.Context) ([]models.Service, error)
	FindProvidersByServiceID(ctx context.Context, serviceID string) ([]models.Provider, error)
	FindSlotsByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error)
}

type CatalogRepository interface {
	FindAllServices(ctx context.Context) ([]models.Service, error)
	FindServiceByID(ctx context.Context, serviceID string) (*models.Service, error)
	FindProviderByID(ctx context.Context, providerID string) (*models.Provider, error)
	FindProvidersByServiceID(ctx context.Context, serviceID string) ([]models.Provider, error)
	FindSlotByID(ctx context.Context, slotID string) (*models.Slot, error)
	FindSlotsByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error)
	MarkSlotBooked(ctx context.Context, slotID string) error
	MarkSlotAvailable(ctx context.Context, slotID string) error
}
