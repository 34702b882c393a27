package catalog

import (
	"context"
	"sync"
	"time"

	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

var (
	catalogUsecaseInstance contracts.CatalogUsecase
	onceCatalogUsecase     sync.Once
)

type catalogUsecase struct {
	CatalogRepository contracts.CatalogRepository
	Log               *zap.Logger
}

func NewCatalogUsecase(catalogRepository contracts.CatalogRepository, logger *zap.Logger) contracts.CatalogUsecase {
	onceCatalogUsecase.Do(func() {
		instance := &catalogUsecase{
			CatalogRepository: catalogRepository,
			Log:               logger,
		}
		catalogUsecaseInstance = instance
	})
	return catalogUsecaseInstance
}

func (uc *catalogUsecase) FindAllServices(ctx context.Context) ([]models.Service, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.FindAllServices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.CatalogRepository.FindAllServices(ctx)
}

func (uc *catalogUsecase) FindProvidersByServiceID(ctx context.Context, serviceID string) ([]models.Provider, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.FindProvidersByServiceID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	// Validates the service exists so an unknown id reads as 404, not an
	// empty provider list.
	if _, err := uc.CatalogRepository.FindServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return uc.CatalogRepository.FindProvidersByServiceID(ctx, serviceID)
}

func (uc *catalogUsecase) FindSlotsByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.FindSlotsByProviderAndDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderIDKey, providerID),
		zap.String("date", date),
	)

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if _, err := uc.CatalogRepository.FindProviderByID(ctx, providerID); err != nil {
		return nil, err
	}
	return uc.CatalogRepository.FindSlotsByProviderAndDate(ctx, providerID, date)
}
