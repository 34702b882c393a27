package catalog

import (
	"context"
	"fmt"
	"testing"

	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCatalogRepository struct {
	services  map[string]*models.Service
	providers map[string]*models.Provider
	slots     []models.Slot
}

func (s *stubCatalogRepository) FindAllServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, service := range s.services {
		out = append(out, *service)
	}
	return out, nil
}

func (s *stubCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*models.Service, error) {
	service, ok := s.services[serviceID]
	if !ok {
		return nil, exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "service/"+serviceID)
	}
	return service, nil
}

func (s *stubCatalogRepository) FindProviderByID(ctx context.Context, providerID string) (*models.Provider, error) {
	provider, ok := s.providers[providerID]
	if !ok {
		return nil, exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "provider/"+providerID)
	}
	return provider, nil
}

func (s *stubCatalogRepository) FindProvidersByServiceID(ctx context.Context, serviceID string) ([]models.Provider, error) {
	var out []models.Provider
	for _, provider := range s.providers {
		if provider.OffersService(serviceID) {
			out = append(out, *provider)
		}
	}
	return out, nil
}

func (s *stubCatalogRepository) FindSlotByID(ctx context.Context, slotID string) (*models.Slot, error) {
	return nil, exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "slot/"+slotID)
}

func (s *stubCatalogRepository) FindSlotsByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	var out []models.Slot
	for _, slot := range s.slots {
		if slot.ProviderID == providerID && slot.Date == date {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *stubCatalogRepository) MarkSlotBooked(ctx context.Context, slotID string) error { return nil }

func (s *stubCatalogRepository) MarkSlotAvailable(ctx context.Context, slotID string) error {
	return nil
}

func newTestCatalogUsecase() *catalogUsecase {
	return &catalogUsecase{
		CatalogRepository: &stubCatalogRepository{
			services: map[string]*models.Service{
				"svc-1": {ID: "svc-1", Name: "General Consultation", Price: 50000},
			},
			providers: map[string]*models.Provider{
				"prov-1": {ID: "prov-1", Name: "Dr. One", ServiceIDs: []string{"svc-1"}},
				"prov-2": {ID: "prov-2", Name: "Dr. Two", ServiceIDs: []string{"svc-2"}},
			},
			slots: []models.Slot{
				{ID: "slot-1", ProviderID: "prov-1", Date: "2026-09-15", Time: "10:00", IsAvailable: true},
				{ID: "slot-2", ProviderID: "prov-1", Date: "2026-09-16", Time: "10:00", IsAvailable: true},
			},
		},
		Log: zap.NewNop(),
	}
}

func TestCatalogUsecase_FindProvidersByServiceID(t *testing.T) {
	uc := newTestCatalogUsecase()
	ctx := context.Background()

	t.Run("Only Qualified Providers", func(t *testing.T) {
		providers, err := uc.FindProvidersByServiceID(ctx, "svc-1")

		require.NoError(t, err)
		require.Len(t, providers, 1)
		assert.Equal(t, "prov-1", providers[0].ID)
	})

	t.Run("Unknown Service Reads As Not Found", func(t *testing.T) {
		_, err := uc.FindProvidersByServiceID(ctx, "svc-missing")

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, exceptions.ErrCatalogNotFound(nil, "").StatusCode, customErr.StatusCode)
	})
}

func TestCatalogUsecase_FindSlotsByProviderAndDate(t *testing.T) {
	uc := newTestCatalogUsecase()
	ctx := context.Background()

	t.Run("Slots For The Day", func(t *testing.T) {
		slots, err := uc.FindSlotsByProviderAndDate(ctx, "prov-1", "2026-09-15")

		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "slot-1", slots[0].ID)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		_, err := uc.FindSlotsByProviderAndDate(ctx, "prov-1", "15/09/2026")

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, exceptions.ErrCannotParseDate(nil).StatusCode, customErr.StatusCode)
	})

	t.Run("Unknown Provider", func(t *testing.T) {
		_, err := uc.FindSlotsByProviderAndDate(ctx, "prov-missing", "2026-09-15")
		assert.Error(t, err)
	})
}
