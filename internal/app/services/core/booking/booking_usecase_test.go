package booking

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"clinicbook-service/internal/app/config"
	"clinicbook-service/internal/app/models"
	redisRepo "clinicbook-service/internal/app/services/shared/redis"
	"clinicbook-service/internal/pkg/dto/requests"
	"clinicbook-service/internal/pkg/dto/responses"
	"clinicbook-service/internal/pkg/exceptions"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalogRepository struct {
	services  map[string]*models.Service
	providers map[string]*models.Provider
	slots     map[string]*models.Slot
	booked    []string
}

func (f *fakeCatalogRepository) FindAllServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*models.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "service/"+serviceID)
	}
	return service, nil
}

func (f *fakeCatalogRepository) FindProviderByID(ctx context.Context, providerID string) (*models.Provider, error) {
	provider, ok := f.providers[providerID]
	if !ok {
		return nil, exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "provider/"+providerID)
	}
	return provider, nil
}

func (f *fakeCatalogRepository) FindProvidersByServiceID(ctx context.Context, serviceID string) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.OffersService(serviceID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepository) FindSlotByID(ctx context.Context, slotID string) (*models.Slot, error) {
	slot, ok := f.slots[slotID]
	if !ok {
		return nil, exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "slot/"+slotID)
	}
	return slot, nil
}

func (f *fakeCatalogRepository) FindSlotsByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.Date == date {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepository) MarkSlotBooked(ctx context.Context, slotID string) error {
	slot, ok := f.slots[slotID]
	if !ok {
		return exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "slot/"+slotID)
	}
	slot.IsAvailable = false
	f.booked = append(f.booked, slotID)
	return nil
}

func (f *fakeCatalogRepository) MarkSlotAvailable(ctx context.Context, slotID string) error {
	slot, ok := f.slots[slotID]
	if !ok {
		return exceptions.ErrCatalogNotFound(fmt.Errorf("not found"), "slot/"+slotID)
	}
	slot.IsAvailable = true
	return nil
}

type fakeTransactionRepository struct {
	transactions map[string]*models.PaymentTransaction
}

func (f *fakeTransactionRepository) CreateTransaction(ctx context.Context, transaction *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	copied := *transaction
	f.transactions[transaction.OrderID] = &copied
	return transaction, nil
}

func (f *fakeTransactionRepository) FindByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error) {
	transaction, ok := f.transactions[orderID]
	if !ok {
		return nil, exceptions.ErrTransactionNotFound(fmt.Errorf("not found"), orderID)
	}
	copied := *transaction
	return &copied, nil
}

func (f *fakeTransactionRepository) FindByDraftID(ctx context.Context, draftID string) (*models.PaymentTransaction, error) {
	for _, transaction := range f.transactions {
		if transaction.DraftID == draftID {
			copied := *transaction
			return &copied, nil
		}
	}
	return nil, exceptions.ErrTransactionNotFound(fmt.Errorf("not found"), draftID)
}

func (f *fakeTransactionRepository) UpdateTransaction(ctx context.Context, transaction *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	copied := *transaction
	f.transactions[transaction.OrderID] = &copied
	return transaction, nil
}

type stubGateway struct {
	configured bool
}

func (s *stubGateway) GenerateQR(ctx context.Context, request *requests.GatewayQRRequest) (*responses.GatewayQRResponse, error) {
	panic("gateway is never called from the booking usecase")
}

func (s *stubGateway) VerifyPayment(ctx context.Context, transactionID string) (*responses.GatewayVerifyResponse, error) {
	panic("gateway is never called from the booking usecase")
}

func (s *stubGateway) Configured() bool { return s.configured }

type fakeLocker struct {
	denyLock    bool
	lockCalls   []string
	unlockCalls []string
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	f.lockCalls = append(f.lockCalls, key)
	if f.denyLock {
		return false, "", nil
	}
	return true, "lock-value-" + key, nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlockCalls = append(f.unlockCalls, key)
	return nil
}

type fakeNotification struct {
	confirmed []string
	failed    []string
}

func (f *fakeNotification) PublishBookingConfirmed(ctx context.Context, bookingID, draftID string) error {
	f.confirmed = append(f.confirmed, bookingID)
	return nil
}

func (f *fakeNotification) PublishPaymentFailed(ctx context.Context, orderID, draftID, reason string) error {
	f.failed = append(f.failed, orderID)
	return nil
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Booking: config.Booking{
			IDPrefix:             "APT",
			DraftTTLInMinutes:    60,
			SlotLockTTLInSeconds: 600,
		},
		JWT: config.JWT{
			Secret:           "test-secret",
			ExpTimeInMinutes: 60,
		},
	}
}

func newTestBookingUsecase(t *testing.T, gatewayConfigured bool) (*bookingUsecase, *fakeCatalogRepository, *fakeTransactionRepository, *fakeLocker, *fakeNotification) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	draftRepo := NewBookingRedisRepository(redisRepo.NewRedisRepository(client))

	catalogRepo := &fakeCatalogRepository{
		services: map[string]*models.Service{
			"svc-1": {ID: "svc-1", Name: "General Consultation", Price: 50000, DurationMinutes: 30},
			"svc-2": {ID: "svc-2", Name: "Dermatology", Price: 80000, DurationMinutes: 45},
		},
		providers: map[string]*models.Provider{
			"prov-1": {ID: "prov-1", Name: "Dr. One", ServiceIDs: []string{"svc-1"}},
			"prov-2": {ID: "prov-2", Name: "Dr. Two", ServiceIDs: []string{"svc-1", "svc-2"}},
		},
		slots: map[string]*models.Slot{
			"slot-1": {ID: "slot-1", ProviderID: "prov-1", Date: "2026-09-15", Time: "10:00", IsAvailable: true},
			"slot-2": {ID: "slot-2", ProviderID: "prov-2", Date: "2026-09-15", Time: "11:00", IsAvailable: true},
			"slot-3": {ID: "slot-3", ProviderID: "prov-1", Date: "2026-09-15", Time: "12:00", IsAvailable: false},
		},
	}
	transactionRepo := &fakeTransactionRepository{transactions: map[string]*models.PaymentTransaction{}}
	locker := &fakeLocker{}
	notification := &fakeNotification{}

	uc := &bookingUsecase{
		DraftRepository:       draftRepo,
		CatalogRepository:     catalogRepo,
		TransactionRepository: transactionRepo,
		PaymentGateway:        &stubGateway{configured: gatewayConfigured},
		Locker:                locker,
		Notification:          notification,
		InternalConfig:        testInternalConfig(),
		Log:                   zap.NewNop(),
	}
	return uc, catalogRepo, transactionRepo, locker, notification
}

func validIntake() *requests.PatientIntake {
	return &requests.PatientIntake{
		Name:                  "Patient One",
		Age:                   30,
		Gender:                "female",
		Phone:                 "9876543210",
		Email:                 "patient@example.com",
		EmergencyContactName:  "Contact One",
		EmergencyContactPhone: "9876543211",
		InsuranceProvider:     "ACME Health",
		ConsentToTreatment:    true,
	}
}

func advanceToPaymentStep(t *testing.T, uc *bookingUsecase, ctx context.Context, draftID string) {
	t.Helper()

	_, err := uc.Advance(ctx, draftID, &requests.AdvanceDraft{ServiceID: "svc-1"})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, draftID, &requests.AdvanceDraft{ProviderID: "prov-1"})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, draftID, &requests.AdvanceDraft{Date: "2026-09-15", SlotID: "slot-1"})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, draftID, &requests.AdvanceDraft{PatientInfo: validIntake()})
	require.NoError(t, err)
}

func TestBookingUsecase_CreateDraft(t *testing.T) {
	uc, _, _, _, _ := newTestBookingUsecase(t, false)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)

	require.NoError(t, err)
	assert.NotEmpty(t, created.DraftID)
	assert.NotEmpty(t, created.AccessToken)
	assert.Equal(t, string(models.BookingStatusSelectingService), created.Status)

	view, err := uc.FindDraftByID(ctx, created.DraftID)
	require.NoError(t, err)
	assert.Equal(t, created.DraftID, view.DraftID)
}

func TestBookingUsecase_PayAtClinicFlow(t *testing.T) {
	uc, catalogRepo, _, locker, notification := newTestBookingUsecase(t, false)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)

	view, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "pay_at_clinic"},
	})

	require.NoError(t, err)
	assert.Equal(t, string(models.BookingStatusConfirmed), view.Status)
	assert.Regexp(t, regexp.MustCompile(`^APT\d{6}$`), view.BookingID)
	assert.Contains(t, catalogRepo.booked, "slot-1", "slot should be marked booked")
	assert.Len(t, locker.lockCalls, 1, "slot should have been reserved")
	assert.Len(t, locker.unlockCalls, 1, "reservation should be released after confirmation")
	assert.Equal(t, []string{view.BookingID}, notification.confirmed)
}

func TestBookingUsecase_AdvanceStepGating(t *testing.T) {
	uc, _, _, _, _ := newTestBookingUsecase(t, false)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)

	t.Run("Wrong Fragment For Step", func(t *testing.T) {
		_, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ProviderID: "prov-1"})
		assertCustomErrorStatus(t, err, exceptions.ErrDraftStepMismatch(nil).StatusCode)
	})

	t.Run("Unknown Service", func(t *testing.T) {
		_, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ServiceID: "svc-missing"})
		assertCustomErrorStatus(t, err, exceptions.ErrCatalogNotFound(nil, "").StatusCode)
	})

	t.Run("Provider Not Offering Service", func(t *testing.T) {
		_, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ServiceID: "svc-1"})
		require.NoError(t, err)

		uc2, _, _, _, _ := newTestBookingUsecase(t, false)
		created2, err := uc2.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = uc2.Advance(ctx, created2.DraftID, &requests.AdvanceDraft{ServiceID: "svc-2"})
		require.NoError(t, err)

		_, err = uc2.Advance(ctx, created2.DraftID, &requests.AdvanceDraft{ProviderID: "prov-1"})
		assertCustomErrorStatus(t, err, exceptions.ErrProviderNotQualified(nil).StatusCode)
	})
}

func TestBookingUsecase_SlotValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("Fully Booked Slot", func(t *testing.T) {
		uc, _, _, _, _ := newTestBookingUsecase(t, false)
		created, err := uc.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ServiceID: "svc-1"})
		require.NoError(t, err)
		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ProviderID: "prov-1"})
		require.NoError(t, err)

		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{Date: "2026-09-15", SlotID: "slot-3"})
		assertCustomErrorStatus(t, err, exceptions.ErrSlotUnavailable(nil).StatusCode)
	})

	t.Run("Slot Of Another Provider", func(t *testing.T) {
		uc, _, _, _, _ := newTestBookingUsecase(t, false)
		created, err := uc.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ServiceID: "svc-1"})
		require.NoError(t, err)
		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ProviderID: "prov-1"})
		require.NoError(t, err)

		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{Date: "2026-09-15", SlotID: "slot-2"})
		assertCustomErrorStatus(t, err, exceptions.ErrSlotUnavailable(nil).StatusCode)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		uc, _, _, _, _ := newTestBookingUsecase(t, false)
		created, err := uc.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ServiceID: "svc-1"})
		require.NoError(t, err)
		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ProviderID: "prov-1"})
		require.NoError(t, err)

		_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{Date: "15-09-2026", SlotID: "slot-1"})
		assertCustomErrorStatus(t, err, exceptions.ErrCannotParseDate(nil).StatusCode)
	})
}

func TestBookingUsecase_ChangedServiceClearsDownstream(t *testing.T) {
	uc, _, _, _, _ := newTestBookingUsecase(t, false)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)

	// Go back to the first step and pick a different service.
	_, err = uc.EditFrom(ctx, created.DraftID, &requests.EditDraft{FromStep: "selecting_service"})
	require.NoError(t, err)

	view, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{ServiceID: "svc-2"})
	require.NoError(t, err)

	assert.Equal(t, string(models.BookingStatusSelectingProvider), view.Status)
	assert.Nil(t, view.Provider, "provider should be cleared after a service change")
	assert.Nil(t, view.Slot, "slot should be cleared after a service change")
	assert.Nil(t, view.PatientInfo, "patient info should be cleared after a service change")
}

func TestBookingUsecase_SlotLockConflict(t *testing.T) {
	uc, _, _, locker, _ := newTestBookingUsecase(t, false)
	locker.denyLock = true
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)

	_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "pay_at_clinic"},
	})

	assertCustomErrorStatus(t, err, exceptions.ErrSlotLockNotAcquired(nil).StatusCode)

	// The draft stays on the payment step so another slot can be chosen.
	view, err := uc.FindDraftByID(ctx, created.DraftID)
	require.NoError(t, err)
	assert.Equal(t, string(models.BookingStatusSelectingPayment), view.Status)
}

func TestBookingUsecase_GatewayMethodWithoutGateway(t *testing.T) {
	uc, _, _, _, _ := newTestBookingUsecase(t, false)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)

	_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "qr"},
	})

	assertCustomErrorStatus(t, err, exceptions.ErrPaymentGatewayUnavailable(nil).StatusCode)
}

func TestBookingUsecase_QRSelectionOpensTransaction(t *testing.T) {
	uc, _, transactionRepo, _, _ := newTestBookingUsecase(t, true)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)

	view, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "qr"},
	})

	require.NoError(t, err)
	assert.Equal(t, string(models.BookingStatusProcessingPayment), view.Status)
	require.NotNil(t, view.Payment)
	assert.NotEmpty(t, view.Payment.OrderID)

	transaction, err := transactionRepo.FindByOrderID(ctx, view.Payment.OrderID)
	require.NoError(t, err)
	assert.Equal(t, created.DraftID, transaction.DraftID)
	assert.Equal(t, models.TransactionPending, transaction.Status)
	assert.Equal(t, 50000, transaction.Amount)
}

func TestBookingUsecase_CardSelectionIsMasked(t *testing.T) {
	uc, _, _, _, _ := newTestBookingUsecase(t, true)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)

	view, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{
			Method: "card",
			Card: &requests.CardDetails{
				Number:     "4111-1111-1111-1111",
				HolderName: "Patient One",
				Expiry:     "12/30",
				CVV:        "123",
			},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, view.Payment)
	assert.Equal(t, "1111", view.Payment.CardLast4, "masking should use the separator-stripped number")
}

func TestBookingUsecase_PaymentMethodUnion(t *testing.T) {
	uc, _, _, _, _ := newTestBookingUsecase(t, true)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)

	t.Run("Card Without Details", func(t *testing.T) {
		_, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
			Payment: &requests.PaymentSelection{Method: "card"},
		})
		assertCustomErrorStatus(t, err, exceptions.ErrPaymentMethodMissing(nil).StatusCode)
	})

	t.Run("UPI Without ID", func(t *testing.T) {
		_, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
			Payment: &requests.PaymentSelection{Method: "upi"},
		})
		assertCustomErrorStatus(t, err, exceptions.ErrPaymentMethodMissing(nil).StatusCode)
	})

	t.Run("QR With Card Details", func(t *testing.T) {
		_, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
			Payment: &requests.PaymentSelection{
				Method: "qr",
				Card:   &requests.CardDetails{Number: "4111111111111111"},
			},
		})
		assertCustomErrorStatus(t, err, exceptions.ErrPaymentMethodMissing(nil).StatusCode)
	})
}

func TestBookingUsecase_CancelAbortsInFlightPayment(t *testing.T) {
	uc, _, transactionRepo, locker, _ := newTestBookingUsecase(t, true)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)
	view, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "qr"},
	})
	require.NoError(t, err)

	cancelled, err := uc.Cancel(ctx, created.DraftID)

	require.NoError(t, err)
	assert.Equal(t, string(models.BookingStatusCancelled), cancelled.Status)
	assert.NotEmpty(t, locker.unlockCalls, "slot reservation should be released on cancel")

	transaction, err := transactionRepo.FindByOrderID(ctx, view.Payment.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionAborted, transaction.Status)
}

func TestBookingUsecase_RetreatFromProcessingReopensPaymentStep(t *testing.T) {
	uc, _, transactionRepo, locker, _ := newTestBookingUsecase(t, true)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)
	view, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "qr"},
	})
	require.NoError(t, err)
	orderID := view.Payment.OrderID

	retreated, err := uc.Retreat(ctx, created.DraftID)

	require.NoError(t, err)
	assert.Equal(t, string(models.BookingStatusSelectingPayment), retreated.Status)
	assert.Nil(t, retreated.Payment, "abandoned payment choice should be dropped")
	assert.Empty(t, locker.unlockCalls, "slot reservation should stay with the draft")

	transaction, err := transactionRepo.FindByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionAborted, transaction.Status, "open transaction should be aborted")

	// The patient can pick another method and still holds the slot.
	confirmed, err := uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "pay_at_clinic"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.BookingStatusConfirmed), confirmed.Status)
	assert.Len(t, locker.lockCalls, 1, "the original reservation should be reused")
}

func TestBookingUsecase_EditReleasesSlotReservation(t *testing.T) {
	uc, _, _, locker, _ := newTestBookingUsecase(t, true)
	ctx := context.Background()

	created, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	advanceToPaymentStep(t, uc, ctx, created.DraftID)
	_, err = uc.Advance(ctx, created.DraftID, &requests.AdvanceDraft{
		Payment: &requests.PaymentSelection{Method: "qr"},
	})
	require.NoError(t, err)

	// Cancel first to leave processing, then verify edits from slot-clearing
	// steps release the reservation. Editing is blocked mid-payment.
	_, err = uc.EditFrom(ctx, created.DraftID, &requests.EditDraft{FromStep: "selecting_slot"})
	assertCustomErrorStatus(t, err, exceptions.ErrDraftStepMismatch(nil).StatusCode)
	assert.Empty(t, locker.unlockCalls, "a rejected edit must not touch the reservation")
}
