package booking

import (
	"testing"

	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
)

func draftAtPaymentStep() *models.BookingDraft {
	return &models.BookingDraft{
		ID:     "draft-1",
		Status: models.BookingStatusSelectingPayment,
		Service: &models.Service{
			ID:    "svc-1",
			Name:  "General Consultation",
			Price: 50000,
		},
		Provider: &models.Provider{
			ID:   "prov-1",
			Name: "Dr. Example",
		},
		Date: "2026-09-15",
		Slot: &models.Slot{
			ID:         "slot-1",
			ProviderID: "prov-1",
			Date:       "2026-09-15",
			Time:       "10:00",
		},
		PatientInfo: &models.PatientInfo{
			Name: "Patient One",
		},
	}
}

func TestRetreatDraft(t *testing.T) {
	t.Run("Retreat Keeps Earlier Selections", func(t *testing.T) {
		draft := draftAtPaymentStep()

		err := retreatDraft(draft)

		assert.NoError(t, err)
		assert.Equal(t, models.BookingStatusEnteringPatientInfo, draft.Status)
		assert.NotNil(t, draft.Service, "service selection should survive a retreat")
		assert.NotNil(t, draft.Slot, "slot selection should survive a retreat")
		assert.NotNil(t, draft.PatientInfo, "patient info should survive a retreat")
	})

	t.Run("Retreat From First Step", func(t *testing.T) {
		draft := &models.BookingDraft{ID: "draft-1", Status: models.BookingStatusSelectingService}

		err := retreatDraft(draft)

		assertCustomErrorStatus(t, err, exceptions.ErrDraftStepMismatch(nil).StatusCode)
	})

	t.Run("Retreat While Processing Payment Reopens Payment Step", func(t *testing.T) {
		draft := draftAtPaymentStep()
		draft.Status = models.BookingStatusProcessingPayment
		draft.Payment = &models.PaymentChoice{
			Method:   models.PaymentMethodQR,
			OrderID:  "ORD-1",
			InFlight: true,
		}
		draft.SlotLockValue = "lock-value"

		err := retreatDraft(draft)

		assert.NoError(t, err)
		assert.Equal(t, models.BookingStatusSelectingPayment, draft.Status)
		assert.Nil(t, draft.Payment, "abandoned payment choice should be dropped")
		assert.Equal(t, "lock-value", draft.SlotLockValue, "slot reservation should stay with the draft")
		assert.NotNil(t, draft.Slot)
		assert.NotNil(t, draft.PatientInfo)
	})

	t.Run("Retreat Terminal Draft", func(t *testing.T) {
		draft := draftAtPaymentStep()
		draft.Status = models.BookingStatusConfirmed

		err := retreatDraft(draft)

		assertCustomErrorStatus(t, err, exceptions.ErrDraftTerminal(nil).StatusCode)
	})
}

func TestEditDraftFrom(t *testing.T) {
	t.Run("Edit From Service Clears Everything", func(t *testing.T) {
		draft := draftAtPaymentStep()

		err := editDraftFrom(draft, models.BookingStatusSelectingService)

		assert.NoError(t, err)
		assert.Equal(t, models.BookingStatusSelectingService, draft.Status)
		assert.Nil(t, draft.Service)
		assert.Nil(t, draft.Provider)
		assert.Empty(t, draft.Date)
		assert.Nil(t, draft.Slot)
		assert.Nil(t, draft.PatientInfo)
		assert.Nil(t, draft.Payment)
	})

	t.Run("Edit From Provider Keeps Service", func(t *testing.T) {
		draft := draftAtPaymentStep()

		err := editDraftFrom(draft, models.BookingStatusSelectingProvider)

		assert.NoError(t, err)
		assert.Equal(t, models.BookingStatusSelectingProvider, draft.Status)
		assert.NotNil(t, draft.Service, "service selection should be kept")
		assert.Nil(t, draft.Provider)
		assert.Nil(t, draft.Slot)
		assert.Nil(t, draft.PatientInfo)
	})

	t.Run("Edit From Patient Info Keeps Slot", func(t *testing.T) {
		draft := draftAtPaymentStep()

		err := editDraftFrom(draft, models.BookingStatusEnteringPatientInfo)

		assert.NoError(t, err)
		assert.Equal(t, models.BookingStatusEnteringPatientInfo, draft.Status)
		assert.NotNil(t, draft.Service)
		assert.NotNil(t, draft.Provider)
		assert.NotNil(t, draft.Slot)
		assert.Nil(t, draft.PatientInfo)
	})

	t.Run("Edit Forward Is Rejected", func(t *testing.T) {
		draft := &models.BookingDraft{ID: "draft-1", Status: models.BookingStatusSelectingProvider}

		err := editDraftFrom(draft, models.BookingStatusSelectingPayment)

		assertCustomErrorStatus(t, err, exceptions.ErrDraftStepMismatch(nil).StatusCode)
	})

	t.Run("Edit From Processing Payment Is Rejected", func(t *testing.T) {
		draft := draftAtPaymentStep()

		err := editDraftFrom(draft, models.BookingStatusProcessingPayment)

		assertCustomErrorStatus(t, err, exceptions.ErrDraftStepMismatch(nil).StatusCode)
	})

	t.Run("Edit While Processing Payment Is Rejected", func(t *testing.T) {
		draft := draftAtPaymentStep()
		draft.Status = models.BookingStatusProcessingPayment

		err := editDraftFrom(draft, models.BookingStatusSelectingService)

		assertCustomErrorStatus(t, err, exceptions.ErrDraftStepMismatch(nil).StatusCode)
	})

	t.Run("Edit Terminal Draft Is Rejected", func(t *testing.T) {
		draft := draftAtPaymentStep()
		draft.Status = models.BookingStatusCancelled

		err := editDraftFrom(draft, models.BookingStatusSelectingService)

		assertCustomErrorStatus(t, err, exceptions.ErrDraftTerminal(nil).StatusCode)
	})
}

func TestCancelDraft(t *testing.T) {
	t.Run("Cancel From Any Active Step", func(t *testing.T) {
		for _, status := range models.StepOrder {
			draft := draftAtPaymentStep()
			draft.Status = status

			err := cancelDraft(draft)

			assert.NoError(t, err, "cancel should succeed from %s", status)
			assert.Equal(t, models.BookingStatusCancelled, draft.Status)
		}
	})

	t.Run("Cancel Terminal Draft Is Rejected", func(t *testing.T) {
		draft := draftAtPaymentStep()
		draft.Status = models.BookingStatusConfirmed

		err := cancelDraft(draft)

		assertCustomErrorStatus(t, err, exceptions.ErrDraftTerminal(nil).StatusCode)
	})
}

func TestSlotCleared(t *testing.T) {
	assert.True(t, slotCleared(models.BookingStatusSelectingService))
	assert.True(t, slotCleared(models.BookingStatusSelectingProvider))
	assert.True(t, slotCleared(models.BookingStatusSelectingSlot))
	assert.False(t, slotCleared(models.BookingStatusEnteringPatientInfo))
	assert.False(t, slotCleared(models.BookingStatusSelectingPayment))
}

func assertCustomErrorStatus(t *testing.T, err error, expectedStatus int) {
	t.Helper()
	assert.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok, "error should be a CustomError")
	assert.Equal(t, expectedStatus, customErr.StatusCode)
}
