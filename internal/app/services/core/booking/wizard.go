package booking

import (
	"fmt"

	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/exceptions"
)

// The transition functions below mutate only the draft itself. Anything that
// needs a repository (catalog lookups, slot locks, transactions) happens in
// the usecase around them, so the step machine stays testable in isolation.

func retreatDraft(draft *models.BookingDraft) error {
	if draft.Status.IsTerminal() {
		return exceptions.ErrDraftTerminal(fmt.Errorf("draft %s is %s", draft.ID, draft.Status))
	}

	// Backing out of an in-flight payment abandons the method choice, which
	// also invalidates any QR response still on its way back from the
	// gateway. The slot reservation stays with the draft.
	if draft.Status == models.BookingStatusProcessingPayment {
		draft.Status = models.BookingStatusSelectingPayment
		draft.Payment = nil
		return nil
	}

	index := models.StepIndex(draft.Status)
	if index <= 0 {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("draft %s is already at the first step", draft.ID))
	}

	// Retreat keeps earlier selections intact so advancing again can reuse
	// them; only a changed selection triggers the clearing cascade.
	draft.Status = models.StepOrder[index-1]
	return nil
}

func editDraftFrom(draft *models.BookingDraft, fromStep models.BookingStatus) error {
	if draft.Status.IsTerminal() {
		return exceptions.ErrDraftTerminal(fmt.Errorf("draft %s is %s", draft.ID, draft.Status))
	}
	if draft.Status == models.BookingStatusProcessingPayment {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("cannot edit while payment is processing"))
	}

	targetIndex := models.StepIndex(fromStep)
	currentIndex := models.StepIndex(draft.Status)
	if targetIndex < 0 || fromStep == models.BookingStatusProcessingPayment {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("cannot edit from step %s", fromStep))
	}
	if targetIndex > currentIndex {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("draft %s has not reached step %s yet", draft.ID, fromStep))
	}

	clearFromStep(draft, fromStep)
	draft.Status = fromStep
	return nil
}

func cancelDraft(draft *models.BookingDraft) error {
	if draft.Status.IsTerminal() {
		return exceptions.ErrDraftTerminal(fmt.Errorf("draft %s is %s", draft.ID, draft.Status))
	}
	draft.Status = models.BookingStatusCancelled
	return nil
}

// clearFromStep drops the selection made at the given step and everything
// chosen after it. A changed service invalidates the provider, a changed
// provider invalidates the slot, and so on down the chain.
func clearFromStep(draft *models.BookingDraft, step models.BookingStatus) {
	switch step {
	case models.BookingStatusSelectingService:
		draft.Service = nil
		fallthrough
	case models.BookingStatusSelectingProvider:
		draft.Provider = nil
		fallthrough
	case models.BookingStatusSelectingSlot:
		draft.Date = ""
		draft.Slot = nil
		fallthrough
	case models.BookingStatusEnteringPatientInfo:
		draft.PatientInfo = nil
		fallthrough
	case models.BookingStatusSelectingPayment:
		draft.Payment = nil
	}
}

// slotCleared reports whether editing from the given step discards the slot
// selection, which means any reservation held for it must be released.
func slotCleared(step models.BookingStatus) bool {
	switch step {
	case models.BookingStatusSelectingService, models.BookingStatusSelectingProvider, models.BookingStatusSelectingSlot:
		return true
	}
	return false
}
