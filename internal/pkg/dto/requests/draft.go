package requests

// AdvanceDraft carries the payload for the draft's current step. Exactly one
// fragment must be set and it must match the step the draft is on; the
// usecase rejects mismatches rather than guessing.
type AdvanceDraft struct {
	ServiceID string `json:"service_id,omitempty"`

	ProviderID string `json:"provider_id,omitempty"`

	Date   string `json:"date,omitempty"`
	SlotID string `json:"slot_id,omitempty"`

	PatientInfo *PatientIntake `json:"patient_info,omitempty"`

	Payment *PaymentSelection `json:"payment,omitempty"`
}

type EditDraft struct {
	FromStep string `json:"from_step" validate:"required,oneof=selecting_service selecting_provider selecting_slot entering_patient_info selecting_payment"`
}
