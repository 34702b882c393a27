package models

// PatientInfo is the validated intake record merged into the draft once the
// intake form passes validation. Validation itself lives on the request DTO.
type PatientInfo struct {
	Name                  string `json:"name"`
	Age                   int    `json:"age"`
	Gender                string `json:"gender"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	MedicalHistory        string `json:"medical_history,omitempty"`
	CurrentMedications    string `json:"current_medications,omitempty"`
	Allergies             string `json:"allergies,omitempty"`
	InsuranceProvider     string `json:"insurance_provider"`
	InsurancePolicyNumber string `json:"insurance_policy_number,omitempty"`
	ConsentToTreatment    bool   `json:"consent_to_treatment"`
	ConsentToDataSharing  bool   `json:"consent_to_data_sharing"`
}
