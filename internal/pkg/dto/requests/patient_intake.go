package requests

// PatientIntake is the intake form as submitted. Free-text history fields are
// optional; everything identifying the patient or needed for billing is not.
type PatientIntake struct {
	Name                  string `json:"name" validate:"required,min=2,max=100"`
	Age                   int    `json:"age" validate:"required,min=1,max=120"`
	Gender                string `json:"gender" validate:"required,oneof=male female other"`
	Phone                 string `json:"phone" validate:"required,mobile_number"`
	Email                 string `json:"email" validate:"required,email"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"required,min=2,max=100"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"required,mobile_number"`
	MedicalHistory        string `json:"medical_history" validate:"max=2000"`
	CurrentMedications    string `json:"current_medications" validate:"max=2000"`
	Allergies             string `json:"allergies" validate:"max=2000"`
	InsuranceProvider     string `json:"insurance_provider" validate:"required,max=100"`
	InsurancePolicyNumber string `json:"insurance_policy_number" validate:"required_unless=InsuranceProvider none,max=50"`
	ConsentToTreatment    bool   `json:"consent_to_treatment" validate:"eq=true"`
	ConsentToDataSharing  bool   `json:"consent_to_data_sharing"`
}
