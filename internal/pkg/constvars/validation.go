package constvars

// CustomValidationErrorMessages maps validator tags to client-readable
// fragments, appended after the lowercased field name.
var CustomValidationErrorMessages = map[string]string{
	"required":        "is required",
	"email":           "must be a valid email address",
	"min":             "must be at least %s",
	"max":             "must be at most %s",
	"oneof":           "must be one of: %s",
	"mobile_number":   "must be a valid 10-digit mobile number",
	"card_expiry":     "must be a valid expiry in MM/YY format",
	"upi_id":          "must be a valid UPI id containing '@'",
	"datetime":        "must match the format %s",
	"eq":              "must be accepted",
	"len":             "must be exactly %s characters",
	"numeric":         "must contain only digits",
	"card_number":     "must have at least 16 digits",
	"required_unless": "is required",
}

var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"oneof":    true,
	"datetime": true,
}
