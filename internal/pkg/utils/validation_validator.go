package utils

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"clinicbook-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("mobile_number", validateMobileNumber)
	validate.RegisterValidation("card_number", validateCardNumber)
	validate.RegisterValidation("card_expiry", validateCardExpiry)
	validate.RegisterValidation("upi_id", validateUpiID)

	// Report violations under the field's json name so clients see the keys
	// they actually sent, not Go identifiers.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateMobileNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(constvars.RegexIndiaMobileNumber)
	return re.MatchString(fl.Field().String())
}

// NormalizeCardNumber strips the spaces and hyphens cardholders type between
// digit groups. Validation and masking both work on the normalized form.
func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

// validateCardNumber accepts card numbers with at least 16 digits once
// separators are stripped. Issuer-side checks belong to the gateway.
func validateCardNumber(fl validator.FieldLevel) bool {
	number := NormalizeCardNumber(fl.Field().String())
	if len(number) < 16 {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateCardExpiry accepts MM/YY and rejects months already in the past.
func validateCardExpiry(fl validator.FieldLevel) bool {
	expiry := fl.Field().String()
	re := regexp.MustCompile(constvars.RegexCardExpiryMMYY)
	if !re.MatchString(expiry) {
		return false
	}
	parsed, err := time.Parse("01/06", expiry)
	if err != nil {
		return false
	}
	endOfMonth := parsed.AddDate(0, 1, 0)
	return time.Now().Before(endOfMonth)
}

func validateUpiID(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(constvars.RegexUpiID)
	return re.MatchString(fl.Field().String())
}
