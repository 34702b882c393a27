package utils

import (
	"errors"
	"net/http"

	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/dto/responses"
	"clinicbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		log.Error(customErr.DevMessage,
			zap.String("file", customErr.Location.File),
			zap.Int("line", customErr.Location.Line),
			zap.String("function_name", customErr.Location.FunctionName),
		)
	} else {
		log.Error(err.Error())
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	response := responses.ResponseDTO{
		Success: false,
		Message: clientMessage,
	}
	json.NewEncoder(w).Encode(response)
}

// BuildValidationErrorResponse reports every failing intake field at once, as
// a field-keyed map, instead of only the first violation.
func BuildValidationErrorResponse(log *zap.Logger, w http.ResponseWriter, fieldErrors map[string]string) {
	log.Warn("request validation failed", zap.Int("field_count", len(fieldErrors)))

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(constvars.StatusBadRequest)
	response := responses.ResponseDTO{
		Success: false,
		Message: constvars.ErrClientCannotProcessRequest,
		Errors:  fieldErrors,
	}
	json.NewEncoder(w).Encode(response)
}
