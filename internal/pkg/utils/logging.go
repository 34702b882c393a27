package utils

import (
	"context"

	"clinicbook-service/internal/pkg/constvars"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetDraftID(ctx context.Context) string {
	if draftID, ok := ctx.Value(constvars.CONTEXT_DRAFT_ID_KEY).(string); ok {
		return draftID
	}
	return ""
}
