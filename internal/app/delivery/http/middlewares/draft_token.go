package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/exceptions"
	"clinicbook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DraftAuthorization gates every draft mutation behind the token minted when
// the draft was created. The token's draft_id claim must match the draft
// addressed by the URL, so one session cannot touch another session's draft.
func (m *Middlewares) DraftAuthorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		tokenString := r.Header.Get(constvars.HeaderDraftToken)
		if tokenString == "" {
			authHeader := r.Header.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}
		if tokenString == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrDraftTokenInvalid(fmt.Errorf("no draft token supplied")))
			return
		}

		draftID, err := utils.ParseDraftJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("DraftAuthorization token rejected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrDraftTokenInvalid(err))
			return
		}

		urlDraftID := chi.URLParam(r, constvars.URLParamDraftID)
		if urlDraftID != "" && urlDraftID != draftID {
			m.Log.Warn("DraftAuthorization token draft mismatch",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDraftIDKey, urlDraftID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrDraftTokenMismatch(fmt.Errorf("token is for a different draft")))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_DRAFT_ID_KEY, draftID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
