package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinicbook-service/internal/app/config"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDraftAuthorization(t *testing.T) {
	secret := "test-secret"
	middlewares := &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: secret, ExpTimeInMinutes: 60},
		},
	}

	var contextDraftID string
	router := chi.NewRouter()
	router.Route("/bookings/{draftID}", func(r chi.Router) {
		r.Use(middlewares.DraftAuthorization)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			contextDraftID, _ = r.Context().Value(constvars.CONTEXT_DRAFT_ID_KEY).(string)
			w.WriteHeader(http.StatusOK)
		})
	})

	token, err := utils.GenerateDraftJWT("draft-123", secret, 60)
	require.NoError(t, err)

	t.Run("Valid Token In Draft Header", func(t *testing.T) {
		contextDraftID = ""
		req := httptest.NewRequest(http.MethodGet, "/bookings/draft-123/", nil)
		req.Header.Set(constvars.HeaderDraftToken, token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "draft-123", contextDraftID, "draft id should be placed in context")
	})

	t.Run("Valid Token As Bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookings/draft-123/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookings/draft-123/", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Tampered Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookings/draft-123/", nil)
		req.Header.Set(constvars.HeaderDraftToken, token+"x")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token For Another Draft", func(t *testing.T) {
		otherToken, err := utils.GenerateDraftJWT("draft-456", secret, 60)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/bookings/draft-123/", nil)
		req.Header.Set(constvars.HeaderDraftToken, otherToken)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
