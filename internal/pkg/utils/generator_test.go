package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	t.Run("Valid Token", func(t *testing.T) {
		token, err := GenerateDraftJWT("draft-123", secret, 60)
		require.NoError(t, err)

		draftID, err := ParseDraftJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "draft-123", draftID)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateDraftJWT("draft-123", secret, 60)
		require.NoError(t, err)

		_, err = ParseDraftJWT(token, "another-secret")
		assert.Error(t, err)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := GenerateDraftJWT("draft-123", secret, -1)
		require.NoError(t, err)

		_, err = ParseDraftJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		_, err := ParseDraftJWT("not.a.token", secret)
		assert.Error(t, err)
	})
}

func TestGenerateBookingID(t *testing.T) {
	assert.Equal(t, "APT000001", GenerateBookingID("APT", 1))
	assert.Equal(t, "APT000123", GenerateBookingID("APT", 123))
	assert.Equal(t, "APT999999", GenerateBookingID("APT", 999999))

	// The counter wraps instead of growing the reference.
	assert.Equal(t, "APT000000", GenerateBookingID("APT", 1000000))
	assert.Equal(t, "APT000001", GenerateBookingID("APT", 1000001))
}

func TestGenerateOrderID(t *testing.T) {
	first := GenerateOrderID()
	second := GenerateOrderID()

	assert.True(t, strings.HasPrefix(first, "ORD-"))
	assert.NotEqual(t, first, second)
}
