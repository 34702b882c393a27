package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateDraftJWT mints the bearer token returned when a draft is created.
// Possession of the token is what authorizes mutations to that draft.
func GenerateDraftJWT(draftID, secret string, expiryMinutes int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"draft_id": draftID,
		"exp":      time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseDraftJWT returns the draft_id claim if the token is valid and signed
// with the given secret.
func ParseDraftJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	draftID, ok := claims["draft_id"].(string)
	if !ok || draftID == "" {
		return "", fmt.Errorf("missing draft_id claim")
	}
	return draftID, nil
}

// GenerateBookingID builds a reference like APT000123 from the clinic prefix
// and a monotonically increasing counter.
func GenerateBookingID(prefix string, counter int64) string {
	return fmt.Sprintf("%s%06d", prefix, counter%1000000)
}

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateOrderID() string {
	return fmt.Sprintf("ORD-%s", uuid.NewString())
}

func GenerateFileName(prefix, name, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s_%s%s", prefix, name, timestamp, fileExtension)
}
