package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"
)

// GenerateBookingReference returns a human readable booking code.
// Format: TOUR-YYYYMMDD-HHMMSS-NNNN
func GenerateBookingReference(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("TOUR-%s-%s-%04d", now.Format("20060102"), now.Format("150405"), n.Int64())
}

// GenerateState returns a random URL-safe token for the OAuth state round trip.
func GenerateState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
