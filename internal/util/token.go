package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateLinkToken returns a URL-safe token from 16 random bytes. The
// unpadded encoding keeps it short enough to paste into an email link.
func GenerateLinkToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate link token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
