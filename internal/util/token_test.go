package util

import (
	"strings"
	"testing"
)

func TestGenerateLinkTokenIsURLSafe(t *testing.T) {
	token, err := GenerateLinkToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// 16 bytes in unpadded base64url is always 22 characters.
	if len(token) != 22 {
		t.Fatalf("token length = %d, want 22", len(token))
	}
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("token %q contains non-URL-safe characters", token)
	}
}

func TestGenerateLinkTokenIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := GenerateLinkToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}
