package auth

import (
	"crypto/rand"
	"fmt"
)

// secretLength is the size of a generated signing secret in bytes.
// 32 bytes keeps the HMAC key at the same width as the SHA-256 output.
const secretLength = 32

// GenerateSecret produces a random signing secret for the token service.
// A generated secret lives only as long as the process: every token
// signed with it becomes unverifiable after a restart.
func GenerateSecret() ([]byte, error) {
	secret := make([]byte, secretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate signing secret: %w", err)
	}
	return secret, nil
}
