package crypto

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomString returns 32 bytes of hex-encoded randomness, suitable
// for oauth state and nonce values.
func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
