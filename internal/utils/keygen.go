package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateToken generates a random token with the given prefix.
// Format: prefix_randomhex
func GenerateToken(prefix string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}

// GenerateConfirmToken generates a delete-confirmation token: del_xxx
func GenerateConfirmToken() (string, error) {
	return GenerateToken("del")
}
