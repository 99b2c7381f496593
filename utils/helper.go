package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// StringToUUIDPtr converts a string to UUID pointer
func StringToUUIDPtr(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &u
}

// StringPtr returns a pointer to the string value
func StringPtr(s string) *string {
	return &s
}

// GenerateReclamationCode produces a REC-prefixed 8-digit réclamation code.
func GenerateReclamationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		n = big.NewInt(Today().UnixNano() % 100000000)
	}
	return fmt.Sprintf("REC-%08d", n.Int64())
}
