// Package auth implements the admin gate: PIN verification and short-lived
// session tokens for the management endpoints.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWrongPIN = errors.New("wrong PIN")
	ErrShortPIN = errors.New("PIN must be at least 4 digits")
)

// PINVerifier checks the admin PIN against a bcrypt hash configured at
// startup. The plain PIN is never stored.
type PINVerifier struct {
	hash []byte
}

// NewPINVerifier creates a verifier for the given bcrypt hash.
func NewPINVerifier(pinHash string) *PINVerifier {
	return &PINVerifier{hash: []byte(pinHash)}
}

// HashPIN produces a bcrypt hash suitable for the ADMIN_PIN_HASH setting.
func HashPIN(pin string) (string, error) {
	if len(pin) < 4 {
		return "", ErrShortPIN
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// Verify reports nil when the PIN matches and ErrWrongPIN otherwise.
func (v *PINVerifier) Verify(pin string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(pin)); err != nil {
		return ErrWrongPIN
	}
	return nil
}
