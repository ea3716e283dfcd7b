package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 bytes")
)

// HashPassword creates a bcrypt hash of the secret. Used both for login
// passwords and for the documento oficial that doubles as the recovery
// credential.
func HashPassword(secret string, cost int) (string, error) {
	// bcrypt has a 72-byte limit
	if len(secret) > 72 {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a secret with its hash. Fails closed: any
// comparison failure reports an invalid password.
func CheckPassword(secret, hash string) error {
	// A malformed stored hash is treated the same as a mismatch: the
	// credential cannot be verified, so it is rejected.
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
