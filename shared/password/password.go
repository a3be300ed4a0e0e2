// Package password hashes account passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the number of bytes bcrypt reads from a password.
const MaxLength = 72

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooLong         = fmt.Errorf("password must be at most %d bytes", MaxLength)
)

const cost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmptyPassword
	case len(plain) > MaxLength:
		return "", ErrTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify returns ErrInvalidPassword for any mismatch, including empty input.
// A malformed hash is reported as a separate wrapped error.
func Verify(plain, hash string) error {
	if plain == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("failed to verify password: %w", err)
	}
}
