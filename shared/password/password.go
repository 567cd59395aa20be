package password

import (
	"errors"
	"fmt"
	"venuebook/shared/failure"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest input bcrypt accepts, in bytes.
const MaxLength = 72

var Cost = bcrypt.DefaultCost

var ErrInvalidPassword = errors.New("invalid password")

// Input errors carry a bad request code so callers can pass them through.
var (
	ErrEmptyPassword = failure.BadRequestFromString("password cannot be empty")
	ErrTooLong       = failure.BadRequestFromString(fmt.Sprintf("password cannot be longer than %d bytes", MaxLength))
)

func Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > MaxLength:
		return "", ErrTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify returns ErrInvalidPassword for any mismatch, including an empty
// password or hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}

	return fmt.Errorf("failed to verify password: %w", err)
}
