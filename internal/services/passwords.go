package services

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password storage modes
const (
	PasswordPlaintext = "plaintext"
	PasswordBcrypt    = "bcrypt"
)

// ErrPasswordTooLong is returned when a password exceeds what bcrypt accepts
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// EncodePassword turns a plaintext password into its stored form for mode.
// Plaintext storage is the default and is kept for compatibility with
// existing accounts.
func EncodePassword(mode, password string) (string, error) {
	if mode != PasswordBcrypt {
		return password, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a candidate against a stored credential, which may
// be a bcrypt hash or plaintext.
func CheckPassword(stored, candidate string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
