package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash of plaintext at the default cost.
// Empty input is rejected up front rather than hashed.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks plaintext against the stored bcrypt hash.
// A nil return means the password matched.
func VerifyPassword(hash, plaintext string) error {
	if hash == "" {
		return errors.New("missing password hash")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}
