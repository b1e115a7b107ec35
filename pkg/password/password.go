package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost = 12: balance between security and performance.
// Higher cost = slower but more secure.
const hashCost = 12

var ErrEmptyPassword = errors.New("password must not be empty")

// Hash derives a salted bcrypt digest from a plaintext password.
// bcrypt embeds a random salt, so hashing the same input twice
// produces different digests.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether plain is the password that produced digest.
// bcrypt.CompareHashAndPassword is constant-time comparison (security).
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
