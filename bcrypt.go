package feed

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashSecret will generate a credential hash
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(secret), secretHashCost())
	return string(h), err
}

// CompareSecretAndHash will validate the given cleartext
// secret matches the hashed secret
func CompareSecretAndHash(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndSecret
		}
		return err
	}
	return nil
}

// RandomSecretHash is a temporary credential
func RandomSecretHash() string {
	pwd := uuid.New()

	h, err := HashSecret(pwd.String())
	if err != nil {
		return RandomSecretHash()
	}

	return h
}
