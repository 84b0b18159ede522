// Package cryptox implements password credentials: salted PBKDF2-HMAC-SHA256
// digests stored as "salt$hexdigest".
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 work factor.
	Iterations = 100_000
	// KeyLength is the derived key size in bytes (the SHA-256 block output).
	KeyLength = sha256.Size
	// SaltLength is the number of letters in a generated salt.
	SaltLength = 12

	separator = "$"
)

// NewSalt returns a fresh random salt of SaltLength ASCII letters.
func NewSalt() (string, error) {
	return common.RandomLetters(SaltLength)
}

// HashPassword derives the hex-encoded PBKDF2-HMAC-SHA256 digest of password
// with the given salt. The result is deterministic for the same inputs.
//
// Example:
//
//	digest := HashPassword("hunter2", "aBcDeFgHiJkL")
//	fmt.Println(len(digest)) // 64
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// MakeCredential generates a salt and returns the stored form "salt$digest".
func MakeCredential(password string) (string, error) {
	salt, err := NewSalt()
	if err != nil {
		return "", fmt.Errorf("salt generation: %w", err)
	}
	return salt + separator + HashPassword(password, salt), nil
}

// VerifyPassword recomputes the digest of password using the salt from stored
// and compares it with the stored digest in constant time.
//
// stored is split on the first "$". A record without the separator yields
// common.ErrMalformedCredential rather than a silent mismatch.
func VerifyPassword(password, stored string) (bool, error) {
	salt, digest, ok := strings.Cut(stored, separator)
	if !ok {
		return false, common.ErrMalformedCredential
	}
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1, nil
}
