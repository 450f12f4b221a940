package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
)

const (
	// SaltLength is the length of the per-account password salt.
	SaltLength = 16

	// TokenLength is the length of the opaque bearer token.
	TokenLength = 32
)

const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DeriveHash computes the password digest stored for an account.
//
// The digest is SHA-256 over password+salt, encoded as standard base64 text.
// It is pure: equal inputs always yield equal digests.
//
// Example usage:
//
//	digest := utils.DeriveHash("pw1", salt)
func DeriveHash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyHash recomputes the digest for password and salt and compares it to
// the stored one in constant time.
func VerifyHash(password, salt, storedHash string) bool {
	derived := DeriveHash(password, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedHash)) == 1
}

// GenerateSalt returns a random alphanumeric salt of [SaltLength] characters.
func GenerateSalt() (string, error) {
	return RandomString(SaltLength)
}

// GenerateToken returns a random alphanumeric bearer token of [TokenLength]
// characters.
func GenerateToken() (string, error) {
	return RandomString(TokenLength)
}

// RandomString returns n characters drawn uniformly from [A-Za-z0-9] using
// crypto/rand.
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid random string length: %d", n)
	}

	limit := big.NewInt(int64(len(randomAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("error reading random bytes: %w", err)
		}
		buf[i] = randomAlphabet[idx.Int64()]
	}

	return string(buf), nil
}
