package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-256 digest of the plaintext.
// The digest is deterministic so stored hashes can be compared directly
// at login.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether the plaintext hashes to digestHex.
// The comparison is constant-time.
func CheckPassword(plaintext, digestHex string) bool {
	computed := HashPassword(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digestHex)) == 1
}
