package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordDeterministic(t *testing.T) {
	first := HashPassword("secret123")
	second := HashPassword("secret123")
	assert.Equal(t, first, second, "same input must produce the same digest")
}

func TestHashPasswordKnownDigest(t *testing.T) {
	// SHA-256("abc")
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		HashPassword("abc"))
}

func TestHashPasswordShape(t *testing.T) {
	digest := HashPassword("secret123")
	assert.Len(t, digest, 64)
	assert.NotContains(t, digest, "secret123")
	assert.NotEqual(t, digest, HashPassword("secret124"))
}

func TestCheckPassword(t *testing.T) {
	digest := HashPassword("secret123")
	assert.True(t, CheckPassword("secret123", digest))
	assert.False(t, CheckPassword("wrong", digest))
	assert.False(t, CheckPassword("secret123", "not-a-digest"))
}
