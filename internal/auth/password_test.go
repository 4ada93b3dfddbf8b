package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(4) // minimum bcrypt cost, keeps tests fast

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify("correct horse battery staple", hash))
	assert.False(t, hasher.Verify("Correct horse battery staple", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasher(4)

	h1, err := hasher.Hash("same password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, hasher.Verify("same password", h1))
	assert.True(t, hasher.Verify("same password", h2))
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(0)
	assert.False(t, hasher.Verify("anything", "not-a-bcrypt-hash"))
}
