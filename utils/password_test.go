package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify(t *testing.T) {
	h := NewPasswordHasher()

	for _, p := range []string{"secret", "p@ss w0rd", ""} {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.True(t, h.Verify(p, hash), "password %q", p)
		assert.False(t, h.Verify(p+"x", hash), "password %q", p)
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewPasswordHasher()

	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("secret", a))
	assert.True(t, h.Verify("secret", b))

	cost, err := bcrypt.Cost([]byte(a))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher()
	assert.False(t, h.Verify("secret", "secret"))
	assert.False(t, h.Verify("secret", ""))
}
