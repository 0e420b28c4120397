package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(4).Cost())
	assert.Equal(t, 12, NewHasher(12).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).Cost())
}

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.DefaultCost)

	hash, err := h.Hash("Password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "unexpected hash format %q", hash)
	assert.NotContains(t, hash, "Password123")

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	ok, err := h.Compare(hash, "Password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "Password124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_Salted(t *testing.T) {
	h := NewHasher(bcrypt.DefaultCost)

	a, err := h.Hash("Password123")
	require.NoError(t, err)
	b, err := h.Hash("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompare_MalformedHash(t *testing.T) {
	ok, err := NewHasher(10).Compare("not-a-bcrypt-hash", "x")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHash_TooLong(t *testing.T) {
	_, err := NewHasher(10).Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}
