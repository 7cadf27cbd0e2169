package passhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotContains(t, hash, "secret123")
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, h.Compare(hash, "secret123"))
	assert.ErrorIs(t, h.Compare(hash, "secret124"), ErrMismatch)
}

func TestBcrypt_DefaultCost(t *testing.T) {
	assert.Equal(t, 10, NewBcrypt(10).Cost())
	assert.Equal(t, DefaultCost, NewBcrypt(0).Cost())
	assert.Equal(t, DefaultCost, NewBcrypt(99).Cost())

	hash, err := NewBcrypt(10).Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestBcrypt_CompareMalformedHash(t *testing.T) {
	err := NewBcrypt(bcrypt.MinCost).Compare("not-a-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestBcrypt_HashTooLongReturnsBcryptError(t *testing.T) {
	_, err := NewBcrypt(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
	assert.Equal(t, bcrypt.ErrPasswordTooLong.Error(), err.Error())
}
