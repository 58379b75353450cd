package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashVerify(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	for _, pw := range []string{"secret1", "", "pässwörd", "a very long passphrase with spaces"} {
		hash, err := b.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
		assert.True(t, b.Verify(pw, hash), "password %q", pw)
		assert.False(t, b.Verify(pw+"x", hash), "password %q", pw)
	}
}

func TestBcrypt_SaltedHashesDiffer(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	h1, err := b.Hash("secret1")
	require.NoError(t, err)
	h2, err := b.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestBcrypt_MalformedHash(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	assert.False(t, b.Verify("secret1", ""))
	assert.False(t, b.Verify("secret1", "not-a-bcrypt-hash"))
	assert.False(t, b.Verify("secret1", "$2a$10$short"))
}

func TestNewBcrypt_Cost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, DefaultCost, NewBcrypt(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)

	hash, err := NewBcrypt(DefaultCost).Hash("secret1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}
