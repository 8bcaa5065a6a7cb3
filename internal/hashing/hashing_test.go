package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pw123456")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123456", hash)
	assert.True(t, IsHashed(hash))
	assert.True(t, Verify("pw123456", hash))
	assert.False(t, Verify("wrongpass", hash))
}

func TestHashDoesNotRehashHashedValue(t *testing.T) {
	hash, err := Hash("pw123456")
	require.NoError(t, err)

	again, err := Hash(hash)
	require.NoError(t, err)
	assert.Equal(t, hash, again)
	assert.True(t, Verify("pw123456", again))
}

func TestVerifyMalformedHash(t *testing.T) {
	assert.False(t, Verify("pw123456", "not-a-bcrypt-hash"))
	assert.False(t, Verify("pw123456", ""))
}
