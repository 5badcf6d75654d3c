package utils_test

import (
	"testing"

	"github.com/granaapp/grana_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, utils.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-pass", hash))
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	assert.False(t, utils.CheckPasswordHash("s3cret-pass", "not-a-bcrypt-hash"))
}
