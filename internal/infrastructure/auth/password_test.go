package auth_test

import (
	"strings"
	"testing"

	"github.com/coldpitch/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptPasswordHasher_HashAndCompare(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher()

	hash, err := hasher.Hash("s3cret-Passw0rd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotEqual(t, "s3cret-Passw0rd", hash)

	assert.NoError(t, hasher.Compare(hash, "s3cret-Passw0rd"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong-password"), auth.ErrPasswordMismatch)
}

func TestBcryptPasswordHasher_DistinctHashes(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	// Salted hashes must differ even for identical inputs
	assert.NotEqual(t, first, second)
}
