package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Doc123!@", 10)

	require.NoError(t, err)
	assert.NotEqual(t, "Doc123!@", hash)
	assert.NoError(t, CheckPassword("Doc123!@", hash))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("Doc123!@", 10)
	require.NoError(t, err)

	err = CheckPassword("wrong-secret", hash)

	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	// A corrupt stored hash must read as a bad credential, not an
	// internal error, so callers answer 401 rather than 500.
	err := CheckPassword("Doc123!@", "not-a-bcrypt-hash")

	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	assert.ErrorIs(t, CheckPassword("Doc123!@", ""), ErrInvalidPassword)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), 10)

	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := HashPassword("Doc123!@", 10)
	require.NoError(t, err)
	second, err := HashPassword("Doc123!@", 10)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
