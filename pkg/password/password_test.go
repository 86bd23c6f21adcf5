package password_test

import (
	"strings"
	"testing"

	"freightquote/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	stored, err := password.Hash("secret")
	require.NoError(t, err)

	parts := strings.Split(stored, ".")
	require.Len(t, parts, 2, "stored format is hash.salt")

	ok, err := password.Verify("secret", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = password.Verify("wrong", stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashSaltsAreUnique(t *testing.T) {
	a, err := password.Hash("secret")
	require.NoError(t, err)
	b, err := password.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyLegacySeedPassword(t *testing.T) {
	ok, err := password.Verify(password.LegacySeedPassword, password.LegacySeedPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	// Only the exact literal pair is accepted
	_, err = password.Verify("other", password.LegacySeedPassword)
	assert.Error(t, err)
}

func TestVerifyMalformedStored(t *testing.T) {
	_, err := password.Verify("secret", "no-dot-here")
	assert.Error(t, err)
}
