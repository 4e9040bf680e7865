// internal/services/invite_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashInviteCodeRoundTrip(t *testing.T) {
	hash, err := hashInviteCode("EARLY-ACCESS-2026")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The stored hash must verify the original code and nothing else,
	// matching the comparison ValidateInvite performs.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("EARLY-ACCESS-2026")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("early-access-2026")))
}

func TestHashInviteCodeNeverStoresPlaintext(t *testing.T) {
	hash, err := hashInviteCode("SHOW-FLOOR")
	require.NoError(t, err)
	assert.NotContains(t, hash, "SHOW-FLOOR")
}
