// internal/services/errors_test.go
package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Handlers branch on these sentinels with errors.Is after the service
// layer wraps them, so wrapping must preserve identity and no two
// sentinels may alias.
func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInvite,
		ErrAlreadyOwned,
		ErrCartEmpty,
		ErrConsignmentNotActive,
		ErrSessionNumberExhausted,
	}

	for _, sentinel := range sentinels {
		wrapped := fmt.Errorf("checkout failed: %w", sentinel)
		assert.ErrorIs(t, wrapped, sentinel)
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}
