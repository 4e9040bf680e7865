// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type splitFixture struct {
	Split float64 `validate:"split_percentage"`
}

func TestSplitPercentageValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&splitFixture{Split: 0}))
	assert.NoError(t, ValidateStruct(&splitFixture{Split: 70}))
	assert.NoError(t, ValidateStruct(&splitFixture{Split: 100}))

	assert.Error(t, ValidateStruct(&splitFixture{Split: -1}))
	assert.Error(t, ValidateStruct(&splitFixture{Split: 100.5}))
}

func TestGetValidationErrors(t *testing.T) {
	type fixture struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := ValidateStruct(&fixture{Email: "not-an-email"})
	require.Error(t, err)

	errors := GetValidationErrors(err)
	require.Len(t, errors, 2)

	assert.Equal(t, "name", errors[0].Field)
	assert.Equal(t, "required", errors[0].Tag)
	assert.Equal(t, "Name is required", errors[0].Message)

	assert.Equal(t, "email", errors[1].Field)
	assert.Equal(t, "email", errors[1].Tag)
	assert.Equal(t, "Invalid email format", errors[1].Message)
}

func TestGetValidationErrorsNonValidationError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
	assert.Empty(t, GetValidationErrors(assert.AnError))
}
