package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantage/internal/shared/errors"
)

type sampleInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=10"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		err := ValidateStruct(&sampleInput{Email: "a@example.com", Name: "Alice"})
		assert.NoError(t, err)
	})

	t.Run("uses json field names", func(t *testing.T) {
		err := ValidateStruct(&sampleInput{Email: "not-an-email", Name: "A"})
		require.Error(t, err)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Details, "email must be a valid email address")
		assert.Contains(t, appErr.Details, "name must be at least 2 characters long")
	})
}

func TestRBACNameValidation(t *testing.T) {
	type named struct {
		Name string `json:"name" validate:"rbacname"`
	}

	valid := []string{"users", "role_admin", "time-off", "a1"}
	for _, name := range valid {
		assert.NoError(t, ValidateStruct(&named{Name: name}), name)
	}

	invalid := []string{"Users", "users:create", "1users", "_users", ""}
	for _, name := range invalid {
		assert.Error(t, ValidateStruct(&named{Name: name}), name)
	}
}

func TestBindingErrorMessage(t *testing.T) {
	t.Run("validator errors name fields", func(t *testing.T) {
		err := validate.Struct(&sampleInput{})
		require.Error(t, err)

		msg := BindingErrorMessage(err)
		assert.Contains(t, msg, "email is required")
		assert.Contains(t, msg, "name is required")
	})

	t.Run("non-validator errors stay generic", func(t *testing.T) {
		msg := BindingErrorMessage(fmt.Errorf("unexpected EOF"))
		assert.Equal(t, "invalid request body", msg)
	})
}
