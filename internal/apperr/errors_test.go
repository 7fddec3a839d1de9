package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"freshcart/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("creating order: %w", apperr.Validation("no order items"))

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.False(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "no order items", apperr.MessageOf(err))
}

func TestPersistenceKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Persistence(cause, "failed to load cart")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load cart: connection refused", err.Error())
	assert.Equal(t, "failed to load cart", apperr.MessageOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(err))
	assert.False(t, apperr.Is(nil, apperr.KindUnknown))
	assert.Equal(t, "boom", apperr.MessageOf(err))
}

func TestInvalidFields(t *testing.T) {
	err := fmt.Errorf("register: %w", apperr.InvalidFields(map[string]string{"Email": "must be a valid email"}))

	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Validation failed", apperr.MessageOf(err))
	assert.Equal(t, map[string]string{"Email": "must be a valid email"}, apperr.FieldsOf(err))
	assert.Nil(t, apperr.FieldsOf(apperr.NotFound("x")))
}
