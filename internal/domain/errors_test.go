package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", ErrUserNotFound, KindNotFound},
		{"wrapped", fmt.Errorf("send: %w", ErrDuplicateRequest), KindConflict},
		{"validation", NewValidationError(), KindInvalidInput},
		{"unknown", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	// Same message, different outcomes.
	assert.False(t, errors.Is(ErrNotReceiver, ErrRequestNotFound))
	assert.True(t, errors.Is(fmt.Errorf("x: %w", ErrNotReceiver), ErrNotReceiver))
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Add("username", "This field is required.")
	v.Add("username", "ignored")
	v.Add("email", "Enter a valid email address.")

	err := v.OrNil()
	assert.Error(t, err)
	assert.Equal(t, "This field is required.", v.Fields["username"])
	assert.Equal(t, "email: Enter a valid email address.; username: This field is required.", err.Error())
}
