package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrNoSelection", ErrNoSelection},
		{"ErrNoDestination", ErrNoDestination},
		{"ErrNoContent", ErrNoContent},
		{"ErrExportLocked", ErrExportLocked},
		{"ErrCaseClosed", ErrCaseClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNoSelection_Message(t *testing.T) {
	assert.Equal(t, "please select some items to export", ErrNoSelection.Error())
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("exporting: %w", ErrNoDestination)
	assert.True(t, errors.Is(wrapped, ErrNoDestination))
	assert.False(t, errors.Is(wrapped, ErrNoSelection))
}
