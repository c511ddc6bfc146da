package errkind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatchesKind(t *testing.T) {
	errMissing := New("widget_not_found", ErrNotFound)
	wrapped := fmt.Errorf("load widget: %w", errMissing)

	assert.ErrorIs(t, wrapped, errMissing)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, "widget_not_found", errMissing.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New("duplicate_number", ErrConflict)))
	assert.False(t, IsRetryable(New("customer_has_invoices", ErrConstraintViolation)))
	assert.False(t, IsRetryable(nil))
}
