package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsSensitiveKeys(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("invoice.id", "1"),
		attribute.String("customer.phone", "0812"),
		attribute.String("payment.notes", "cash"),
	)
	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("invoice.id"), attrs[0].Key)
}

func TestSafeErrorHidesMessage(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	assert.Equal(t, "*errors.errorString", SafeError(errors.New("customer 0812 not found")).Error())
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.1, clampRatio(0))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, 0.5, clampRatio(0.5))
}
