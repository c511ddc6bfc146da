package domain

import (
	"testing"

	"github.com/smallbiznis/railpos/internal/money"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	total := money.MustParse("100.00")

	assert.Equal(t, StatusPending, DeriveStatus(total, money.Zero))
	assert.Equal(t, StatusPartial, DeriveStatus(total, money.MustParse("0.01")))
	assert.Equal(t, StatusPaid, DeriveStatus(total, total))
	assert.Equal(t, StatusPaid, DeriveStatus(money.Zero, money.Zero))
}

func TestAddPaid(t *testing.T) {
	inv := Invoice{TotalAmount: money.MustParse("100.00"), PaidAmount: money.Zero}
	inv.RefreshStatus()
	assert.Equal(t, StatusPending, inv.Status)

	inv.AddPaid(money.MustParse("33.33"))
	assert.Equal(t, StatusPartial, inv.Status)
	assert.Equal(t, "66.67", inv.RemainingBalance().StringFixed(2))

	inv.AddPaid(money.MustParse("66.67"))
	assert.Equal(t, StatusPaid, inv.Status)
	assert.True(t, inv.RemainingBalance().IsZero())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.Valid())
	assert.True(t, PaymentMethodInstallment.Valid())
	assert.False(t, PaymentMethod("card").Valid())
}
