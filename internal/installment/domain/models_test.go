package domain

import (
	"testing"
	"time"

	"github.com/smallbiznis/railpos/internal/money"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -1)
	future := today.AddDate(0, 0, 1)

	cases := []struct {
		name   string
		amount string
		paid   string
		due    time.Time
		want   Status
	}{
		{"unpaid not yet due", "100.00", "0", future, StatusPending},
		{"unpaid due today", "100.00", "0", today, StatusPending},
		{"unpaid past due", "100.00", "0", past, StatusOverdue},
		{"partly paid past due", "100.00", "40.00", past, StatusPartial},
		{"partly paid not yet due", "100.00", "40.00", future, StatusPartial},
		{"settled past due", "100.00", "100.00", past, StatusPaid},
		{"zero amount", "0", "0", past, StatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(money.MustParse(tc.amount), money.MustParse(tc.paid), tc.due, today)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddPaidRefreshesStatus(t *testing.T) {
	today := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	inst := Installment{
		Amount:     money.MustParse("33.33"),
		PaidAmount: money.Zero,
		DueDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	inst.RefreshStatus(today)
	assert.Equal(t, StatusOverdue, inst.Status)
	assert.True(t, inst.IsOutstanding(today))

	inst.AddPaid(money.MustParse("10"), today)
	assert.Equal(t, StatusPartial, inst.Status)
	assert.Equal(t, "23.33", inst.Remaining().StringFixed(2))

	inst.AddPaid(money.MustParse("23.33"), today)
	assert.Equal(t, StatusPaid, inst.Status)
	assert.False(t, inst.IsOutstanding(today))
}
