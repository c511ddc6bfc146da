package scheduler

import (
	"testing"
	"time"

	"github.com/smallbiznis/railpos/internal/installment/domain"
	"github.com/smallbiznis/railpos/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanThreeWaySplit(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	plan, err := Plan(money.MustParse("100.00"), 3, start, 30)
	require.NoError(t, err)
	require.Len(t, plan, 3)

	wantAmounts := []string{"33.33", "33.33", "33.34"}
	wantDue := []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	sum := money.Zero
	for i, inst := range plan {
		assert.Equal(t, i+1, inst.InstallmentNumber)
		assert.Equal(t, wantAmounts[i], inst.Amount.StringFixed(2))
		assert.True(t, wantDue[i].Equal(inst.DueDate), "due %d: %s", i+1, inst.DueDate)
		assert.True(t, inst.PaidAmount.IsZero())
		assert.Equal(t, domain.StatusPending, inst.Status)
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, sum.Equal(money.MustParse("100.00")))
}

func TestPlanSumsExactly(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for _, total := range []string{"0.01", "0.10", "99.99", "1234.57", "10.00"} {
		for n := 1; n <= 12; n++ {
			plan, err := Plan(money.MustParse(total), n, start, 30)
			require.NoError(t, err)

			sum := money.Zero
			for _, inst := range plan {
				assert.False(t, inst.Amount.IsNegative())
				sum = sum.Add(inst.Amount)
			}
			assert.True(t, sum.Equal(money.MustParse(total)), "total %s n %d got %s", total, n, sum)
		}
	}
}

func TestPlanRejectsBadCount(t *testing.T) {
	_, err := Plan(money.MustParse("10"), 0, time.Now(), 30)
	assert.ErrorIs(t, err, money.ErrInvalidParts)
}
