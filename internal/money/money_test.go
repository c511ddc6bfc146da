package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEvenTotal(t *testing.T) {
	shares, err := Split(MustParse("300.00"), 3)
	require.NoError(t, err)
	require.Len(t, shares, 3)
	for _, share := range shares {
		assert.True(t, share.Equal(MustParse("100.00")), "got %s", share)
	}
}

func TestSplitAssignsRemainderToLastShare(t *testing.T) {
	shares, err := Split(MustParse("100.00"), 3)
	require.NoError(t, err)

	assert.True(t, shares[0].Equal(MustParse("33.33")))
	assert.True(t, shares[1].Equal(MustParse("33.33")))
	assert.True(t, shares[2].Equal(MustParse("33.34")))
	assert.True(t, Sum(shares...).Equal(MustParse("100.00")))
}

func TestSplitPreservesTotal(t *testing.T) {
	totals := []string{"0.01", "0.05", "10.00", "999.99", "1234.57", "7.00"}
	for _, raw := range totals {
		for parts := 1; parts <= 12; parts++ {
			total := MustParse(raw)
			shares, err := Split(total, parts)
			require.NoError(t, err)
			assert.True(t, Sum(shares...).Equal(total), "total %s parts %d", raw, parts)
		}
	}
}

func TestSplitRejectsBadInput(t *testing.T) {
	_, err := Split(MustParse("10.00"), 0)
	assert.ErrorIs(t, err, ErrInvalidParts)

	_, err = Split(decimal.NewFromInt(-1), 2)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParse(t *testing.T) {
	d, err := Parse(" 150.005 ")
	require.NoError(t, err)
	assert.Equal(t, "150.01", d.StringFixed(Scale))

	_, err = Parse("abc")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestMinAndMul(t *testing.T) {
	assert.True(t, Min(MustParse("150"), MustParse("100")).Equal(MustParse("100")))
	assert.True(t, Mul(MustParse("50.00"), 2).Equal(MustParse("100.00")))
}
