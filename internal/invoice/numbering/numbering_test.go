package numbering

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/railpos/internal/invoice/domain"
	"github.com/smallbiznis/railpos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func insertNumber(t *testing.T, db *gorm.DB, number string) {
	t.Helper()
	now := time.Now().UTC()
	inv := domain.Invoice{
		ID:            testutil.NewNode(t).Generate(),
		InvoiceNumber: number,
		CustomerID:    testutil.SeedCustomer(t, db, testutil.NewNode(t), "Walk-in"),
		PaymentMethod: domain.PaymentMethodCash,
		Status:        domain.StatusPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&inv).Error)
}

func TestNextStartsAtOne(t *testing.T) {
	db := testutil.NewDB(t)
	got, err := New().Next(context.Background(), db, testutil.Day(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "202401010001", got)
}

func TestNextFollowsGreatestOfTheDay(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	insertNumber(t, db, "202401010001")
	insertNumber(t, db, "202401010007")
	insertNumber(t, db, "202401020003")
	insertNumber(t, db, "202312310042")

	got, err := New().Next(ctx, db, testutil.Day(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "202401010008", got)

	got, err = New().Next(ctx, db, testutil.Day(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, "202401030001", got)
}

func TestNextExhausted(t *testing.T) {
	db := testutil.NewDB(t)
	insertNumber(t, db, "202401019999")

	_, err := New().Next(context.Background(), db, testutil.Day(2024, 1, 1))
	assert.ErrorIs(t, err, domain.ErrInvoiceNumberExhausted)
}

func TestFormatAndSequence(t *testing.T) {
	got, err := Format(testutil.Day(2024, 12, 31), 42)
	require.NoError(t, err)
	assert.Equal(t, "202412310042", got)

	n, err := Sequence("202412310042", "20241231")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Sequence("2024123142", "20241231")
	assert.Error(t, err)
	_, err = Format(testutil.Day(2024, 12, 31), 0)
	assert.ErrorIs(t, err, domain.ErrInvoiceNumberExhausted)
}
