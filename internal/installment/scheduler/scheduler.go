// Package scheduler splits an invoice total into dated installments.
package scheduler

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/clock"
	"github.com/smallbiznis/railpos/internal/installment/domain"
	"github.com/smallbiznis/railpos/internal/money"
)

// Plan returns n unpaid installments numbered from 1. Installment i is due
// intervalDays*i days after start. Amounts are the cent-floored equal share,
// with the remainder on the last installment, so they sum exactly to total.
// IDs and InvoiceID are left for the caller.
func Plan(total decimal.Decimal, n int, start time.Time, intervalDays int) ([]domain.Installment, error) {
	amounts, err := money.Split(total, n)
	if err != nil {
		return nil, err
	}
	if intervalDays <= 0 {
		return nil, money.ErrInvalidParts
	}

	start = clock.Date(start, time.UTC)
	plan := make([]domain.Installment, n)
	for i, amount := range amounts {
		plan[i] = domain.Installment{
			InstallmentNumber: i + 1,
			Amount:            amount,
			PaidAmount:        money.Zero,
			DueDate:           clock.AddDays(start, intervalDays*(i+1)),
			Status:            domain.StatusPending,
		}
	}
	return plan, nil
}
