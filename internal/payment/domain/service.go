package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/errkind"
)

type ApplyPaymentRequest struct {
	InstallmentID snowflake.ID
	Amount        decimal.Decimal
	Notes         string
}

// ApplyPaymentResult carries the recorded payment and how much of the
// requested amount was applied.
type ApplyPaymentResult struct {
	Payment   Payment
	Requested decimal.Decimal
	Clamped   bool
}

type Service interface {
	// ApplyPayment records a payment against an installment. Amounts above
	// the remaining balance are clamped to it.
	ApplyPayment(ctx context.Context, req ApplyPaymentRequest) (*ApplyPaymentResult, error)
	ListByInstallment(ctx context.Context, installmentID snowflake.ID) ([]Payment, error)
	ListByInvoice(ctx context.Context, invoiceID snowflake.ID) ([]Payment, error)
}

var (
	ErrInvalidAmount          = errkind.New("invalid_amount", errkind.ErrInvalidAmount)
	ErrInstallmentNotFound    = errkind.New("installment_not_found", errkind.ErrNotFound)
	ErrInstallmentAlreadyPaid = errkind.New("installment_already_paid", errkind.ErrConstraintViolation)
)
