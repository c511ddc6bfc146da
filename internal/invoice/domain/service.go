package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/errkind"
	"gorm.io/gorm"
)

type SaleItem struct {
	ProductID snowflake.ID
	Quantity  int
	// UnitPrice overrides the catalog price when set.
	UnitPrice *decimal.Decimal
}

type CreateSaleRequest struct {
	CustomerID      snowflake.ID
	PaymentMethod   PaymentMethod
	NumInstallments int
	Notes           string
	Items           []SaleItem
}

type ListInvoiceRequest struct {
	CustomerID *snowflake.ID
	Status     Status
}

type Service interface {
	CreateSale(ctx context.Context, req CreateSaleRequest) (*Invoice, error)
	// CancelSale deletes the invoice with its items, installments and
	// payments, and returns sold stock to products that still exist.
	CancelSale(ctx context.Context, invoiceID snowflake.ID) error
	// Get returns the invoice with its items and installments. Installment
	// statuses are reconciled against today first.
	Get(ctx context.Context, invoiceID snowflake.ID) (*Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) ([]Invoice, error)
}

// Reconciler brings stored installment statuses in line with the calendar.
type Reconciler interface {
	Today() time.Time
	Reconcile(ctx context.Context, today time.Time) (int, error)
}

// Numberer hands out invoice numbers inside the creating transaction.
type Numberer interface {
	Next(ctx context.Context, tx *gorm.DB, day time.Time) (string, error)
}

var (
	ErrInvoiceNotFound          = errkind.New("invoice_not_found", errkind.ErrNotFound)
	ErrEmptyInvoice             = errkind.New("empty_invoice", errkind.ErrEmptyInvoice)
	ErrInvalidPaymentMethod     = errkind.New("invalid_payment_method", errkind.ErrInvalidArgument)
	ErrInvalidInstallmentCount  = errkind.New("invalid_installment_count", errkind.ErrInvalidArgument)
	ErrInvalidQuantity          = errkind.New("invalid_quantity", errkind.ErrInvalidArgument)
	ErrInvalidUnitPrice         = errkind.New("invalid_unit_price", errkind.ErrInvalidAmount)
	ErrConflictingInvoiceNumber = errkind.New("conflicting_invoice_number", errkind.ErrConflict)
	ErrInvoiceNumberExhausted   = errkind.New("invoice_number_exhausted", errkind.ErrConstraintViolation)
)
