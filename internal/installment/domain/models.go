package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/money"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Installment is one scheduled slice of an installment invoice.
//
// Status is derived from Amount, PaidAmount, DueDate and the current date.
// Change it through RefreshStatus or AddPaid only.
type Installment struct {
	ID                snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID         snowflake.ID    `gorm:"not null;uniqueIndex:ux_installments_invoice_number,priority:1" json:"invoice_id"`
	InstallmentNumber int             `gorm:"not null;uniqueIndex:ux_installments_invoice_number,priority:2" json:"installment_number"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaidAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paid_amount"`
	DueDate           time.Time       `gorm:"type:date;not null;index" json:"due_date"`
	Status            Status          `gorm:"type:text;not null;index" json:"status"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

func (Installment) TableName() string { return "installments" }

// DeriveStatus is the single rule for installment status: settled is paid,
// any payment is partial, past due with nothing paid is overdue.
func DeriveStatus(amount, paid decimal.Decimal, dueDate, today time.Time) Status {
	switch {
	case amount.Sub(paid).Sign() <= 0:
		return StatusPaid
	case paid.Sign() > 0:
		return StatusPartial
	case dueDate.Before(today):
		return StatusOverdue
	default:
		return StatusPending
	}
}

func (i Installment) Remaining() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsOutstanding reports whether the installment is past due and unsettled.
func (i Installment) IsOutstanding(today time.Time) bool {
	return i.DueDate.Before(today) && i.Remaining().IsPositive()
}

func (i *Installment) RefreshStatus(today time.Time) {
	i.Status = DeriveStatus(i.Amount, i.PaidAmount, i.DueDate, today)
}

// AddPaid records amount against the installment. Callers clamp amount to
// Remaining beforehand.
func (i *Installment) AddPaid(amount decimal.Decimal, today time.Time) {
	i.PaidAmount = money.Round(i.PaidAmount.Add(amount))
	i.RefreshStatus(today)
}
