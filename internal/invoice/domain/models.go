package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
	"github.com/smallbiznis/railpos/internal/money"
)

type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodInstallment PaymentMethod = "installment"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodInstallment
}

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// Invoice is a sale to a customer.
//
// TotalAmount is fixed at creation and equals the sum of the item line
// totals. Status is derived from TotalAmount and PaidAmount; change it
// through RefreshStatus or AddPaid only.
type Invoice struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceNumber   string          `gorm:"type:text;not null;uniqueIndex:ux_invoices_number" json:"invoice_number"`
	CustomerID      snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaidAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paid_amount"`
	PaymentMethod   PaymentMethod   `gorm:"type:text;not null" json:"payment_method"`
	NumInstallments int             `gorm:"not null" json:"num_installments"`
	Status          Status          `gorm:"type:text;not null;index" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	// Customer is never loaded; it declares the RESTRICT key that keeps a
	// customer from being deleted while it owns invoices.
	Customer     *customerdomain.Customer        `gorm:"foreignKey:CustomerID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
	Items        []InvoiceItem                   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Installments []installmentdomain.Installment `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"installments,omitempty"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem snapshots the product price at the time of sale. ProductID is
// kept after the product is deleted.
type InvoiceItem struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID  snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	ProductID  snowflake.ID    `gorm:"not null;index" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }

// DeriveStatus is the single rule for invoice status.
func DeriveStatus(total, paid decimal.Decimal) Status {
	switch {
	case total.Sub(paid).Sign() <= 0:
		return StatusPaid
	case paid.Sign() > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

func (i Invoice) RemainingBalance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

func (i *Invoice) RefreshStatus() {
	i.Status = DeriveStatus(i.TotalAmount, i.PaidAmount)
}

func (i *Invoice) AddPaid(amount decimal.Decimal) {
	i.PaidAmount = money.Round(i.PaidAmount.Add(amount))
	i.RefreshStatus()
}
