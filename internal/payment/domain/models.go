package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
)

// Payment is money received against one installment. Amount is what was
// applied after clamping to the installment's remaining balance.
type Payment struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	InstallmentID snowflake.ID    `gorm:"not null;index" json:"installment_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"not null" json:"payment_date"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`

	Installment *installmentdomain.Installment `gorm:"foreignKey:InstallmentID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (Payment) TableName() string { return "payments" }
