package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DefaultMinStockLevel is the low-stock threshold used when none is given.
const DefaultMinStockLevel = 5

// Product is a sellable catalog entry. Price is the current list price; sales
// snapshot it onto their items so later edits never reach old invoices.
type Product struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	Barcode       *string           `gorm:"type:text;uniqueIndex:ux_products_barcode" json:"barcode,omitempty"`
	Name          string            `gorm:"type:text;not null" json:"name"`
	Description   string            `gorm:"type:text" json:"description,omitempty"`
	Price         decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"price"`
	StockQuantity int               `gorm:"not null" json:"stock_quantity"`
	MinStockLevel int               `gorm:"not null" json:"min_stock_level"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// IsLowStock reports whether stock has fallen to the reorder threshold.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
