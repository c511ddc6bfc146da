package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/errkind"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Barcode       string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	MinStockLevel *int
	Metadata      map[string]any
}

// UpdateProductRequest changes only the non-nil fields. An empty Barcode
// clears it.
type UpdateProductRequest struct {
	Barcode       *string
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	MinStockLevel *int
	Metadata      map[string]any
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateProductRequest) (*Product, error)
	Get(ctx context.Context, id snowflake.ID) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	Delete(ctx context.Context, id snowflake.ID) error
	ListLowStock(ctx context.Context) ([]Product, error)
}

// Repository takes the handle to run on so callers can pass a transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	Save(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindByBarcode(ctx context.Context, db *gorm.DB, barcode string) (*Product, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListLowStock(ctx context.Context, db *gorm.DB) ([]Product, error)
	// AdjustStock adds delta to the stock in a single statement. Unless
	// allowNegative is set it refuses to take stock below zero.
	AdjustStock(ctx context.Context, db *gorm.DB, id snowflake.ID, delta int, allowNegative bool) error
}

var (
	ErrProductNotFound   = errkind.New("product_not_found", errkind.ErrNotFound)
	ErrInvalidName       = errkind.New("invalid_product_name", errkind.ErrInvalidArgument)
	ErrInvalidPrice      = errkind.New("invalid_price", errkind.ErrInvalidAmount)
	ErrInvalidStockLevel = errkind.New("invalid_stock_level", errkind.ErrInvalidArgument)
	ErrDuplicateBarcode  = errkind.New("duplicate_barcode", errkind.ErrConflict)
	ErrInsufficientStock = errkind.New("insufficient_stock", errkind.ErrInsufficientStock)
)
