package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/errkind"
	"gorm.io/gorm"
)

type CreateCustomerRequest struct {
	Name     string
	Phone    string
	Address  string
	Notes    string
	Metadata map[string]any
}

type UpdateCustomerRequest struct {
	Name     *string
	Phone    *string
	Address  *string
	Notes    *string
	Metadata map[string]any
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateCustomerRequest) (*Customer, error)
	Get(ctx context.Context, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, search string) ([]Customer, error)
	// Delete refuses while the customer still has invoices.
	Delete(ctx context.Context, id snowflake.ID) error
	// TotalDebt is the sum of the remaining balances of the customer's
	// invoices.
	TotalDebt(ctx context.Context, id snowflake.ID) (decimal.Decimal, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Save(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	// FindByIDForShare keeps the row from being deleted until the
	// transaction ends; FindByIDForUpdate also blocks other sharers.
	FindByIDForShare(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, search string) ([]Customer, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

var (
	ErrCustomerNotFound    = errkind.New("customer_not_found", errkind.ErrNotFound)
	ErrInvalidName         = errkind.New("invalid_customer_name", errkind.ErrInvalidArgument)
	ErrCustomerHasInvoices = errkind.New("customer_has_invoices", errkind.ErrConstraintViolation)
)
