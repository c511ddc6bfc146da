// Package migration creates and updates the ledger schema.
package migration

import (
	"context"
	"fmt"

	catalogdomain "github.com/smallbiznis/railpos/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
	invoicedomain "github.com/smallbiznis/railpos/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/railpos/internal/payment/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists the tables in dependency order.
func Models() []any {
	return []any{
		&customerdomain.Customer{},
		&catalogdomain.Product{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&installmentdomain.Installment{},
		&paymentdomain.Payment{},
	}
}

func Run(db *gorm.DB) error {
	return RunContext(context.Background(), db, zap.NewNop())
}

func RunContext(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	for _, model := range Models() {
		if err := db.WithContext(ctx).AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}
	log.Info("schema migrated", zap.Int("tables", len(Models())))
	return nil
}
