package testutil

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/railpos/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	"github.com/smallbiznis/railpos/internal/money"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func SeedCustomer(t testing.TB, db *gorm.DB, node *snowflake.Node, name string) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	customer := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer.ID
}

func SeedProduct(t testing.TB, db *gorm.DB, node *snowflake.Node, name, price string, stock int) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	product := catalogdomain.Product{
		ID:            node.Generate(),
		Name:          name,
		Price:         money.MustParse(price),
		StockQuantity: stock,
		MinStockLevel: catalogdomain.DefaultMinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&product).Error)
	return product.ID
}

// Stock reads the current stock of a product.
func Stock(t testing.TB, db *gorm.DB, id snowflake.ID) int {
	t.Helper()
	var product catalogdomain.Product
	require.NoError(t, db.Where("id = ?", id).First(&product).Error)
	return product.StockQuantity
}
