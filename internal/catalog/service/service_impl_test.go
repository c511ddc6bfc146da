package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/cache"
	"github.com/smallbiznis/railpos/internal/catalog/domain"
	"github.com/smallbiznis/railpos/internal/catalog/repository"
	"github.com/smallbiznis/railpos/internal/errkind"
	"github.com/smallbiznis/railpos/internal/money"
	"github.com/smallbiznis/railpos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    testutil.NewNode(t),
		Repo:     repository.Provide(),
		Barcodes: cache.NewBarcodeCache(),
	})
	return svc, db
}

func TestCreateProductDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, domain.CreateProductRequest{
		Name:          "  Rice 5kg ",
		Price:         decimal.RequireFromString("12.345"),
		StockQuantity: 10,
		Metadata:      map[string]any{"category": "staples"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", product.Name)
	assert.Equal(t, "12.35", product.Price.StringFixed(2))
	assert.Equal(t, domain.DefaultMinStockLevel, product.MinStockLevel)
	assert.Nil(t, product.Barcode)

	got, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(money.MustParse("12.35")))
	assert.Equal(t, "staples", got.Metadata["category"])
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Soap", Price: money.MustParse("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.ErrorIs(t, err, errkind.ErrInvalidAmount)

	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Soap", StockQuantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStockLevel)
}

func TestDuplicateBarcode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{Name: "Tea", Barcode: "899100"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Coffee", Barcode: "899100"})
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
	assert.ErrorIs(t, err, errkind.ErrConflict)

	// Products without a barcode never clash.
	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Sugar"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Salt"})
	require.NoError(t, err)
}

func TestGetByBarcodeFollowsUpdates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, domain.CreateProductRequest{Name: "Tea", Barcode: "111", Price: money.MustParse("2")})
	require.NoError(t, err)

	got, err := svc.GetByBarcode(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	newBarcode := "222"
	newPrice := money.MustParse("2.50")
	_, err = svc.Update(ctx, product.ID, domain.UpdateProductRequest{Barcode: &newBarcode, Price: &newPrice})
	require.NoError(t, err)

	_, err = svc.GetByBarcode(ctx, "111")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	got, err = svc.GetByBarcode(ctx, "222")
	require.NoError(t, err)
	assert.Equal(t, "2.50", got.Price.StringFixed(2))

	require.NoError(t, svc.Delete(ctx, product.ID))
	_, err = svc.GetByBarcode(ctx, "222")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, err, errkind.ErrNotFound)
}

func TestListLowStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	minLevel := 2
	_, err := svc.Create(ctx, domain.CreateProductRequest{Name: "Plenty", StockQuantity: 50})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "AtThreshold", StockQuantity: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Custom", StockQuantity: 3, MinStockLevel: &minLevel})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Empty", StockQuantity: 0})
	require.NoError(t, err)

	low, err := svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Empty", low[0].Name)
	assert.Equal(t, "AtThreshold", low[1].Name)
	for _, p := range low {
		assert.True(t, p.IsLowStock())
	}
}

func TestAdjustStock(t *testing.T) {
	_, db := newTestService(t)
	ctx := context.Background()
	repo := repository.Provide()
	id := testutil.SeedProduct(t, db, testutil.NewNode(t), "Tea", "2.00", 3)

	require.NoError(t, repo.AdjustStock(ctx, db, id, -2, false))
	assert.Equal(t, 1, testutil.Stock(t, db, id))

	err := repo.AdjustStock(ctx, db, id, -2, false)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, testutil.Stock(t, db, id))

	require.NoError(t, repo.AdjustStock(ctx, db, id, -2, true))
	assert.Equal(t, -1, testutil.Stock(t, db, id))

	err = repo.AdjustStock(ctx, db, 99, 1, true)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
