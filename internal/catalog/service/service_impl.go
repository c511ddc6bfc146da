package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/cache"
	"github.com/smallbiznis/railpos/internal/catalog/domain"
	"github.com/smallbiznis/railpos/internal/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Barcodes cache.Cache[string, snowflake.ID] `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	barcodes cache.Cache[string, snowflake.ID]
}

func NewService(p Params) domain.Service {
	barcodes := p.Barcodes
	if barcodes == nil {
		barcodes = cache.NoopCache[string, snowflake.ID]{}
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("catalog.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		barcodes: barcodes,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if req.StockQuantity < 0 {
		return nil, domain.ErrInvalidStockLevel
	}
	minStock := domain.DefaultMinStockLevel
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}
	if minStock < 0 {
		return nil, domain.ErrInvalidStockLevel
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:            s.genID.Generate(),
		Barcode:       normalizeBarcode(req.Barcode),
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		Price:         money.Round(req.Price),
		StockQuantity: req.StockQuantity,
		MinStockLevel: minStock,
		Metadata:      toJSONMap(req.Metadata),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateBarcode
		}
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("price", product.Price.StringFixed(money.Scale)),
		zap.Int("stock_quantity", product.StockQuantity),
	)
	return product, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	previousBarcode := product.Barcode

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Barcode != nil {
		product.Barcode = normalizeBarcode(*req.Barcode)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		product.Price = money.Round(*req.Price)
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.MinStockLevel != nil {
		if *req.MinStockLevel < 0 {
			return nil, domain.ErrInvalidStockLevel
		}
		product.MinStockLevel = *req.MinStockLevel
	}
	if req.Metadata != nil {
		product.Metadata = toJSONMap(req.Metadata)
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateBarcode
		}
		return nil, err
	}
	if previousBarcode != nil {
		s.barcodes.Delete(*previousBarcode)
	}
	return product, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// GetByBarcode resolves a scanned barcode. The barcode to ID mapping is
// cached; the product row itself is always read fresh so price and stock are
// current.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrProductNotFound
	}

	if id, ok := s.barcodes.Get(barcode); ok {
		product, err := s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		if product != nil && product.Barcode != nil && *product.Barcode == barcode {
			return product, nil
		}
		s.barcodes.Delete(barcode)
	}

	product, err := s.repo.FindByBarcode(ctx, s.db, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	s.barcodes.Set(barcode, product.ID, cache.BarcodeTTL)
	return product, nil
}

// Delete removes the product. Invoice items keep their own price and
// quantity snapshot, so past sales are unaffected.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	if product.Barcode != nil {
		s.barcodes.Delete(*product.Barcode)
	}
	s.log.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *Service) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListLowStock(ctx, s.db)
}

func normalizeBarcode(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func toJSONMap(values map[string]any) datatypes.JSONMap {
	if len(values) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
