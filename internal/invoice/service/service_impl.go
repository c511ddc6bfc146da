package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/railpos/internal/catalog/domain"
	"github.com/smallbiznis/railpos/internal/clock"
	"github.com/smallbiznis/railpos/internal/config"
	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
	"github.com/smallbiznis/railpos/internal/installment/scheduler"
	"github.com/smallbiznis/railpos/internal/invoice/domain"
	"github.com/smallbiznis/railpos/internal/money"
	"github.com/smallbiznis/railpos/internal/observability/logger"
	"github.com/smallbiznis/railpos/internal/observability/metrics"
	"github.com/smallbiznis/railpos/internal/observability/tracing"
	paymentdomain "github.com/smallbiznis/railpos/internal/payment/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Cfg       config.LedgerConfig
	Numberer  domain.Numberer
	Products  catalogdomain.Repository
	Customers customerdomain.Repository
	Payments  paymentdomain.Repository
	Metrics   *metrics.LedgerMetrics `optional:"true"`

	Reconciler domain.Reconciler `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	cfg       config.LedgerConfig
	numberer  domain.Numberer
	products  catalogdomain.Repository
	customers customerdomain.Repository
	payments  paymentdomain.Repository
	metrics   *metrics.LedgerMetrics

	reconciler domain.Reconciler
}

func NewService(p Params) domain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     c,
		cfg:       p.Cfg.WithDefaults(),
		numberer:  p.Numberer,
		products:  p.Products,
		customers: p.Customers,
		payments:  p.Payments,
		metrics:   p.Metrics,

		reconciler: p.Reconciler,
	}
}

// CreateSale records a sale atomically: invoice number, item snapshots,
// stock decrements and, for installment sales, the schedule. A clash on the
// invoice number retries the whole transaction.
func (s *Service) CreateSale(ctx context.Context, req domain.CreateSaleRequest) (inv *domain.Invoice, err error) {
	ctx, span := tracing.Start(ctx, "invoice.create_sale",
		attribute.String("payment_method", string(req.PaymentMethod)),
		attribute.Int("items", len(req.Items)),
	)
	defer func() { tracing.End(span, err) }()

	if err := validateSale(&req); err != nil {
		return nil, err
	}

	log := logger.With(ctx, s.log)
	for attempt := 1; ; attempt++ {
		inv, err = s.createSale(ctx, req)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflictingInvoiceNumber) || attempt >= s.cfg.NumberingMaxAttempts {
			return nil, err
		}
		s.metrics.IncNumberingConflict()
		log.Warn("invoice number taken, retrying", zap.Int("attempt", attempt))
	}

	s.metrics.IncSaleCreated(string(inv.PaymentMethod))
	log.Info("sale created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("customer_id", inv.CustomerID.String()),
		zap.String("payment_method", string(inv.PaymentMethod)),
		zap.String("total_amount", inv.TotalAmount.StringFixed(money.Scale)),
		zap.Int("num_installments", inv.NumInstallments),
	)
	return inv, nil
}

func validateSale(req *domain.CreateSaleRequest) error {
	if len(req.Items) == 0 {
		return domain.ErrEmptyInvoice
	}
	if !req.PaymentMethod.Valid() {
		return domain.ErrInvalidPaymentMethod
	}
	switch req.PaymentMethod {
	case domain.PaymentMethodCash:
		req.NumInstallments = 1
	case domain.PaymentMethodInstallment:
		if req.NumInstallments < 1 {
			return domain.ErrInvalidInstallmentCount
		}
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return domain.ErrInvalidQuantity
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return domain.ErrInvalidUnitPrice
		}
	}
	req.Notes = strings.TrimSpace(req.Notes)
	return nil
}

func (s *Service) createSale(ctx context.Context, req domain.CreateSaleRequest) (*domain.Invoice, error) {
	now := s.clock.Now().UTC()
	today := clock.Date(now, s.cfg.Location)

	var inv *domain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.customers.FindByIDForShare(ctx, tx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return customerdomain.ErrCustomerNotFound
		}

		number, err := s.numberer.Next(ctx, tx, today)
		if err != nil {
			return err
		}

		inv = &domain.Invoice{
			ID:              s.genID.Generate(),
			InvoiceNumber:   number,
			CustomerID:      req.CustomerID,
			TotalAmount:     money.Zero,
			PaidAmount:      money.Zero,
			PaymentMethod:   req.PaymentMethod,
			NumInstallments: req.NumInstallments,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Omit(clause.Associations).Create(inv).Error; err != nil {
			switch {
			case errors.Is(err, gorm.ErrDuplicatedKey):
				return domain.ErrConflictingInvoiceNumber
			case errors.Is(err, gorm.ErrForeignKeyViolated):
				return customerdomain.ErrCustomerNotFound
			}
			return err
		}

		items, total, err := s.sellItems(ctx, tx, inv.ID, req.Items, now)
		if err != nil {
			return err
		}
		inv.Items = items
		inv.TotalAmount = total

		switch inv.PaymentMethod {
		case domain.PaymentMethodCash:
			inv.PaidAmount = total
		case domain.PaymentMethodInstallment:
			plan, err := scheduler.Plan(total, inv.NumInstallments, today, s.cfg.InstallmentIntervalDays)
			if err != nil {
				return err
			}
			for i := range plan {
				plan[i].ID = s.genID.Generate()
				plan[i].InvoiceID = inv.ID
				plan[i].CreatedAt = now
				plan[i].UpdatedAt = now
				plan[i].RefreshStatus(today)
			}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
			inv.Installments = plan
		}
		inv.RefreshStatus()

		return tx.Model(&domain.Invoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]any{
				"total_amount": inv.TotalAmount,
				"paid_amount":  inv.PaidAmount,
				"status":       inv.Status,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// sellItems snapshots each line's price and takes its quantity out of stock.
// Products are locked in ID order so concurrent sales of the same products
// cannot deadlock; items keep the order of the request.
func (s *Service) sellItems(
	ctx context.Context,
	tx *gorm.DB,
	invoiceID snowflake.ID,
	lines []domain.SaleItem,
	now time.Time,
) ([]domain.InvoiceItem, decimal.Decimal, error) {
	products := make(map[snowflake.ID]*catalogdomain.Product, len(lines))
	for _, id := range lockOrder(lines) {
		product, err := s.products.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, catalogdomain.ErrProductNotFound
		}
		products[id] = product
	}

	items := make([]domain.InvoiceItem, 0, len(lines))
	total := money.Zero
	for _, line := range lines {
		product := products[line.ProductID]

		unitPrice := product.Price
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		unitPrice = money.Round(unitPrice)

		if err := s.products.AdjustStock(ctx, tx, product.ID, -line.Quantity, s.cfg.AllowNegativeStock); err != nil {
			return nil, decimal.Zero, err
		}

		item := domain.InvoiceItem{
			ID:         s.genID.Generate(),
			InvoiceID:  invoiceID,
			ProductID:  product.ID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: money.Mul(unitPrice, line.Quantity),
			CreatedAt:  now,
		}
		items = append(items, item)
		total = total.Add(item.TotalPrice)
	}

	if err := tx.Create(&items).Error; err != nil {
		return nil, decimal.Zero, err
	}
	return items, money.Round(total), nil
}

// lockOrder returns the distinct products of lines in ascending ID order.
func lockOrder(lines []domain.SaleItem) []snowflake.ID {
	ids := make([]snowflake.ID, 0, len(lines))
	seen := make(map[snowflake.ID]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	slices.Sort(ids)
	return ids
}

// CancelSale locks the invoice before touching its installments, the same
// order ApplyPayment uses.
func (s *Service) CancelSale(ctx context.Context, invoiceID snowflake.ID) (err error) {
	ctx, span := tracing.Start(ctx, "invoice.cancel_sale")
	defer func() { tracing.End(span, err) }()

	var (
		restored  int
		discarded int64
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv domain.Invoice
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", invoiceID).
			First(&inv).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvoiceNotFound
			}
			return err
		}

		var items []domain.InvoiceItem
		if err := tx.Where("invoice_id = ?", invoiceID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			err := s.products.AdjustStock(ctx, tx, item.ProductID, item.Quantity, true)
			if errors.Is(err, catalogdomain.ErrProductNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			restored++
		}

		if discarded, err = s.payments.DeleteByInvoice(ctx, tx, invoiceID); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&installmentdomain.Installment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&domain.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", invoiceID).Delete(&domain.Invoice{}).Error
	})
	if err != nil {
		return err
	}

	s.metrics.IncSaleCancelled()
	log := logger.With(ctx, s.log)
	log.Info("sale cancelled",
		zap.String("invoice_id", invoiceID.String()),
		zap.Int("items_restocked", restored),
	)
	if discarded > 0 {
		log.Warn("payments discarded with cancelled sale",
			zap.String("invoice_id", invoiceID.String()),
			zap.Int64("payments", discarded),
		)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, invoiceID snowflake.ID) (*domain.Invoice, error) {
	if s.reconciler != nil {
		if _, err := s.reconciler.Reconcile(ctx, s.reconciler.Today()); err != nil {
			return nil, err
		}
	}

	var inv domain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		Where("id = ?", invoiceID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) ([]domain.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&domain.Invoice{})
	if req.CustomerID != nil {
		q = q.Where("customer_id = ?", *req.CustomerID)
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var invoices []domain.Invoice
	if err := q.Order("invoice_number DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
