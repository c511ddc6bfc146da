package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/railpos/internal/invoice/domain"
	"github.com/smallbiznis/railpos/internal/money"
	"github.com/smallbiznis/railpos/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Notes:     strings.TrimSpace(req.Notes),
		Metadata:  toJSONMap(req.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, customer); err != nil {
		return nil, err
	}

	s.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("phone", logger.MaskPhone(customer.Phone)),
		zap.Any("metadata", logger.MaskJSON(customer.Metadata)),
	)
	return customer, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		customer.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Metadata != nil {
		customer.Metadata = toJSONMap(req.Metadata)
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context, search string) ([]domain.Customer, error) {
	return s.repo.List(ctx, s.db, search)
}

// Delete locks the customer so a sale being recorded for it either finishes
// first and is counted, or waits and then fails on the missing customer. The
// invoices foreign key rejects the delete if a row slips past the count.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		var invoices int64
		if err := tx.Model(&invoicedomain.Invoice{}).
			Where("customer_id = ?", id).
			Count(&invoices).Error; err != nil {
			return err
		}
		if invoices > 0 {
			return domain.ErrCustomerHasInvoices
		}
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func (s *Service) TotalDebt(ctx context.Context, id snowflake.ID) (decimal.Decimal, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return decimal.Zero, err
	}
	if customer == nil {
		return decimal.Zero, domain.ErrCustomerNotFound
	}

	var invoices []invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Select("id", "total_amount", "paid_amount").
		Where("customer_id = ?", id).
		Find(&invoices).Error
	if err != nil {
		return decimal.Zero, err
	}

	debt := money.Zero
	for _, inv := range invoices {
		debt = debt.Add(inv.RemainingBalance())
	}
	return money.Round(debt), nil
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
