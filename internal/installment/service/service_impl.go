package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/installment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reconciler is satisfied by the overdue sweeper.
type Reconciler interface {
	Today() time.Time
	Reconcile(ctx context.Context, today time.Time) (int, error)
}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Reconciler Reconciler
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	reconciler Reconciler
}

func NewService(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("installment.service"),
		reconciler: p.Reconciler,
	}
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Installment, error) {
	if err := s.reconcile(ctx); err != nil {
		return nil, err
	}

	var inst domain.Installment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInstallmentNotFound
		}
		return nil, err
	}
	return &inst, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInstallmentRequest) ([]domain.Installment, error) {
	if err := s.reconcile(ctx); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&domain.Installment{})
	if req.InvoiceID != nil {
		q = q.Where("installments.invoice_id = ?", *req.InvoiceID)
	}
	if req.CustomerID != nil {
		q = q.Joins("JOIN invoices ON invoices.id = installments.invoice_id").
			Where("invoices.customer_id = ?", *req.CustomerID)
	}
	if req.Status != "" {
		q = q.Where("installments.status = ?", req.Status)
	}

	var rows []domain.Installment
	err := q.Order("installments.due_date ASC").
		Order("installments.installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) reconcile(ctx context.Context) error {
	if s.reconciler == nil {
		return nil
	}
	_, err := s.reconciler.Reconcile(ctx, s.reconciler.Today())
	return err
}
