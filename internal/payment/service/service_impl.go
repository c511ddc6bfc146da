package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/clock"
	"github.com/smallbiznis/railpos/internal/config"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
	invoicedomain "github.com/smallbiznis/railpos/internal/invoice/domain"
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

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Cfg     config.LedgerConfig
	Repo    paymentdomain.Repository
	Metrics *metrics.LedgerMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	cfg     config.LedgerConfig
	repo    paymentdomain.Repository
	metrics *metrics.LedgerMetrics
}

func NewService(p Params) paymentdomain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("payment.service"),
		genID:   p.GenID,
		clock:   c,
		cfg:     p.Cfg.WithDefaults(),
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// ApplyPayment locks the parent invoice and then the installment, so it
// serializes with cancellation and with other payments on the same invoice.
func (s *Service) ApplyPayment(ctx context.Context, req paymentdomain.ApplyPaymentRequest) (result *paymentdomain.ApplyPaymentResult, err error) {
	ctx, span := tracing.Start(ctx, "payment.apply",
		attribute.String("installment_id", req.InstallmentID.String()),
	)
	defer func() { tracing.End(span, err) }()

	requested := money.Round(req.Amount)
	if !requested.IsPositive() {
		return nil, paymentdomain.ErrInvalidAmount
	}

	now := s.clock.Now().UTC()
	today := clock.Date(now, s.cfg.Location)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner installmentdomain.Installment
		if err := tx.Select("id", "invoice_id").Where("id = ?", req.InstallmentID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return paymentdomain.ErrInstallmentNotFound
			}
			return err
		}

		var inv invoicedomain.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", owner.InvoiceID).
			First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoicedomain.ErrInvoiceNotFound
			}
			return err
		}

		var inst installmentdomain.Installment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", req.InstallmentID).
			First(&inst).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return paymentdomain.ErrInstallmentNotFound
			}
			return err
		}

		remaining := inst.Remaining()
		if !remaining.IsPositive() {
			return paymentdomain.ErrInstallmentAlreadyPaid
		}
		applied := money.Min(requested, remaining)

		payment := paymentdomain.Payment{
			ID:            s.genID.Generate(),
			InstallmentID: inst.ID,
			Amount:        applied,
			PaymentDate:   now,
			Notes:         strings.TrimSpace(req.Notes),
			CreatedAt:     now,
		}
		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}

		inst.AddPaid(applied, today)
		if err := tx.Model(&installmentdomain.Installment{}).
			Where("id = ?", inst.ID).
			Updates(map[string]any{
				"paid_amount": inst.PaidAmount,
				"status":      inst.Status,
				"updated_at":  now,
			}).Error; err != nil {
			return err
		}

		inv.AddPaid(applied)
		if err := tx.Model(&invoicedomain.Invoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]any{
				"paid_amount": inv.PaidAmount,
				"status":      inv.Status,
				"updated_at":  now,
			}).Error; err != nil {
			return err
		}

		result = &paymentdomain.ApplyPaymentResult{
			Payment:   payment,
			Requested: requested,
			Clamped:   applied.LessThan(requested),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncPaymentApplied(result.Clamped)
	log := logger.With(ctx, s.log)
	log.Info("payment applied",
		zap.String("payment_id", result.Payment.ID.String()),
		zap.String("installment_id", req.InstallmentID.String()),
		zap.String("amount", result.Payment.Amount.StringFixed(money.Scale)),
		zap.String("notes", logger.MaskText(result.Payment.Notes)),
	)
	if result.Clamped {
		log.Warn("payment clamped to remaining balance",
			zap.String("installment_id", req.InstallmentID.String()),
			zap.String("requested", requested.StringFixed(money.Scale)),
			zap.String("applied", result.Payment.Amount.StringFixed(money.Scale)),
		)
	}
	return result, nil
}

func (s *Service) ListByInstallment(ctx context.Context, installmentID snowflake.ID) ([]paymentdomain.Payment, error) {
	return s.repo.ListByInstallment(ctx, s.db, installmentID)
}

func (s *Service) ListByInvoice(ctx context.Context, invoiceID snowflake.ID) ([]paymentdomain.Payment, error) {
	return s.repo.ListByInvoice(ctx, s.db, invoiceID)
}
