// Package overdue brings stored installment statuses in line with the
// calendar. Status is otherwise only rewritten when money moves, so an
// installment whose due date passes without payment stays "pending" until a
// sweep reconciles it.
package overdue

import (
	"context"
	"time"

	"github.com/smallbiznis/railpos/internal/clock"
	"github.com/smallbiznis/railpos/internal/config"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
	"github.com/smallbiznis/railpos/internal/observability/logger"
	"github.com/smallbiznis/railpos/internal/observability/metrics"
	"github.com/smallbiznis/railpos/internal/observability/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("overdue.sweeper",
	fx.Provide(NewSweeper),
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Cfg     config.LedgerConfig
	Metrics *metrics.LedgerMetrics `optional:"true"`
}

type Sweeper struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	cfg     config.LedgerConfig
	metrics *metrics.LedgerMetrics
}

func NewSweeper(p Params) *Sweeper {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Sweeper{
		db:      p.DB,
		log:     p.Log.Named("overdue.sweeper"),
		clock:   c,
		cfg:     p.Cfg.WithDefaults(),
		metrics: p.Metrics,
	}
}

// Today is the ledger's current calendar date.
func (s *Sweeper) Today() time.Time {
	return clock.Today(s.clock, s.cfg.Location)
}

// Reconcile rewrites the status of every past-due, unsettled installment
// whose stored status disagrees with the derived one, and returns how many
// rows changed. Each row is updated only if its status is still the one that
// was read, so a payment landing mid-sweep is never overwritten. Running it
// twice for the same day changes nothing the second time. A past-due
// installment that is partially paid stays partial; only unpaid ones become
// overdue.
func (s *Sweeper) Reconcile(ctx context.Context, today time.Time) (changed int, err error) {
	ctx, span := tracing.Start(ctx, "overdue.reconcile",
		attribute.String("today", today.Format(time.DateOnly)),
	)
	defer func() { tracing.End(span, err) }()

	today = clock.Date(today, today.Location())

	var candidates []installmentdomain.Installment
	err = s.db.WithContext(ctx).
		Where("due_date < ?", today).
		Where("status <> ?", installmentdomain.StatusPaid).
		Order("due_date ASC").
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return 0, err
	}

	now := s.clock.Now().UTC()
	for _, inst := range candidates {
		want := installmentdomain.DeriveStatus(inst.Amount, inst.PaidAmount, inst.DueDate, today)
		if want == inst.Status {
			continue
		}

		res := s.db.WithContext(ctx).
			Model(&installmentdomain.Installment{}).
			Where("id = ? AND status = ?", inst.ID, inst.Status).
			Updates(map[string]any{
				"status":     want,
				"updated_at": now,
			})
		if res.Error != nil {
			return changed, res.Error
		}
		changed += int(res.RowsAffected)
	}

	s.metrics.AddOverdueFlipped(changed)
	if changed > 0 {
		logger.With(ctx, s.log).Info("installment statuses reconciled",
			zap.Int("changed", changed),
			zap.Int("examined", len(candidates)),
			zap.String("today", today.Format(time.DateOnly)),
		)
	}
	return changed, nil
}

// ListOverdue reconciles and then returns every installment that is past due
// with a balance left, oldest due date first.
func (s *Sweeper) ListOverdue(ctx context.Context, today time.Time) ([]installmentdomain.Installment, error) {
	if _, err := s.Reconcile(ctx, today); err != nil {
		return nil, err
	}
	today = clock.Date(today, today.Location())

	var rows []installmentdomain.Installment
	err := s.db.WithContext(ctx).
		Where("due_date < ?", today).
		Where("status <> ?", installmentdomain.StatusPaid).
		Order("due_date ASC").
		Order("invoice_id ASC").
		Order("installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := rows[:0]
	for _, inst := range rows {
		if inst.IsOutstanding(today) {
			out = append(out, inst)
		}
	}
	return out, nil
}
