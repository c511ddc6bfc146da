package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/railpos/internal/config"
	"go.opentelemetry.io/otel"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(func(cfg config.Config) *LedgerMetrics {
		return LedgerWithConfig(cfg)
	}),
	fx.Provide(func(cfg config.Config) (*JobMetrics, error) {
		return NewJobMetrics(cfg, otel.GetMeterProvider())
	}),
)

// LedgerMetrics counts money-moving ledger operations.
type LedgerMetrics struct {
	salesCreated       *prometheus.CounterVec
	salesCancelled     prometheus.Counter
	paymentsApplied    prometheus.Counter
	paymentsClamped    prometheus.Counter
	overdueFlipped     prometheus.Counter
	numberingConflicts prometheus.Counter
}

var (
	ledgerMetricsOnce sync.Once
	ledgerMetrics     *LedgerMetrics
)

func LedgerWithConfig(cfg config.Config) *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerMetrics = NewLedgerMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return ledgerMetrics
}

func ResetLedgerMetricsForTest() {
	ledgerMetricsOnce = sync.Once{}
	ledgerMetrics = nil
}

// NewLedgerMetrics registers the ledger instruments on registerer.
func NewLedgerMetrics(registerer prometheus.Registerer, cfg config.Config) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "railpos"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	salesCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "railpos_sales_created_total",
			Help:        "Invoices created, by payment method.",
			ConstLabels: constLabels,
		},
		[]string{"payment_method"}, // cash | installment
	)
	salesCancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "railpos_sales_cancelled_total",
		Help:        "Invoices cancelled with stock restored.",
		ConstLabels: constLabels,
	})
	paymentsApplied := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "railpos_payments_applied_total",
		Help:        "Payments recorded against installments.",
		ConstLabels: constLabels,
	})
	paymentsClamped := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "railpos_payment_amount_clamped_total",
		Help:        "Payments capped to the installment's remaining balance.",
		ConstLabels: constLabels,
	})
	overdueFlipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "railpos_installments_overdue_flipped_total",
		Help:        "Installment status changes persisted by the overdue sweep.",
		ConstLabels: constLabels,
	})
	numberingConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "railpos_invoice_number_conflicts_total",
		Help:        "Invoice number collisions that triggered a retry.",
		ConstLabels: constLabels,
	})

	registerer.MustRegister(
		salesCreated,
		salesCancelled,
		paymentsApplied,
		paymentsClamped,
		overdueFlipped,
		numberingConflicts,
	)

	return &LedgerMetrics{
		salesCreated:       salesCreated,
		salesCancelled:     salesCancelled,
		paymentsApplied:    paymentsApplied,
		paymentsClamped:    paymentsClamped,
		overdueFlipped:     overdueFlipped,
		numberingConflicts: numberingConflicts,
	}
}

func (m *LedgerMetrics) IncSaleCreated(paymentMethod string) {
	if m == nil {
		return
	}
	m.salesCreated.WithLabelValues(paymentMethod).Inc()
}

func (m *LedgerMetrics) IncSaleCancelled() {
	if m == nil {
		return
	}
	m.salesCancelled.Inc()
}

func (m *LedgerMetrics) IncPaymentApplied(clamped bool) {
	if m == nil {
		return
	}
	m.paymentsApplied.Inc()
	if clamped {
		m.paymentsClamped.Inc()
	}
}

func (m *LedgerMetrics) AddOverdueFlipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.overdueFlipped.Add(float64(n))
}

func (m *LedgerMetrics) IncNumberingConflict() {
	if m == nil {
		return
	}
	m.numberingConflicts.Inc()
}
