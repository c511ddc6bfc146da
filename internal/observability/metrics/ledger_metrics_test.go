package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smallbiznis/railpos/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLedgerMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg, config.Config{AppName: "railpos", Environment: "test"})

	m.IncSaleCreated("cash")
	m.IncSaleCreated("installment")
	m.IncSaleCreated("installment")
	m.IncPaymentApplied(true)
	m.IncPaymentApplied(false)
	m.AddOverdueFlipped(3)
	m.AddOverdueFlipped(0)
	m.IncNumberingConflict()
	m.IncSaleCancelled()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.salesCreated.WithLabelValues("installment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.salesCreated.WithLabelValues("cash")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.paymentsApplied))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsClamped))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.overdueFlipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.numberingConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.salesCancelled))
}

func TestNilLedgerMetricsIsSafe(t *testing.T) {
	var m *LedgerMetrics
	m.IncSaleCreated("cash")
	m.IncPaymentApplied(true)
	m.AddOverdueFlipped(1)
	m.IncNumberingConflict()
	m.IncSaleCancelled()
}

func TestLedgerSingleton(t *testing.T) {
	ResetLedgerMetricsForTest()
	defer ResetLedgerMetricsForTest()

	first := LedgerWithConfig(config.Config{AppName: "railpos-singleton"})
	second := LedgerWithConfig(config.Config{})
	assert.Same(t, first, second)
}
