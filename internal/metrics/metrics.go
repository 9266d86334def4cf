package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus collectors for inventory operations. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	transactions    *prometheus.CounterVec
	rejectedBatches *prometheus.CounterVec
	auditEntries    *prometheus.CounterVec
	denied          *prometheus.CounterVec
	stockUnits      prometheus.Gauge
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide metrics instance.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

// New builds collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	transactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockflow_transactions_total",
		Help: "Stock movement records created, by direction.",
	}, []string{"type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockflow_batches_rejected_total",
		Help: "Movement batches rejected as a whole, by reason.",
	}, []string{"reason"})
	audit := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockflow_audit_entries_total",
		Help: "Audit log entries appended, by module.",
	}, []string{"module"})
	denied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockflow_permission_denied_total",
		Help: "Operations refused by the authorization gate, by capability.",
	}, []string{"capability"})
	stock := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stockflow_stock_units",
		Help: "Sum of product quantities after the last committed mutation.",
	})
	registry.MustRegister(transactions, rejected, audit, denied, stock)
	return &Metrics{
		registry:        registry,
		transactions:    transactions,
		rejectedBatches: rejected,
		auditEntries:    audit,
		denied:          denied,
		stockUnits:      stock,
	}
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) TransactionsCreated(txType string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.transactions.WithLabelValues(txType).Add(float64(count))
}

func (m *Metrics) BatchRejected(reason string) {
	if m == nil {
		return
	}
	m.rejectedBatches.WithLabelValues(reason).Inc()
}

func (m *Metrics) AuditAppended(module string) {
	if m == nil {
		return
	}
	m.auditEntries.WithLabelValues(module).Inc()
}

func (m *Metrics) PermissionDenied(capability string) {
	if m == nil {
		return
	}
	m.denied.WithLabelValues(capability).Inc()
}

func (m *Metrics) SetStockUnits(units int) {
	if m == nil {
		return
	}
	m.stockUnits.Set(float64(units))
}
