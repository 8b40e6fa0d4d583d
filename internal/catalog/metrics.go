package catalog

import "github.com/prometheus/client_golang/prometheus"

// Metrics are catalog-level counters. A nil *Metrics records nothing.
type Metrics struct {
	Created         prometheus.Counter
	Deleted         prometheus.Counter
	Rejected        *prometheus.CounterVec
	PublishFailures prometheus.Counter
	Products        prometheus.GaugeFunc
}

func NewMetrics(reg prometheus.Registerer, store Store) *Metrics {
	m := &Metrics{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_products_created_total",
			Help: "Products added to the catalog",
		}),
		Deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_products_deleted_total",
			Help: "Products removed from the catalog",
		}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_create_rejected_total",
			Help: "Create requests rejected, by failing field",
		}, []string{"field"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_event_publish_failures_total",
			Help: "Change events that could not be published",
		}),
		Products: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products currently in the catalog",
		}, func() float64 { return float64(store.Len()) }),
	}

	reg.MustRegister(m.Created, m.Deleted, m.Rejected, m.PublishFailures, m.Products)
	return m
}

func (m *Metrics) created() {
	if m != nil {
		m.Created.Inc()
	}
}

func (m *Metrics) deleted() {
	if m != nil {
		m.Deleted.Inc()
	}
}

func (m *Metrics) rejected(field string) {
	if m != nil {
		m.Rejected.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) publishFailed() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}
