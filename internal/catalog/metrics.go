package catalog

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"laser-compare/internal/observability"
)

// Metrics holds the catalog's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	importRows *prometheus.CounterVec
}

// NewMetrics registers the catalog collectors on reg. The equipment gauge is
// read from the store at scrape time.
func NewMetrics(reg prometheus.Registerer, s *Store) (*Metrics, error) {
	total := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "catalog_equipment_total",
		Help: "Number of machines in the equipment catalog.",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		n, err := s.Count(ctx)
		if err != nil {
			observability.Logger.Warn("counting equipment for metrics", zap.Error(err))
			return 0
		}
		return float64(n)
	})

	m := &Metrics{
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_import_rows_total",
			Help: "Rows processed by bulk imports, by outcome.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{total, m.importRows} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeImport(res ImportResult) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues("inserted").Add(float64(res.Inserted))
	m.importRows.WithLabelValues("skipped").Add(float64(res.Skipped))
}
