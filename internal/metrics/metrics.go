package metrics

import (
	"net/http"

	"outillage/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and updates the Prometheus metrics of the crib.
type Collector struct {
	registry *prometheus.Registry

	movements    *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	stockLevel   *prometheus.GaugeVec
	activeAlerts *prometheus.GaugeVec
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	movements := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outillage_movements_total",
			Help: "Applied stock movements",
		},
		[]string{"kind"},
	)

	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outillage_movements_rejected_total",
			Help: "Rejected stock movements",
		},
		[]string{"reason"},
	)

	stockLevel := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "outillage_stock_level",
			Help: "Current stock quantity per item",
		},
		[]string{"mabic"},
	)

	activeAlerts := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "outillage_active_alerts",
			Help: "Active alerts by severity",
		},
		[]string{"severity"},
	)

	for _, metric := range []prometheus.Collector{movements, rejected, stockLevel, activeAlerts} {
		registry.MustRegister(metric)
	}

	return &Collector{
		registry:     registry,
		movements:    movements,
		rejected:     rejected,
		stockLevel:   stockLevel,
		activeAlerts: activeAlerts,
	}
}

// Handler serves the collector's registry for the metrics server.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordMovement counts an applied movement and updates the item's gauge.
func (c *Collector) RecordMovement(m models.Movement) {
	c.movements.WithLabelValues(string(m.Kind)).Inc()
	c.stockLevel.WithLabelValues(m.Mabic).Set(float64(m.ResultingQuantity))
}

// RecordRejection counts a rejected movement by failure reason.
func (c *Collector) RecordRejection(reason string) {
	c.rejected.WithLabelValues(reason).Inc()
}

// SetStock sets the stock gauge for an item, used at startup to publish
// the seeded levels.
func (c *Collector) SetStock(mabic string, quantity int) {
	c.stockLevel.WithLabelValues(mabic).Set(float64(quantity))
}

// UpdateAlerts republishes the active-alert gauges from the current set.
func (c *Collector) UpdateAlerts(active []models.Alert) {
	counts := map[models.AlertSeverity]int{
		models.SeverityCritical: 0,
		models.SeverityWarning:  0,
		models.SeverityInfo:     0,
	}
	for _, a := range active {
		counts[a.Severity]++
	}
	for severity, n := range counts {
		c.activeAlerts.WithLabelValues(string(severity)).Set(float64(n))
	}
}
