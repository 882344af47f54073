// Package api exposes the crib's operations over HTTP for the
// touchscreen pages: lookup, search, stock valuation, entry and exit
// movements, movement history and the alert board.
package api

import (
	"net/http"

	"outillage/internal/alerts"
	"outillage/internal/catalog"
	"outillage/internal/ledger"
	"outillage/internal/metrics"
	"outillage/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Server wires the core components behind the REST surface.
type Server struct {
	router    *gin.Engine
	catalog   *catalog.Catalog
	ledger    *ledger.Ledger
	alerts    *alerts.Aggregator
	monitor   *monitoring.Monitor
	collector *metrics.Collector
	hub       *Hub
}

// NewServer creates the API server. collector may be nil when Prometheus
// is disabled (tests).
func NewServer(c *catalog.Catalog, l *ledger.Ledger, a *alerts.Aggregator, m *monitoring.Monitor, mc *metrics.Collector) *Server {
	server := &Server{
		router:    gin.Default(),
		catalog:   c,
		ledger:    l,
		alerts:    a,
		monitor:   m,
		collector: mc,
		hub:       NewHub(),
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Outillage API is running"})
	})

	s.router.GET("/ws", s.handleWebSocket)

	v1 := s.router.Group("/api/v1")
	{
		// Item lookup and search
		v1.GET("/items/:mabic", s.LookupItem)
		v1.GET("/items", s.SearchItems)

		// Stock valuation
		v1.GET("/stocks", s.GetStocks)

		// Movements
		v1.POST("/movements/entry", s.RecordEntry)
		v1.POST("/movements/exit", s.RecordExit)
		v1.GET("/movements", s.GetMovements)

		// Alerts
		v1.GET("/alerts", s.GetAlerts)
		v1.POST("/alerts/acknowledge", s.AcknowledgeAlert)
		v1.POST("/alerts/report", s.ReportAlert)

		// Station counters
		v1.GET("/metrics", s.GetStationMetrics)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}
