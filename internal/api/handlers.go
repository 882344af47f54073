package api

import (
	"errors"
	"net/http"

	"outillage/internal/labels"
	"outillage/internal/ledger"
	"outillage/internal/models"
	"outillage/internal/policy"

	"github.com/gin-gonic/gin"
)

// MovementRequest is the body of entry and exit requests. Quantity is
// deliberately unvalidated here so zero and negative values surface as
// INVALID_QUANTITY from the ledger rather than as a binding error.
type MovementRequest struct {
	Mabic    string `json:"mabic" binding:"required"`
	Quantity int    `json:"quantite"`
}

// MovementResponse carries the applied movement plus the label payload
// the UI sends to the printer.
type MovementResponse struct {
	Item            models.ItemRecord `json:"item"`
	Movement        models.Movement   `json:"movement"`
	LowStockWarning bool              `json:"low_stock_warning"`
	Label           labels.Payload    `json:"label"`
}

// AcknowledgeRequest identifies the alert to mark resolved.
type AcknowledgeRequest struct {
	Mabic  string             `json:"mabic" binding:"required"`
	Reason models.AlertReason `json:"reason" binding:"required"`
}

// ReportRequest carries an externally observed alert condition.
type ReportRequest struct {
	Mabic    string               `json:"mabic" binding:"required"`
	Reason   models.AlertReason   `json:"reason" binding:"required"`
	Severity models.AlertSeverity `json:"severity" binding:"required"`
	Message  string               `json:"message" binding:"required"`
}

type stockRow struct {
	models.ItemRecord
	Etat       policy.Tier `json:"etat"`
	TotalValue float64     `json:"valeur_totale"`
}

// LookupItem resolves one MABIC, normalizing the input the way the
// touchscreen does.
func (s *Server) LookupItem(c *gin.Context) {
	s.monitor.Increment("lookups")

	item, ok := s.catalog.Lookup(c.Param("mabic"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "MABIC introuvable", "code": "NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// SearchItems matches the term against MABICs and references. A blank
// term returns no results, matching the search page.
func (s *Server) SearchItems(c *gin.Context) {
	s.monitor.Increment("searches")

	results := s.catalog.Search(c.Query("q"))
	if results == nil {
		results = []models.ItemRecord{}
	}
	c.JSON(http.StatusOK, results)
}

// GetStocks returns the full stock table with per-item status and the
// valuation summary.
func (s *Server) GetStocks(c *gin.Context) {
	items := s.catalog.All()
	rows := make([]stockRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, stockRow{
			ItemRecord: item,
			Etat:       policy.Classify(item.Quantity, item.ReorderAt),
			TotalValue: item.TotalValue(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   rows,
		"summary": s.catalog.Summary(),
	})
}

// RecordEntry applies a stock-in movement.
func (s *Server) RecordEntry(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ledger.RecordEntry(req.Mabic, req.Quantity)
	if err != nil {
		s.rejectMovement(c, req, err)
		return
	}

	s.monitor.Increment("entries")
	s.afterMovement(result)

	c.JSON(http.StatusCreated, MovementResponse{
		Item:     result.Item,
		Movement: result.Movement,
		Label:    labels.FromMovement(result.Item, result.Movement),
	})
}

// RecordExit applies a stock-out movement. The response carries the
// low-stock warning so the page can show the critical banner.
func (s *Server) RecordExit(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ledger.RecordExit(req.Mabic, req.Quantity)
	if err != nil {
		s.rejectMovement(c, req, err)
		return
	}

	s.monitor.Increment("exits")
	s.afterMovement(result)

	c.JSON(http.StatusCreated, MovementResponse{
		Item:            result.Item,
		Movement:        result.Movement,
		LowStockWarning: result.LowStockWarning,
		Label:           labels.FromMovement(result.Item, result.Movement),
	})
}

// GetMovements returns the movement history, optionally filtered by item.
func (s *Server) GetMovements(c *gin.Context) {
	history := s.ledger.History(c.Query("mabic"))
	if history == nil {
		history = []models.Movement{}
	}
	c.JSON(http.StatusOK, history)
}

// GetAlerts returns the active and resolved alert sections.
func (s *Server) GetAlerts(c *gin.Context) {
	active := s.alerts.Active()
	if active == nil {
		active = []models.Alert{}
	}
	resolved := s.alerts.Resolved()
	if resolved == nil {
		resolved = []models.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{"active": active, "resolved": resolved})
}

// AcknowledgeAlert marks the matching active alert resolved.
func (s *Server) AcknowledgeAlert(c *gin.Context) {
	var req AcknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acknowledged := s.alerts.Acknowledge(req.Mabic, req.Reason)
	if acknowledged {
		s.publishAlerts()
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": acknowledged})
}

// ReportAlert records an externally observed condition such as an overdue
// return or an expired certification.
func (s *Server) ReportAlert(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Reason {
	case models.ReasonMaintenanceDue, models.ReasonCertificationExpired, models.ReasonOverdueReturn:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type d'alerte non reporté par un opérateur: " + string(req.Reason)})
		return
	}

	s.alerts.Report(req.Mabic, req.Reason, req.Severity, req.Message)
	s.publishAlerts()
	c.JSON(http.StatusCreated, gin.H{"message": "Alerte enregistrée"})
}

// GetStationMetrics returns the monitor's counter snapshot.
func (s *Server) GetStationMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

// rejectMovement maps ledger failures to HTTP responses and records the
// rejection.
func (s *Server) rejectMovement(c *gin.Context, req MovementRequest, err error) {
	s.monitor.Increment("rejections")

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		if s.collector != nil {
			s.collector.RecordRejection("not_found")
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "NOT_FOUND"})
	case errors.Is(err, ledger.ErrInvalidQuantity):
		if s.collector != nil {
			s.collector.RecordRejection("invalid_quantity")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_QUANTITY"})
	case errors.Is(err, ledger.ErrInsufficientStock):
		if s.collector != nil {
			s.collector.RecordRejection("insufficient_stock")
		}
		if item, ok := s.catalog.Lookup(req.Mabic); ok {
			s.alerts.RecordRejectedExit(item.Mabic, req.Quantity, item.Quantity)
			s.publishAlerts()
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "INSUFFICIENT_STOCK"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// afterMovement refreshes derived state once a movement applied: alerts,
// Prometheus gauges and the websocket board.
func (s *Server) afterMovement(result ledger.MovementResult) {
	active := s.alerts.Refresh(s.catalog.All())
	if s.collector != nil {
		s.collector.RecordMovement(result.Movement)
		s.collector.UpdateAlerts(active)
	}
	s.hub.BroadcastAlerts(active)
}

// publishAlerts pushes the current active set to connected screens.
func (s *Server) publishAlerts() {
	active := s.alerts.Active()
	if s.collector != nil {
		s.collector.UpdateAlerts(active)
	}
	s.hub.BroadcastAlerts(active)
}
