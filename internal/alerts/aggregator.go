// Package alerts derives the active alert set of the crib. Stock alerts
// are rebuilt from catalog state after every movement; other conditions
// (maintenance, certification, overdue returns) are reported by external
// actors and merged into the same keyed set.
package alerts

import (
	"fmt"
	"log"
	"sync"
	"time"

	"outillage/internal/models"
	"outillage/internal/policy"

	"github.com/google/uuid"
)

// AlertStore persists alert transitions. Save failures are logged and do
// not block the aggregator.
type AlertStore interface {
	SaveAlert(a models.Alert) error
}

type alertKey struct {
	mabic  string
	reason models.AlertReason
}

// Aggregator owns the derived alerts, keyed by (mabic, reason). Only one
// active alert per key exists at a time; a repeated condition refreshes
// the existing alert instead of duplicating it.
type Aggregator struct {
	mu     sync.Mutex
	alerts map[alertKey]*models.Alert
	order  []alertKey
	store  AlertStore
}

// New creates an aggregator. store may be nil.
func New(store AlertStore) *Aggregator {
	return &Aggregator{
		alerts: make(map[alertKey]*models.Alert),
		store:  store,
	}
}

// Refresh rebuilds the stock alerts from a catalog snapshot. Items in a
// non-normal tier get an active LOW_STOCK alert; items back to normal have
// their existing alert flipped to RESOLVED so the resolved history stays
// visible. Returns the active set after the rebuild.
func (a *Aggregator) Refresh(snapshot []models.ItemRecord) []models.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, item := range snapshot {
		key := alertKey{mabic: item.Mabic, reason: models.ReasonLowStock}
		tier := policy.Classify(item.Quantity, item.ReorderAt)

		if tier == policy.TierNormal {
			if existing, ok := a.alerts[key]; ok && existing.Status == models.AlertActive {
				existing.Status = models.AlertResolved
				a.persist(*existing)
			}
			continue
		}

		severity := models.SeverityWarning
		if tier == policy.TierCritical {
			severity = models.SeverityCritical
		}
		message := fmt.Sprintf("Stock critique: %s (%s) - Quantité: %d / Seuil: %d",
			item.Designation, item.Mabic, item.Quantity, item.ReorderAt)
		if tier == policy.TierWarning {
			message = fmt.Sprintf("Stock faible: %s (%s) - Quantité: %d / Seuil: %d",
				item.Designation, item.Mabic, item.Quantity, item.ReorderAt)
		}
		a.upsert(key, severity, message)
	}

	return a.activeLocked()
}

// RecordRejectedExit raises an OUT_OF_STOCK_ATTEMPT alert for an exit the
// ledger refused, so the rejection leaves a visible trace.
func (a *Aggregator) RecordRejectedExit(mabic string, requested, available int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := alertKey{mabic: mabic, reason: models.ReasonOutOfStockAttempt}
	a.upsert(key, models.SeverityWarning,
		fmt.Sprintf("Sortie refusée: %s - Demandé: %d, Disponible: %d", mabic, requested, available))
}

// Report merges an externally observed condition (maintenance due,
// certification expired, overdue return) into the alert set.
func (a *Aggregator) Report(mabic string, reason models.AlertReason, severity models.AlertSeverity, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.upsert(alertKey{mabic: mabic, reason: reason}, severity, message)
}

// Acknowledge marks the matching active alert resolved. No-op when no
// active alert exists for the key.
func (a *Aggregator) Acknowledge(mabic string, reason models.AlertReason) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	alert, ok := a.alerts[alertKey{mabic: mabic, reason: reason}]
	if !ok || alert.Status != models.AlertActive {
		return false
	}
	alert.Status = models.AlertResolved
	a.persist(*alert)
	return true
}

// Active returns the active alerts in first-raised order.
func (a *Aggregator) Active() []models.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeLocked()
}

// Resolved returns the resolved alerts in first-raised order.
func (a *Aggregator) Resolved() []models.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []models.Alert
	for _, key := range a.order {
		if alert := a.alerts[key]; alert.Status == models.AlertResolved {
			out = append(out, *alert)
		}
	}
	return out
}

func (a *Aggregator) activeLocked() []models.Alert {
	var out []models.Alert
	for _, key := range a.order {
		if alert := a.alerts[key]; alert.Status == models.AlertActive {
			out = append(out, *alert)
		}
	}
	return out
}

func (a *Aggregator) upsert(key alertKey, severity models.AlertSeverity, message string) {
	if existing, ok := a.alerts[key]; ok {
		existing.Severity = severity
		existing.Message = message
		existing.CreatedAt = time.Now()
		existing.Status = models.AlertActive
		a.persist(*existing)
		return
	}

	alert := &models.Alert{
		AlertID:   uuid.New().String(),
		Mabic:     key.mabic,
		Severity:  severity,
		Reason:    key.reason,
		Message:   message,
		Status:    models.AlertActive,
		CreatedAt: time.Now(),
	}
	a.alerts[key] = alert
	a.order = append(a.order, key)
	a.persist(*alert)
}

func (a *Aggregator) persist(alert models.Alert) {
	if a.store == nil {
		return
	}
	if err := a.store.SaveAlert(alert); err != nil {
		log.Printf("Failed to persist alert %s: %v", alert.AlertID, err)
	}
}
