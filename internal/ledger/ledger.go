// Package ledger is the single authority for mutating item quantities.
// Every stock movement is validated against the catalog, applied, and
// appended to an in-memory movement log; the system never reaches a
// negative stock and never records a movement that was not applied.
package ledger

import (
	"errors"
	"log"
	"sync"
	"time"

	"outillage/internal/catalog"
	"outillage/internal/models"
	"outillage/internal/policy"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means the identifier does not resolve in the catalog.
	ErrNotFound = errors.New("mabic introuvable")
	// ErrInvalidQuantity means the quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantité invalide")
	// ErrInsufficientStock means an exit asked for more than is on hand.
	ErrInsufficientStock = errors.New("stock insuffisant")
)

// MovementStore persists applied movements. Persistence is a collaborator,
// not a participant: a failed save is logged and never rolls back the
// movement.
type MovementStore interface {
	SaveMovement(m models.Movement) error
	SaveItem(item models.ItemRecord) error
}

// MovementResult is returned after a movement is applied.
type MovementResult struct {
	Item            models.ItemRecord `json:"item"`
	Movement        models.Movement   `json:"movement"`
	LowStockWarning bool              `json:"low_stock_warning"`
}

// Ledger applies stock movements against a catalog. A single mutex
// serializes application so concurrent exits cannot race the
// non-negative-stock check.
type Ledger struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	store   MovementStore
	history []models.Movement
}

// New creates a ledger over a catalog. store may be nil when nothing
// persists movements (tests, dry runs).
func New(c *catalog.Catalog, store MovementStore) *Ledger {
	return &Ledger{catalog: c, store: store}
}

// RecordEntry applies a stock-in movement and returns the updated item
// together with the movement record.
func (l *Ledger) RecordEntry(itemID string, quantity int) (MovementResult, error) {
	return l.apply(itemID, quantity, models.MovementIn)
}

// RecordExit applies a stock-out movement. It fails with
// ErrInsufficientStock when the requested quantity exceeds the stock on
// hand; partial fulfillment is never performed. On success the result
// carries a low-stock warning computed from the new quantity.
func (l *Ledger) RecordExit(itemID string, quantity int) (MovementResult, error) {
	return l.apply(itemID, quantity, models.MovementOut)
}

func (l *Ledger) apply(itemID string, quantity int, kind models.MovementKind) (MovementResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return MovementResult{}, ErrInvalidQuantity
	}

	item, ok := l.catalog.Lookup(itemID)
	if !ok {
		return MovementResult{}, ErrNotFound
	}

	newQuantity := item.Quantity + quantity
	if kind == models.MovementOut {
		if quantity > item.Quantity {
			return MovementResult{}, ErrInsufficientStock
		}
		newQuantity = item.Quantity - quantity
	}

	movement := models.Movement{
		MovementID:        uuid.New().String(),
		Mabic:             item.Mabic,
		Kind:              kind,
		QuantityDelta:     quantity,
		PriorQuantity:     item.Quantity,
		ResultingQuantity: newQuantity,
		Timestamp:         time.Now(),
	}

	l.catalog.SetQuantity(item.Mabic, newQuantity)
	item.Quantity = newQuantity
	l.history = append(l.history, movement)

	if l.store != nil {
		if err := l.store.SaveMovement(movement); err != nil {
			log.Printf("Failed to persist movement %s: %v", movement.MovementID, err)
		}
		if err := l.store.SaveItem(item); err != nil {
			log.Printf("Failed to persist item %s: %v", item.Mabic, err)
		}
	}

	result := MovementResult{Item: item, Movement: movement}
	if kind == models.MovementOut {
		// Same newQuantity as the bound check above, no recomputation.
		result.LowStockWarning = policy.Classify(newQuantity, item.ReorderAt) != policy.TierNormal
	}
	return result, nil
}

// History returns the movement log in chronological order, optionally
// filtered by item. An empty id returns the full log.
func (l *Ledger) History(itemID string) []models.Movement {
	l.mu.Lock()
	defer l.mu.Unlock()

	if itemID == "" {
		out := make([]models.Movement, len(l.history))
		copy(out, l.history)
		return out
	}

	key := catalog.Normalize(itemID)
	var out []models.Movement
	for _, m := range l.history {
		if m.Mabic == key {
			out = append(out, m)
		}
	}
	return out
}
