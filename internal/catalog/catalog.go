// Package catalog holds the item records of the crib and answers lookups,
// searches and valuation queries. The catalog owns the records; quantities
// are only ever changed through the ledger.
package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"outillage/internal/models"
	"outillage/internal/policy"

	"gopkg.in/yaml.v3"
)

// Catalog maps inventory identifiers to item records. Safe for concurrent
// readers; writes go through SetQuantity.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]*models.ItemRecord
	order []string
}

// Normalize canonicalizes an inventory identifier for lookup: trimmed and
// uppercased, matching how the touchscreen pages treated MABIC input.
func Normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// New builds a catalog from item records, validating each one. Duplicate
// MABICs, empty identifiers and negative quantities or thresholds are
// rejected at construction rather than left to surface at use sites.
func New(items []models.ItemRecord) (*Catalog, error) {
	c := &Catalog{items: make(map[string]*models.ItemRecord)}
	for _, item := range items {
		key := Normalize(item.Mabic)
		if key == "" {
			return nil, fmt.Errorf("catalog: item %q has an empty MABIC", item.Designation)
		}
		if item.Quantity < 0 {
			return nil, fmt.Errorf("catalog: item %s has negative quantity %d", key, item.Quantity)
		}
		if item.ReorderAt < 0 {
			return nil, fmt.Errorf("catalog: item %s has negative threshold %d", key, item.ReorderAt)
		}
		if _, exists := c.items[key]; exists {
			return nil, fmt.Errorf("catalog: duplicate MABIC %s", key)
		}
		record := item
		record.Mabic = key
		c.items[key] = &record
		c.order = append(c.order, key)
	}
	return c, nil
}

// LoadFile reads item records from a YAML seed file and builds a catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var seed struct {
		Items []models.ItemRecord `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return New(seed.Items)
}

// Lookup resolves an identifier to its record. The second return value
// reports presence; a miss is not an error.
func (c *Catalog) Lookup(id string) (models.ItemRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[Normalize(id)]
	if !ok {
		return models.ItemRecord{}, false
	}
	return *item, true
}

// Search returns every record whose MABIC or reference contains the term,
// case-insensitively, in catalog order. A blank term matches nothing: the
// search page renders no results until something is typed.
func (c *Catalog) Search(term string) []models.ItemRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []models.ItemRecord
	for _, key := range c.order {
		item := c.items[key]
		if strings.Contains(strings.ToLower(item.Mabic), term) ||
			strings.Contains(strings.ToLower(item.Reference), term) {
			results = append(results, *item)
		}
	}
	return results
}

// All returns every record in insertion order.
func (c *Catalog) All() []models.ItemRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.ItemRecord, 0, len(c.order))
	for _, key := range c.order {
		items = append(items, *c.items[key])
	}
	return items
}

// Summary aggregates the valuation view: reference count, total quantity,
// total stock value and how many items sit at or below their threshold.
func (c *Catalog) Summary() models.StockSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var s models.StockSummary
	s.References = len(c.order)
	for _, key := range c.order {
		item := c.items[key]
		s.TotalQuantity += item.Quantity
		s.TotalValue += item.TotalValue()
		if policy.Classify(item.Quantity, item.ReorderAt) == policy.TierCritical {
			s.CriticalItems++
		}
	}
	return s
}

// SetQuantity updates an item's quantity and reports whether the item
// exists. Intended to be called by the ledger only, which has already
// validated the new value.
func (c *Catalog) SetQuantity(id string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[Normalize(id)]
	if !ok {
		return false
	}
	item.Quantity = quantity
	return true
}
