package catalog

import (
	"testing"

	"outillage/internal/models"

	"github.com/stretchr/testify/assert"
)

func testItems() []models.ItemRecord {
	return []models.ItemRecord{
		{Mabic: "MAB001", Reference: "REF-2024-001", Designation: "Clé dynamométrique 50-250 Nm", Quantity: 15, ReorderAt: 5, UnitValue: 250.00, Location: "A1-B2"},
		{Mabic: "MAB002", Reference: "REF-2024-002", Designation: "Tournevis électrique 18V", Quantity: 8, ReorderAt: 3, UnitValue: 180.00, Location: "A2-C1"},
		{Mabic: "MAB003", Reference: "REF-2024-003", Designation: "Marteau pneumatique", Quantity: 2, ReorderAt: 5, UnitValue: 450.00, Location: "B1-A3"},
	}
}

func TestLookupNormalizesInput(t *testing.T) {
	c, err := New(testItems())
	assert.NoError(t, err)

	item, ok := c.Lookup("  mab001 ")
	assert.True(t, ok)
	assert.Equal(t, "MAB001", item.Mabic)
	assert.Equal(t, 15, item.Quantity)

	_, ok = c.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestSearchMatchesMabicAndReference(t *testing.T) {
	c, err := New(testItems())
	assert.NoError(t, err)

	// Substring of every MABIC.
	results := c.Search("mab")
	assert.Len(t, results, 3)
	// Catalog order is preserved.
	assert.Equal(t, "MAB001", results[0].Mabic)
	assert.Equal(t, "MAB003", results[2].Mabic)

	// Match on reference only.
	results = c.Search("2024-002")
	assert.Len(t, results, 1)
	assert.Equal(t, "MAB002", results[0].Mabic)

	// A blank term never matches everything.
	assert.Empty(t, c.Search(""))
	assert.Empty(t, c.Search("   "))
}

func TestSummary(t *testing.T) {
	c, err := New(testItems())
	assert.NoError(t, err)

	s := c.Summary()
	assert.Equal(t, 3, s.References)
	assert.Equal(t, 25, s.TotalQuantity)
	// 15*250 + 8*180 + 2*450 = 6090
	assert.InDelta(t, 6090.0, s.TotalValue, 0.001)
	// Only MAB003 (2 <= 5) is critical.
	assert.Equal(t, 1, s.CriticalItems)
}

func TestConstructionValidation(t *testing.T) {
	_, err := New([]models.ItemRecord{{Mabic: "", Designation: "sans code"}})
	assert.Error(t, err)

	_, err = New([]models.ItemRecord{{Mabic: "MAB001", Quantity: -1}})
	assert.Error(t, err)

	_, err = New([]models.ItemRecord{{Mabic: "MAB001", ReorderAt: -2}})
	assert.Error(t, err)

	_, err = New([]models.ItemRecord{
		{Mabic: "MAB001", Quantity: 1},
		{Mabic: "mab001", Quantity: 2},
	})
	assert.Error(t, err, "duplicate MABICs differ only by case")
}

func TestSetQuantity(t *testing.T) {
	c, err := New(testItems())
	assert.NoError(t, err)

	assert.True(t, c.SetQuantity("mab001", 42))
	item, _ := c.Lookup("MAB001")
	assert.Equal(t, 42, item.Quantity)

	assert.False(t, c.SetQuantity("MAB999", 1))
}
