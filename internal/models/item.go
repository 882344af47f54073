package models

import "time"

// ItemRecord represents one tool or part tracked by the crib.
// The MABIC is the unique inventory identifier; lookups normalize
// it to uppercase before matching.
type ItemRecord struct {
	ID           uint       `gorm:"primary_key" json:"-" yaml:"-"`
	Mabic        string     `gorm:"unique_index" json:"mabic" yaml:"mabic"`
	Reference    string     `json:"reference" yaml:"reference"`
	Designation  string     `json:"designation" yaml:"designation"`
	Manufacturer string     `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Quantity     int        `json:"quantite" yaml:"quantite"`
	ReorderAt    int        `json:"seuil_min" yaml:"seuil_min"`
	UnitValue    float64    `json:"valeur,omitempty" yaml:"valeur,omitempty"`
	Location     string     `json:"emplacement,omitempty" yaml:"emplacement,omitempty"`
	CreatedAt    time.Time  `json:"-" yaml:"-"`
	UpdatedAt    time.Time  `json:"-" yaml:"-"`
	DeletedAt    *time.Time `json:"-" yaml:"-"`
}

// TotalValue returns the stock valuation of the item.
func (i ItemRecord) TotalValue() float64 {
	return float64(i.Quantity) * i.UnitValue
}

// StockSummary aggregates the valuation view of the whole catalog.
type StockSummary struct {
	References    int     `json:"references"`
	TotalQuantity int     `json:"total_quantite"`
	TotalValue    float64 `json:"valeur_totale"`
	CriticalItems int     `json:"alertes_critiques"`
}
