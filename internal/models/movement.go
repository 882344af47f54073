package models

import "time"

// Movement records a single stock-in or stock-out event. Movements are
// immutable once created and kept in an append-only log by the ledger.
type Movement struct {
	ID                uint         `gorm:"primary_key" json:"-"`
	MovementID        string       `gorm:"unique_index" json:"id"`
	Mabic             string       `gorm:"index" json:"mabic"`
	Kind              MovementKind `json:"kind"`
	QuantityDelta     int          `json:"quantite"`
	PriorQuantity     int          `json:"stock_avant"`
	ResultingQuantity int          `json:"stock_apres"`
	Timestamp         time.Time    `json:"timestamp"`
	CreatedAt         time.Time    `json:"-"`
}

// MovementKind is the direction of a movement.
type MovementKind string

const (
	MovementIn  MovementKind = "IN"
	MovementOut MovementKind = "OUT"
)
