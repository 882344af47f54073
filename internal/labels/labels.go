// Package labels builds the printable QR label payload emitted after each
// movement. Rendering and printing are handled by the label station; the
// core only supplies the payload.
package labels

import "outillage/internal/models"

// Operation names on the printed label.
const (
	OperationEntry = "ENTREE"
	OperationExit  = "SORTIE"
)

// Payload is the data encoded into the QR label.
type Payload struct {
	Mabic     string `json:"mabic"`
	Reference string `json:"reference"`
	Quantity  int    `json:"quantite"`
	Date      string `json:"date"`
	Operation string `json:"operation"`
}

// FromMovement builds the label payload for an applied movement.
func FromMovement(item models.ItemRecord, m models.Movement) Payload {
	operation := OperationEntry
	if m.Kind == models.MovementOut {
		operation = OperationExit
	}
	return Payload{
		Mabic:     item.Mabic,
		Reference: item.Reference,
		Quantity:  m.QuantityDelta,
		Date:      m.Timestamp.Format("02/01/2006"),
		Operation: operation,
	}
}
