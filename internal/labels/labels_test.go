package labels

import (
	"testing"
	"time"

	"outillage/internal/models"
)

func TestFromMovement(t *testing.T) {
	item := models.ItemRecord{Mabic: "MAB001", Reference: "REF-2024-001"}
	when := time.Date(2024, 7, 8, 14, 30, 0, 0, time.UTC)

	exit := models.Movement{Kind: models.MovementOut, QuantityDelta: 3, Timestamp: when}
	p := FromMovement(item, exit)

	if p.Operation != OperationExit {
		t.Errorf("expected %s, got %s", OperationExit, p.Operation)
	}
	if p.Date != "08/07/2024" {
		t.Errorf("expected day-first date, got %s", p.Date)
	}
	if p.Quantity != 3 || p.Mabic != "MAB001" || p.Reference != "REF-2024-001" {
		t.Errorf("unexpected payload: %+v", p)
	}

	entry := models.Movement{Kind: models.MovementIn, QuantityDelta: 5, Timestamp: when}
	if got := FromMovement(item, entry).Operation; got != OperationEntry {
		t.Errorf("expected %s, got %s", OperationEntry, got)
	}
}
