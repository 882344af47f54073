package alerts

import (
	"testing"

	"outillage/internal/models"

	"github.com/stretchr/testify/assert"
)

func snapshot(quantity int) []models.ItemRecord {
	return []models.ItemRecord{
		{Mabic: "MAB003", Designation: "Marteau pneumatique", Quantity: quantity, ReorderAt: 5},
	}
}

func TestRefreshRaisesAndResolves(t *testing.T) {
	a := New(nil)

	active := a.Refresh(snapshot(2))
	assert.Len(t, active, 1)
	assert.Equal(t, models.ReasonLowStock, active[0].Reason)
	assert.Equal(t, models.SeverityCritical, active[0].Severity)
	assert.Equal(t, models.AlertActive, active[0].Status)

	// Stock recovers: the alert moves to resolved, it is not deleted.
	active = a.Refresh(snapshot(20))
	assert.Empty(t, active)
	resolved := a.Resolved()
	assert.Len(t, resolved, 1)
	assert.Equal(t, "MAB003", resolved[0].Mabic)
}

func TestRefreshWarningTier(t *testing.T) {
	a := New(nil)

	// 7 of threshold 5 sits in the 1.5x low band.
	active := a.Refresh(snapshot(7))
	assert.Len(t, active, 1)
	assert.Equal(t, models.SeverityWarning, active[0].Severity)
}

func TestRepeatedConditionDoesNotDuplicate(t *testing.T) {
	a := New(nil)

	first := a.Refresh(snapshot(3))
	assert.Len(t, first, 1)
	id := first[0].AlertID

	second := a.Refresh(snapshot(2))
	assert.Len(t, second, 1)
	assert.Equal(t, id, second[0].AlertID, "same key updates in place")
	assert.Equal(t, models.SeverityCritical, second[0].Severity)
}

func TestReactivationAfterResolve(t *testing.T) {
	a := New(nil)

	a.Refresh(snapshot(2))
	a.Refresh(snapshot(20))
	active := a.Refresh(snapshot(1))

	assert.Len(t, active, 1)
	assert.Equal(t, models.AlertActive, active[0].Status)
	assert.Empty(t, a.Resolved())
}

func TestAcknowledge(t *testing.T) {
	a := New(nil)
	a.Refresh(snapshot(2))

	assert.True(t, a.Acknowledge("MAB003", models.ReasonLowStock))
	assert.Empty(t, a.Active())
	assert.Len(t, a.Resolved(), 1)

	// Second acknowledge and unknown keys are no-ops.
	assert.False(t, a.Acknowledge("MAB003", models.ReasonLowStock))
	assert.False(t, a.Acknowledge("MAB999", models.ReasonLowStock))
}

func TestRecordRejectedExit(t *testing.T) {
	a := New(nil)

	a.RecordRejectedExit("MAB001", 999, 15)
	active := a.Active()
	assert.Len(t, active, 1)
	assert.Equal(t, models.ReasonOutOfStockAttempt, active[0].Reason)
	assert.Contains(t, active[0].Message, "999")
}

func TestReportExternalConditions(t *testing.T) {
	a := New(nil)

	a.Report("MAB005", models.ReasonCertificationExpired, models.SeverityCritical,
		"Certification expirée: Équipement de levage (MAB005)")
	a.Report("MAB004", models.ReasonOverdueReturn, models.SeverityWarning,
		"Retour en retard: Perceuse sans fil (MAB004)")

	active := a.Active()
	assert.Len(t, active, 2)
	assert.Equal(t, models.ReasonCertificationExpired, active[0].Reason)

	// Stock refreshes never touch reported alerts.
	a.Refresh(nil)
	assert.Len(t, a.Active(), 2)
}

type countingStore struct{ saves int }

func (s *countingStore) SaveAlert(models.Alert) error {
	s.saves++
	return nil
}

func TestTransitionsReachStore(t *testing.T) {
	store := &countingStore{}
	a := New(store)

	a.Refresh(snapshot(2))  // raise
	a.Refresh(snapshot(20)) // resolve
	assert.Equal(t, 2, store.saves)
}
