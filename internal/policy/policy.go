// Package policy classifies stock quantities against per-item reorder
// thresholds. The functions here are pure and shared by every consumer
// that needs a stock status: the ledger, the alert aggregator and the
// stock valuation view.
package policy

// Tier is the severity classification of a quantity.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierWarning  Tier = "faible"
	TierCritical Tier = "critique"
)

// Classify returns the tier for a quantity against a reorder threshold.
// At or below the threshold the item is critical; up to 1.5x the threshold
// it is low. A zero threshold means no policy is configured: the item is
// normal unless it is completely out of stock.
func Classify(quantity, threshold int) Tier {
	if threshold <= 0 {
		if quantity <= 0 {
			return TierCritical
		}
		return TierNormal
	}
	if quantity <= threshold {
		return TierCritical
	}
	if float64(quantity) <= float64(threshold)*1.5 {
		return TierWarning
	}
	return TierNormal
}

// WouldBeLowAfter reports whether removing delta from the current quantity
// would leave the item in a non-normal tier. Used to warn the operator
// before an exit is committed.
func WouldBeLowAfter(current, delta, threshold int) bool {
	return Classify(current-delta, threshold) != TierNormal
}
