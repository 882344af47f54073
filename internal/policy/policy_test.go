package policy

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		threshold int
		want      Tier
	}{
		{"well above threshold", 15, 5, TierNormal},
		{"just above low band", 8, 5, TierNormal},
		{"inside low band", 7, 5, TierWarning},
		{"at threshold", 5, 5, TierCritical},
		{"below threshold", 2, 5, TierCritical},
		{"zero quantity", 0, 5, TierCritical},
		{"no threshold configured", 1, 0, TierNormal},
		{"no threshold but empty", 0, 0, TierCritical},
		{"odd threshold low band", 4, 3, TierWarning},
		{"odd threshold above band", 5, 3, TierNormal},
	}

	for _, tc := range cases {
		got := Classify(tc.quantity, tc.threshold)
		if got != tc.want {
			t.Errorf("%s: Classify(%d, %d) = %q, want %q",
				tc.name, tc.quantity, tc.threshold, got, tc.want)
		}
	}
}

// Raising quantity while holding the threshold fixed must never make
// the tier more severe.
func TestClassifyMonotonic(t *testing.T) {
	rank := map[Tier]int{TierNormal: 0, TierWarning: 1, TierCritical: 2}

	for threshold := 0; threshold <= 10; threshold++ {
		prev := Classify(0, threshold)
		for quantity := 1; quantity <= 30; quantity++ {
			cur := Classify(quantity, threshold)
			if rank[cur] > rank[prev] {
				t.Fatalf("severity increased from %q to %q at quantity=%d threshold=%d",
					prev, cur, quantity, threshold)
			}
			prev = cur
		}
	}
}

func TestWouldBeLowAfter(t *testing.T) {
	// Stock 15, threshold 5: taking 5 leaves 10, still normal.
	if WouldBeLowAfter(15, 5, 5) {
		t.Error("expected no warning when 10 remain against threshold 5")
	}
	// Taking 10 leaves 0, critical.
	if !WouldBeLowAfter(15, 10, 5) {
		t.Error("expected warning when stock would be emptied")
	}
	// Taking 8 leaves 7, inside the low band.
	if !WouldBeLowAfter(15, 8, 5) {
		t.Error("expected warning inside the low band")
	}
}
