package game

import "testing"

func TestSynergyTable(t *testing.T) {
	tests := []struct {
		tier  Tier
		other Tier
		want  int
	}{
		{TierRed, TierNone, 0},
		{TierRed, TierRed, 1},
		{TierRed, TierPurple, 1},
		{TierOrange, TierRed, 1},
		{TierOrange, TierYellow, 2},
		{TierOrange, TierPurple, 2},
		{TierYellow, TierOrange, 2},
		{TierYellow, TierRed, 4},
		{TierYellow, TierGreen, 4},
		{TierGreen, TierRed, 4},
		{TierGreen, TierPurple, 4},
		{TierBlue, TierGreen, 4},
		{TierBlue, TierYellow, 4},
		{TierBlue, TierRed, 8},
		{TierBlue, TierPurple, 8},
		{TierPurple, TierBlue, 8},
		{TierPurple, TierGreen, 16},
		{TierPurple, TierPurple, 16},
	}
	for _, tc := range tests {
		got := Synergy(tc.tier, tc.other)
		if got != tc.want {
			t.Fatalf("Synergy(%s, %s) = %d, want %d", tc.tier, tc.other, got, tc.want)
		}
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range []Tier{TierRed, TierOrange, TierYellow, TierGreen, TierBlue, TierPurple} {
		if got := ParseTier(tier.String()); got != tier {
			t.Fatalf("ParseTier(%q) = %v, want %v", tier.String(), got, tier)
		}
	}
	if got := ParseTier("mauve"); got != TierNone {
		t.Fatalf("ParseTier(unknown) = %v, want TierNone", got)
	}
}
