package game

// Tier classifies a company for synergy purposes. Tiers are ordered from
// TierRed (cheapest companies) to TierPurple. TierNone marks an absent
// partner.
type Tier int

const (
	TierNone Tier = iota
	TierRed
	TierOrange
	TierYellow
	TierGreen
	TierBlue
	TierPurple
)

var tierNames = map[Tier]string{
	TierNone:   "none",
	TierRed:    "red",
	TierOrange: "orange",
	TierYellow: "yellow",
	TierGreen:  "green",
	TierBlue:   "blue",
	TierPurple: "purple",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTier maps a tier name back to its Tier. Unknown names yield TierNone.
func ParseTier(name string) Tier {
	for t, n := range tierNames {
		if n == name {
			return t
		}
	}
	return TierNone
}

// Synergy returns the income bonus for a company of the given tier paired
// with a partner of tier other. The table is not a distance formula: the
// red/yellow pairing intentionally falls through to yellow's default.
func Synergy(tier, other Tier) int {
	if other == TierNone {
		return 0
	}
	switch tier {
	case TierRed:
		return 1
	case TierOrange:
		if other == TierRed {
			return 1
		}
		return 2
	case TierYellow:
		if other == TierOrange {
			return 2
		}
		return 4
	case TierGreen:
		return 4
	case TierBlue:
		if other == TierGreen || other == TierYellow {
			return 4
		}
		return 8
	case TierPurple:
		if other == TierBlue {
			return 8
		}
		return 16
	default:
		return 0
	}
}
