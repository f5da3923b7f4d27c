package enums

import (
	"fmt"
	"strings"
)

// Tier represents a customer's rank. Every customer holds exactly one.
type Tier string

const (
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

var validTiers = []Tier{
	TierSilver,
	TierGold,
	TierPlatinum,
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Tier.
func (t Tier) IsValid() bool {
	for _, candidate := range validTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTier converts raw input into a Tier. Matching is case-insensitive so
// callers can accept "Gold" or "gold" at the boundary; the stored value is
// always canonical upper-case.
func ParseTier(value string) (Tier, error) {
	normalized := Tier(strings.ToUpper(strings.TrimSpace(value)))
	for _, candidate := range validTiers {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tier %q", value)
}
