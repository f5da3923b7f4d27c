package enums

import (
	"fmt"
	"strings"
)

// Group represents a non-exclusive customer segment. A customer may belong to
// zero, one, or several groups at once.
type Group string

const (
	GroupRegular Group = "REGULAR"
	GroupBulk    Group = "BULK"
	GroupVIP     Group = "VIP"
)

var validGroups = []Group{
	GroupRegular,
	GroupBulk,
	GroupVIP,
}

// String implements fmt.Stringer.
func (g Group) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Group.
func (g Group) IsValid() bool {
	for _, candidate := range validGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGroup converts raw input into a Group, case-insensitively.
func ParseGroup(value string) (Group, error) {
	normalized := Group(strings.ToUpper(strings.TrimSpace(value)))
	for _, candidate := range validGroups {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group %q", value)
}

// ParseGroups converts a list of raw values, rejecting duplicates.
func ParseGroups(values []string) ([]Group, error) {
	groups := make([]Group, 0, len(values))
	seen := map[Group]bool{}
	for _, value := range values {
		group, err := ParseGroup(value)
		if err != nil {
			return nil, err
		}
		if seen[group] {
			return nil, fmt.Errorf("duplicate group %q", value)
		}
		seen[group] = true
		groups = append(groups, group)
	}
	return groups, nil
}
