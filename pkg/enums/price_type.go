package enums

import "fmt"

// PriceType tags the provenance of a resolved price: the undiscounted base
// price (NORMAL), a tier rule (TIER), a group rule (GROUP), a customer
// loyalty rule (CUSTOMER), or a failed lookup (ERROR).
type PriceType string

const (
	PriceTypeNormal   PriceType = "NORMAL"
	PriceTypeTier     PriceType = "TIER"
	PriceTypeGroup    PriceType = "GROUP"
	PriceTypeCustomer PriceType = "CUSTOMER"
	PriceTypeError    PriceType = "ERROR"
)

var validPriceTypes = []PriceType{
	PriceTypeNormal,
	PriceTypeTier,
	PriceTypeGroup,
	PriceTypeCustomer,
	PriceTypeError,
}

// String implements fmt.Stringer.
func (p PriceType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceType.
func (p PriceType) IsValid() bool {
	for _, candidate := range validPriceTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceType converts raw input into a PriceType.
func ParsePriceType(value string) (PriceType, error) {
	for _, candidate := range validPriceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price type %q", value)
}
