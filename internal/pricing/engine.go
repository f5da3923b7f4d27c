package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
)

// Product is a catalog snapshot entry carrying its own rule sets.
type Product struct {
	ProductID   int
	Name        string
	BasePrice   decimal.Decimal
	TierPrices  []TierPriceRule
	GroupPrices []GroupPriceRule
}

// Customer is a directory snapshot entry carrying its loyalty rules.
type Customer struct {
	CustomerID    int
	Name          string
	Tier          enums.Tier
	Groups        []enums.Group
	LoyaltyPrices []LoyaltyPriceRule
}

// TierPriceRule applies to orders of a product by customers of one tier.
type TierPriceRule struct {
	ProductID    int
	Tier         enums.Tier
	DiscountRate decimal.Decimal
	MinQty       int
}

// GroupPriceRule applies to orders of a product by members of one group.
type GroupPriceRule struct {
	ProductID    int
	Group        enums.Group
	DiscountRate decimal.Decimal
	MinQty       int
}

// LoyaltyPriceRule applies to orders of one product by one specific customer.
type LoyaltyPriceRule struct {
	CustomerID   int
	ProductID    int
	DiscountRate decimal.Decimal
	MinQty       int
}

// Order is the unit of pricing work.
type Order struct {
	CustomerID int
	ProductID  int
	Quantity   int
}

// Catalog is a read-only product lookup for the duration of one calculation.
type Catalog struct {
	byID map[int]*Product
}

func NewCatalog(products []Product) *Catalog {
	byID := make(map[int]*Product, len(products))
	for i := range products {
		byID[products[i].ProductID] = &products[i]
	}
	return &Catalog{byID: byID}
}

func (c *Catalog) Product(id int) (*Product, bool) {
	if c == nil {
		return nil, false
	}
	product, ok := c.byID[id]
	return product, ok
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}

// Directory is a read-only customer lookup for the duration of one calculation.
type Directory struct {
	byID map[int]*Customer
}

func NewDirectory(customers []Customer) *Directory {
	byID := make(map[int]*Customer, len(customers))
	for i := range customers {
		byID[customers[i].CustomerID] = &customers[i]
	}
	return &Directory{byID: byID}
}

func (d *Directory) Customer(id int) (*Customer, bool) {
	if d == nil {
		return nil, false
	}
	customer, ok := d.byID[id]
	return customer, ok
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byID)
}

// GroupPrice is one qualifying group-rule price together with the group that
// produced it.
type GroupPrice struct {
	Group enums.Group
	Price decimal.Decimal
}

// CandidateSet holds every price an order qualifies for. LoyaltyPrice and
// TierPrice are zero when no rule of that kind applies; GroupPrices holds one
// entry per qualifying group rule because group membership is non-exclusive.
type CandidateSet struct {
	BasePrice    decimal.Decimal
	LoyaltyPrice decimal.Decimal
	TierPrice    decimal.Decimal
	GroupPrices  []GroupPrice
}

// Candidate is one (provenance, price) pair under consideration.
type Candidate struct {
	Type  enums.PriceType
	Price decimal.Decimal
}

// Candidates flattens the set into selection order: loyalty, tier, group
// entries as discovered, then the base price. The base price is always
// present so the list is never empty. The ordering is the tie-break policy:
// on equal prices the more personalized discount wins.
func (s CandidateSet) Candidates() []Candidate {
	candidates := make([]Candidate, 0, 3+len(s.GroupPrices))
	if s.LoyaltyPrice.IsPositive() {
		candidates = append(candidates, Candidate{Type: enums.PriceTypeCustomer, Price: s.LoyaltyPrice})
	}
	if s.TierPrice.IsPositive() {
		candidates = append(candidates, Candidate{Type: enums.PriceTypeTier, Price: s.TierPrice})
	}
	for _, group := range s.GroupPrices {
		candidates = append(candidates, Candidate{Type: enums.PriceTypeGroup, Price: group.Price})
	}
	candidates = append(candidates, Candidate{Type: enums.PriceTypeNormal, Price: s.BasePrice})
	return candidates
}

// Result is the outcome for one order. ProductID carries the formatted
// reference ("P" + zero-padded id), not the raw numeric id.
type Result struct {
	ProductID string
	Price     decimal.Decimal
	PriceType enums.PriceType
}

// NewMissingProduct reports an order referencing a product absent from the
// supplied catalog.
func NewMissingProduct(productID int) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", productID)).
		WithReason(pkgerrors.ReasonMissingProduct)
}

// NewMissingCustomer reports an order referencing a customer absent from the
// supplied directory.
func NewMissingCustomer(customerID int) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("customer %d not found", customerID)).
		WithReason(pkgerrors.ReasonMissingCustomer)
}

// FormatProductID renders the order's product id for output: "P" plus the id
// zero-padded to at least three digits (7 -> "P007", 1000 -> "P1000").
func FormatProductID(id int) string {
	return fmt.Sprintf("P%03d", id)
}

var one = decimal.NewFromInt(1)

func discounted(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(one.Sub(rate))
}

// ResolveCandidates gathers every discount price the order qualifies for plus
// the base price. Categories are evaluated independently; nothing
// short-circuits across them. Prices are per unit: quantity gates rules but
// never scales the result.
func ResolveCandidates(order Order, catalog *Catalog, directory *Directory) (*CandidateSet, error) {
	product, ok := catalog.Product(order.ProductID)
	if !ok {
		return nil, NewMissingProduct(order.ProductID)
	}

	customer, ok := directory.Customer(order.CustomerID)
	if !ok {
		return nil, NewMissingCustomer(order.CustomerID)
	}

	set := &CandidateSet{BasePrice: product.BasePrice}

	// Loyalty: first qualifying rule wins; at most one exists per
	// (customer, product) pair by management convention.
	for _, rule := range customer.LoyaltyPrices {
		if rule.CustomerID == order.CustomerID &&
			rule.ProductID == order.ProductID &&
			order.Quantity >= rule.MinQty {
			set.LoyaltyPrice = discounted(product.BasePrice, rule.DiscountRate)
			break
		}
	}

	// Tier: first qualifying rule for the customer's tier wins.
	for _, rule := range product.TierPrices {
		if rule.ProductID == order.ProductID &&
			order.Quantity >= rule.MinQty &&
			customer.Tier == rule.Tier {
			set.TierPrice = discounted(product.BasePrice, rule.DiscountRate)
			break
		}
	}

	// Group: collect ALL qualifying rules, one candidate per group the
	// customer belongs to.
	for _, rule := range product.GroupPrices {
		if rule.ProductID != order.ProductID || order.Quantity < rule.MinQty {
			continue
		}
		for _, group := range customer.Groups {
			if group == rule.Group {
				set.GroupPrices = append(set.GroupPrices, GroupPrice{
					Group: rule.Group,
					Price: discounted(product.BasePrice, rule.DiscountRate),
				})
				break
			}
		}
	}

	return set, nil
}

// SelectBest resolves every order and keeps the numerically lowest candidate
// per order. A failed lookup becomes a per-order ERROR result with price zero
// rather than aborting the batch, so the output always has one entry per
// input order, positionally aligned.
func SelectBest(orders []Order, catalog *Catalog, directory *Directory) []Result {
	results := make([]Result, 0, len(orders))

	for _, order := range orders {
		set, err := ResolveCandidates(order, catalog, directory)
		if err != nil {
			results = append(results, Result{
				ProductID: FormatProductID(order.ProductID),
				Price:     decimal.Zero,
				PriceType: enums.PriceTypeError,
			})
			continue
		}

		candidates := set.Candidates()
		best := candidates[0]
		for _, candidate := range candidates[1:] {
			// Strict less-than keeps the earliest candidate on ties.
			if candidate.Price.LessThan(best.Price) {
				best = candidate
			}
		}

		results = append(results, Result{
			ProductID: FormatProductID(order.ProductID),
			Price:     best.Price,
			PriceType: best.Type,
		})
	}

	return results
}
