// Package fixtures installs the demo catalog and customer directory used by
// local development and the sample-data endpoint.
package fixtures

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/pricing-engine-backend/internal/customers"
	"github.com/angelmondragon/pricing-engine-backend/internal/pricing"
	"github.com/angelmondragon/pricing-engine-backend/internal/products"
	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
)

// Summary reports what an install run created. Entities that already existed
// are counted as skipped, not failures.
type Summary struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Rules     int `json:"rules"`
	Skipped   int `json:"skipped"`
}

// Seeder installs fixture data through the regular services so the same
// validation applies as on the API surface.
type Seeder struct {
	products  products.Service
	customers customers.Service
	logg      *logger.Logger
}

// NewSeeder builds a seeder over the catalog and directory services.
func NewSeeder(productsSvc products.Service, customersSvc customers.Service, logg *logger.Logger) *Seeder {
	return &Seeder{products: productsSvc, customers: customersSvc, logg: logg}
}

type productFixture struct {
	id         int
	name       string
	basePrice  string
	tierRules  []products.AddTierPriceInput
	groupRules []products.AddGroupPriceInput
}

type customerFixture struct {
	id           int
	name         string
	tier         enums.Tier
	groups       []string
	loyaltyRules []customers.AddLoyaltyPriceInput
}

func rate(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func productFixtures() []productFixture {
	return []productFixture{
		{
			id:        1,
			name:      "Laptop",
			basePrice: "350000",
			tierRules: []products.AddTierPriceInput{
				{Tier: enums.TierGold, DiscountRate: rate("0.15"), MinQty: 4},
				{Tier: enums.TierSilver, DiscountRate: rate("0.05"), MinQty: 5},
				{Tier: enums.TierPlatinum, DiscountRate: rate("0.40"), MinQty: 2},
			},
			groupRules: []products.AddGroupPriceInput{
				{Group: enums.GroupRegular, DiscountRate: rate("0.20"), MinQty: 5},
				{Group: enums.GroupBulk, DiscountRate: rate("0.10"), MinQty: 10},
				{Group: enums.GroupVIP, DiscountRate: rate("0.50"), MinQty: 2},
			},
		},
		{id: 2, name: "Smartphone", basePrice: "200000"},
		{id: 3, name: "Tablet", basePrice: "150000"},
	}
}

func customerFixtures() []customerFixture {
	return []customerFixture{
		{
			id:     1,
			name:   "Alice",
			tier:   enums.TierGold,
			groups: []string{"BULK", "VIP"},
			loyaltyRules: []customers.AddLoyaltyPriceInput{
				{ProductID: 2, DiscountRate: rate("0.20"), MinQty: 5},
				{ProductID: 1, DiscountRate: rate("0.10"), MinQty: 10},
				{ProductID: 3, DiscountRate: rate("0.50"), MinQty: 2},
			},
		},
		{id: 2, name: "Bob", tier: enums.TierSilver, groups: []string{"BULK"}},
		{id: 3, name: "Charlie", tier: enums.TierPlatinum, groups: []string{"VIP"}},
	}
}

// DemoOrders returns a batch exercising every resolution outcome, including
// a missing-product order.
func DemoOrders() []pricing.OrderInput {
	return []pricing.OrderInput{
		{CustomerID: 1, ProductID: 1, Quantity: 5},
		{CustomerID: 1, ProductID: 2, Quantity: 5},
		{CustomerID: 2, ProductID: 1, Quantity: 1},
		{CustomerID: 2, ProductID: 3, Quantity: 10},
		{CustomerID: 3, ProductID: 1, Quantity: 2},
		{CustomerID: 1, ProductID: 999, Quantity: 1},
	}
}

// Install seeds the demo dataset. Individual failures are collected and the
// rest of the dataset still installs; conflicts with already-present rows are
// skipped silently so the install is rerunnable.
func (s *Seeder) Install(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	var errs error

	for _, fixture := range productFixtures() {
		_, err := s.products.CreateProduct(ctx, products.CreateProductInput{
			ProductID: fixture.id,
			Name:      fixture.name,
			BasePrice: rate(fixture.basePrice),
		})
		switch {
		case err == nil:
			summary.Products++
		case pkgerrors.CodeOf(err) == pkgerrors.CodeConflict:
			summary.Skipped++
		default:
			errs = multierr.Append(errs, err)
			continue
		}

		for _, rule := range fixture.tierRules {
			_, err := s.products.AddTierPrice(ctx, fixture.id, rule)
			summary.apply(&errs, err)
		}
		for _, rule := range fixture.groupRules {
			_, err := s.products.AddGroupPrice(ctx, fixture.id, rule)
			summary.apply(&errs, err)
		}
	}

	for _, fixture := range customerFixtures() {
		_, err := s.customers.CreateCustomer(ctx, customers.CreateCustomerInput{
			CustomerID: fixture.id,
			Name:       fixture.name,
			Tier:       fixture.tier,
			Groups:     fixture.groups,
		})
		switch {
		case err == nil:
			summary.Customers++
		case pkgerrors.CodeOf(err) == pkgerrors.CodeConflict:
			summary.Skipped++
		default:
			errs = multierr.Append(errs, err)
			continue
		}

		for _, rule := range fixture.loyaltyRules {
			_, err := s.customers.AddLoyaltyPrice(ctx, fixture.id, rule)
			summary.apply(&errs, err)
		}
	}

	if errs != nil {
		return summary, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "fixtures: install incomplete")
	}
	s.logg.Info(ctx, "fixtures: sample data installed")
	return summary, nil
}

func (s *Summary) apply(errs *error, err error) {
	switch {
	case err == nil:
		s.Rules++
	case pkgerrors.CodeOf(err) == pkgerrors.CodeConflict:
		s.Skipped++
	default:
		*errs = multierr.Append(*errs, err)
	}
}
