package pricing

import (
	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
)

// ProductFromModel maps a persisted product row (with preloaded rules) into
// the engine's snapshot type.
func ProductFromModel(m models.Product) Product {
	product := Product{
		ProductID: m.ProductID,
		Name:      m.Name,
		BasePrice: m.BasePrice,
	}
	for _, rule := range m.TierPrices {
		product.TierPrices = append(product.TierPrices, TierPriceRule{
			ProductID:    rule.ProductID,
			Tier:         rule.Tier,
			DiscountRate: rule.DiscountRate,
			MinQty:       rule.MinQty,
		})
	}
	for _, rule := range m.GroupPrices {
		product.GroupPrices = append(product.GroupPrices, GroupPriceRule{
			ProductID:    rule.ProductID,
			Group:        rule.Group,
			DiscountRate: rule.DiscountRate,
			MinQty:       rule.MinQty,
		})
	}
	return product
}

// CustomerFromModel maps a persisted customer row (with preloaded loyalty
// rules) into the engine's snapshot type.
func CustomerFromModel(m models.Customer) Customer {
	customer := Customer{
		CustomerID: m.CustomerID,
		Name:       m.Name,
		Tier:       m.Tier,
		Groups:     m.GroupEnums(),
	}
	for _, rule := range m.LoyaltyPrices {
		customer.LoyaltyPrices = append(customer.LoyaltyPrices, LoyaltyPriceRule{
			CustomerID:   rule.CustomerID,
			ProductID:    rule.ProductID,
			DiscountRate: rule.DiscountRate,
			MinQty:       rule.MinQty,
		})
	}
	return customer
}

// SnapshotFromModels materializes the read-only lookups one calculation runs
// against. Callers hand the result to the engine and discard it afterwards.
func SnapshotFromModels(products []models.Product, customers []models.Customer) (*Catalog, *Directory) {
	catalogEntries := make([]Product, 0, len(products))
	for _, m := range products {
		catalogEntries = append(catalogEntries, ProductFromModel(m))
	}
	directoryEntries := make([]Customer, 0, len(customers))
	for _, m := range customers {
		directoryEntries = append(directoryEntries, CustomerFromModel(m))
	}
	return NewCatalog(catalogEntries), NewDirectory(directoryEntries)
}
