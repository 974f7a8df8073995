package application

import "github.com/pixelframe/shop/internal/catalog"

// ProductCatalog is the price authority for order totals.
type ProductCatalog interface {
	Get(id string) (catalog.Product, bool)
}
