package catalog

// Product is a catalog entry. Prices are integer minor currency units
// (cents) so totals never touch floating point.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price"`
	Image       string `json:"image"`
}

// Catalog is a read-only product listing built once at startup. It is safe
// for concurrent use because it is never mutated after New returns.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

func New(products []Product) *Catalog {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// List returns the products in catalog order. The slice is a copy.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Len() int { return len(c.products) }
