package checkout

import "github.com/pixelframe/shop/internal/catalog"

// ProductSource resolves product ids to snapshots for cart lines.
type ProductSource interface {
	Get(id string) (catalog.Product, bool)
}

type CartLine struct {
	Product  catalog.Product
	Quantity int
}

// CartState is the session's cart: an ordered list of lines, owned by one
// checkout session and never shared or persisted. A surviving line always
// has quantity >= 1.
type CartState struct {
	source ProductSource
	lines  []CartLine
}

func NewCartState(source ProductSource) *CartState {
	return &CartState{source: source}
}

// Add puts one unit of the product in the cart, folding into an existing
// line when present. Unknown ids are a silent no-op.
func (c *CartState) Add(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity++
			return
		}
	}
	p, ok := c.source.Get(productID)
	if !ok {
		return
	}
	c.lines = append(c.lines, CartLine{Product: p, Quantity: 1})
}

func (c *CartState) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity adjusts a line's quantity by delta; dropping to zero or below
// removes the line.
func (c *CartState) SetQuantity(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity += delta
			if c.lines[i].Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *CartState) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CartState) TotalCents() int64 {
	var total int64
	for _, l := range c.lines {
		total += int64(l.Quantity) * l.Product.PriceCents
	}
	return total
}

func (c *CartState) Empty() bool { return len(c.lines) == 0 }

func (c *CartState) Clear() { c.lines = nil }
