package farmstand

import "sort"

// Cart is the client-local shopping cart: a product-id to quantity map. It is
// never persisted server-side; checkout clears it without transmitting an
// order anywhere.
type Cart struct {
	items map[string]int
}

// CartLine is one cart entry resolved against a catalog.
type CartLine struct {
	Product  Product
	Quantity int
	Subtotal float64
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{items: make(map[string]int)}
}

// Add increments the quantity for a product id.
func (c *Cart) Add(productID string) {
	c.items[productID]++
}

// Remove decrements the quantity for a product id, dropping the entry when it
// reaches zero. Removing an absent id is a no-op.
func (c *Cart) Remove(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	c.items[productID]--
	if c.items[productID] <= 0 {
		delete(c.items, productID)
	}
}

// Quantity returns the quantity for a product id, zero if absent.
func (c *Cart) Quantity(productID string) int {
	return c.items[productID]
}

// Count returns the total number of units across all entries.
func (c *Cart) Count() int {
	count := 0
	for _, qty := range c.items {
		count += qty
	}
	return count
}

// Lines resolves the cart against a catalog, in stable product-id order.
// Entries whose id is missing from the catalog are skipped.
func (c *Cart) Lines(catalog []Product) []CartLine {
	byID := make(map[string]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		if _, ok := byID[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	lines := make([]CartLine, 0, len(ids))
	for _, id := range ids {
		p := byID[id]
		qty := c.items[id]
		lines = append(lines, CartLine{Product: p, Quantity: qty, Subtotal: p.Price * float64(qty)})
	}
	return lines
}

// Total returns the cart total resolved against a catalog.
func (c *Cart) Total(catalog []Product) float64 {
	total := 0.0
	for _, line := range c.Lines(catalog) {
		total += line.Subtotal
	}
	return total
}

// Empty reports whether the cart has no entries.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Checkout returns the resolved lines and clears the cart. Checking out an
// empty cart returns nil and leaves the cart unchanged.
func (c *Cart) Checkout(catalog []Product) []CartLine {
	if c.Empty() {
		return nil
	}
	lines := c.Lines(catalog)
	c.items = make(map[string]int)
	return lines
}
