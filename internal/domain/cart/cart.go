package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/speedparts/storefront/internal/domain/catalog"
	"github.com/speedparts/storefront/internal/domain/shared"
)

// Entry is a reservation of a product in the cart.
// Invariant: 1 <= Quantity <= catalog stock of the product. An entry that
// would drop to quantity 0 is removed, never kept.
type Entry struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the ordered collection of entries, keyed by product ID.
// Insertion order is preserved for display stability.
type Cart struct {
	entries   []Entry
	index     map[string]int
	UpdatedAt time.Time
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		index: make(map[string]int),
	}
}

// Restore rebuilds a cart from persisted entries, resolving them against the
// catalog. Entries for unknown products are dropped and quantities are
// clamped to catalog stock; a prior invariant breach in storage never
// survives the restore.
func Restore(entries []Entry, cat *catalog.Catalog) *Cart {
	c := New()
	for _, e := range entries {
		product, ok := cat.Get(e.ProductID)
		if !ok {
			continue
		}
		qty := e.Quantity
		if qty > product.Stock {
			qty = product.Stock
		}
		if qty <= 0 {
			continue
		}
		if _, exists := c.index[e.ProductID]; exists {
			continue
		}
		c.index[e.ProductID] = len(c.entries)
		c.entries = append(c.entries, Entry{ProductID: e.ProductID, Quantity: qty})
	}
	return c
}

// Add inserts a new entry with quantity 1, or increments an existing one.
// Returns ErrOutOfStock when the product has no catalog stock at all and
// ErrStockExceeded when incrementing would exceed it. The cart is unchanged
// on error.
func (c *Cart) Add(product catalog.Product) error {
	idx, exists := c.index[product.ID]
	if exists {
		if c.entries[idx].Quantity+1 > product.Stock {
			return shared.ErrStockExceeded
		}
		c.entries[idx].Quantity++
		c.touch()
		return nil
	}

	if product.Stock <= 0 {
		return shared.ErrOutOfStock
	}
	c.index[product.ID] = len(c.entries)
	c.entries = append(c.entries, Entry{ProductID: product.ID, Quantity: 1})
	c.touch()
	return nil
}

// SetQuantity sets the entry for the product to the requested quantity,
// clamped to [0, catalog stock]. A clamped value of 0 removes the entry.
// The returned flag reports whether the request exceeded catalog stock and
// was reduced.
func (c *Cart) SetQuantity(product catalog.Product, requested int) (clamped bool) {
	qty := requested
	if qty > product.Stock {
		qty = product.Stock
		clamped = true
	}
	if qty <= 0 {
		c.Remove(product.ID)
		return clamped
	}

	idx, exists := c.index[product.ID]
	if exists {
		c.entries[idx].Quantity = qty
	} else {
		c.index[product.ID] = len(c.entries)
		c.entries = append(c.entries, Entry{ProductID: product.ID, Quantity: qty})
	}
	c.touch()
	return clamped
}

// Remove deletes the entry for the product. Removing an absent entry is a
// no-op.
func (c *Cart) Remove(productID string) {
	idx, exists := c.index[productID]
	if !exists {
		return
	}
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	delete(c.index, productID)
	for i := idx; i < len(c.entries); i++ {
		c.index[c.entries[i].ProductID] = i
	}
	c.touch()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.entries = nil
	c.index = make(map[string]int)
	c.touch()
}

// Quantity returns the reserved quantity for the product, 0 if absent
func (c *Cart) Quantity(productID string) int {
	idx, exists := c.index[productID]
	if !exists {
		return 0
	}
	return c.entries[idx].Quantity
}

// Entries returns the cart entries in insertion order
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of distinct products in the cart
func (c *Cart) Len() int {
	return len(c.entries)
}

// ItemCount returns the total reserved quantity across all entries
func (c *Cart) ItemCount() int {
	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}

// Totals computes the cart subtotal and total by resolving entries against
// the catalog. No tax or shipping surcharge is modeled, so both values are
// equal. Entries whose product is missing from the catalog contribute
// nothing. Full decimal precision is retained; rounding happens only at
// presentation.
func (c *Cart) Totals(cat *catalog.Catalog) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, e := range c.entries {
		product, ok := cat.Get(e.ProductID)
		if !ok {
			continue
		}
		line := product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return subtotal, subtotal
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
