package cart

import (
	"github.com/speedparts/storefront/internal/domain/catalog"
)

// Band is the coarse availability classification driving purchasability
// and low-stock warnings.
type Band string

const (
	BandOutOfStock Band = "OUT_OF_STOCK"
	BandLow        Band = "LOW"
	BandInStock    Band = "IN_STOCK"
)

// LowStockThreshold is the available quantity below which a product is
// classified as low stock.
const LowStockThreshold = 5

// Ledger computes per-product available-to-sell quantity given catalog
// stock and the reservations currently held in the cart.
type Ledger struct {
	catalog *catalog.Catalog
	cart    *Cart
}

// NewLedger creates a ledger over the given catalog and cart
func NewLedger(cat *catalog.Catalog, c *Cart) *Ledger {
	return &Ledger{catalog: cat, cart: c}
}

// Available returns catalog stock minus the cart reservation for the
// product. A reservation exceeding catalog stock is a prior invariant
// breach; the result is clamped at 0 rather than reported negative.
// Unknown products have no stock to sell.
func (l *Ledger) Available(productID string) int {
	product, ok := l.catalog.Get(productID)
	if !ok {
		return 0
	}
	available := product.Stock - l.cart.Quantity(productID)
	if available < 0 {
		return 0
	}
	return available
}

// IsPurchasable reports whether at least one unit can still be added
func (l *Ledger) IsPurchasable(productID string) bool {
	return l.Available(productID) > 0
}

// StockBand classifies the product's availability
func (l *Ledger) StockBand(productID string) Band {
	available := l.Available(productID)
	switch {
	case available <= 0:
		return BandOutOfStock
	case available < LowStockThreshold:
		return BandLow
	default:
		return BandInStock
	}
}
