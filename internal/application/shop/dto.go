package shop

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/speedparts/storefront/internal/domain/cart"
	"github.com/speedparts/storefront/internal/domain/catalog"
	"github.com/speedparts/storefront/internal/infrastructure/dispatch"
)

// ProductView is a catalog product enriched with the availability state
// the storefront grid needs to decide what is purchasable.
type ProductView struct {
	catalog.Product
	Available   int       `json:"available"`
	Band        cart.Band `json:"stock_band"`
	Purchasable bool      `json:"purchasable"`
}

// CartLine is a cart entry resolved against the catalog
type CartLine struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView is the cart state the presentation surface renders
type CartView struct {
	Lines     []CartLine      `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// CheckoutResult reports a completed dispatch back to the caller
type CheckoutResult struct {
	OrderID uuid.UUID       `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
	Report  dispatch.Report `json:"report"`
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
