package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/speedparts/storefront/internal/domain/cart"
	"github.com/speedparts/storefront/internal/domain/catalog"
	"github.com/speedparts/storefront/internal/domain/shared"
)

// CustomerInput is the raw checkout form data before validation
type CustomerInput struct {
	Name    string
	Phone   string
	Method  string
	Address string
	Notes   string
}

// Assemble validates the customer input and builds an order from the
// current cart contents. Validation fails fast on the first violation, in
// field order: name, phone, delivery method, then address for shipping
// orders.
//
// Cart entries are snapshotted by resolving them against the catalog; an
// entry whose product has vanished is dropped from the snapshot. The order
// total must agree with the cart's own totals, anything else is a defect.
func Assemble(c *cart.Cart, cat *catalog.Catalog, input CustomerInput) (*Order, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newValidationError("name", "customer name is required")
	}

	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, newValidationError("phone", "customer phone is required")
	}

	method := DeliveryMethod(strings.ToLower(strings.TrimSpace(input.Method)))
	if !method.IsValid() {
		return nil, newValidationError("delivery_method", "delivery method must be pickup or shipping")
	}

	var delivery Delivery
	if method == DeliveryShipping {
		address := strings.TrimSpace(input.Address)
		if address == "" {
			return nil, newValidationError("address", "shipping address is required")
		}
		delivery = Shipping(address)
	} else {
		delivery = Pickup()
	}

	items := make([]Item, 0, c.Len())
	total := decimal.Zero
	for _, entry := range c.Entries() {
		product, ok := cat.Get(entry.ProductID)
		if !ok {
			continue
		}
		item := Item{
			ProductID:  product.ID,
			Name:       product.Name,
			PartNumber: product.PartNumber,
			Quantity:   entry.Quantity,
			UnitPrice:  product.Price,
		}
		items = append(items, item)
		total = total.Add(item.LineTotal())
	}

	if len(items) == 0 {
		return nil, newValidationError("items", "cart is empty")
	}

	if _, cartTotal := c.Totals(cat); !total.Equal(cartTotal) {
		return nil, shared.ErrInvalidState
	}

	return &Order{
		ID:        uuid.New(),
		Customer:  Customer{Name: name, Phone: phone},
		Delivery:  delivery,
		Notes:     strings.TrimSpace(input.Notes),
		Items:     items,
		Total:     total,
		CreatedAt: time.Now(),
	}, nil
}
