package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryMethod identifies how the customer receives the order
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryShipping DeliveryMethod = "shipping"
)

// IsValid checks if the method is a known value
func (m DeliveryMethod) IsValid() bool {
	return m == DeliveryPickup || m == DeliveryShipping
}

// String returns the string representation of DeliveryMethod
func (m DeliveryMethod) String() string {
	return string(m)
}

// AddressNotApplicable is the address placeholder for pickup orders
const AddressNotApplicable = "N/A"

// Delivery is a closed variant over the delivery method. An address exists
// structurally only for shipping; it cannot be set on a pickup delivery.
type Delivery struct {
	method  DeliveryMethod
	address string
}

// Pickup creates an in-person pickup delivery
func Pickup() Delivery {
	return Delivery{method: DeliveryPickup}
}

// Shipping creates a shipping delivery to the given address
func Shipping(address string) Delivery {
	return Delivery{method: DeliveryShipping, address: address}
}

// Method returns the delivery method
func (d Delivery) Method() DeliveryMethod {
	return d.method
}

// IsShipping reports whether the order is shipped to an address
func (d Delivery) IsShipping() bool {
	return d.method == DeliveryShipping
}

// Address returns the shipping address and whether one is present
func (d Delivery) Address() (string, bool) {
	return d.address, d.method == DeliveryShipping
}

// AddressOrNA returns the shipping address, or the not-applicable
// placeholder for pickup orders.
func (d Delivery) AddressOrNA() string {
	if d.method == DeliveryShipping {
		return d.address
	}
	return AddressNotApplicable
}

// Customer holds the contact details supplied at checkout
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Item is a cart entry snapshotted at order time. Name, part number and
// unit price are captured so the order stays meaningful even if the
// catalog changes afterwards.
type Item struct {
	ProductID  string          `json:"id"`
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"price"`
}

// LineTotal returns unit price times quantity
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the finalized, transient order record. It exists only for the
// duration of the checkout operation and is never persisted.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Customer  Customer        `json:"customer"`
	Delivery  Delivery        `json:"-"`
	Notes     string          `json:"notes,omitempty"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// ValidationError reports which checkout field failed validation
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
