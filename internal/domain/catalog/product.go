package catalog

import (
	"github.com/shopspring/decimal"
)

// Condition represents the physical condition of a part
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

// IsValid checks if the condition is a known value
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

// String returns the string representation of Condition
func (c Condition) String() string {
	return string(c)
}

// Sentinel values that mark a dimension as not applicable for a product.
// They are excluded from facet lists so they never show up as filter choices.
const (
	MakeAny  = "Universal"
	ModelAny = "Various"
	YearAny  = "N/A"
)

// Product is a purchasable part in the catalog.
// Products are immutable for the lifetime of a session: they are loaded once
// at startup and never mutated afterwards.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	PartNumber  string          `json:"part_number"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Make        string          `json:"make"`
	Model       string          `json:"model"`
	Year        string          `json:"year"`
	Category    string          `json:"category"`
	Condition   Condition       `json:"condition"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
}
