package catalog

import (
	"sort"
	"strings"
)

// FilterQuery narrows the catalog to products matching all selectors.
// Empty selectors are wildcards. Search matches case-insensitively as a
// substring across name, part number, make, model and category; selectors
// match by exact equality.
type FilterQuery struct {
	Search    string
	Make      string
	Model     string
	Year      string
	Category  string
	Condition string
}

// Facets holds the distinct filterable values per product dimension,
// sorted ascending, with not-applicable sentinels excluded.
type Facets struct {
	Makes      []string `json:"makes"`
	Models     []string `json:"models"`
	Years      []string `json:"years"`
	Categories []string `json:"categories"`
}

// Catalog is the immutable, session-scoped collection of products.
// It preserves source order and indexes products by ID.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// NewCatalog builds a catalog from the loaded product list.
// On duplicate IDs the first occurrence wins.
func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, exists := c.byID[p.ID]; exists {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Get returns the product with the given ID
func (c *Catalog) Get(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len returns the number of products in the catalog
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns all products in catalog order
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Query returns the products satisfying the filter, in catalog order.
func (c *Catalog) Query(q FilterQuery) []Product {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	var out []Product
	for _, p := range c.products {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if q.Make != "" && p.Make != q.Make {
			continue
		}
		if q.Model != "" && p.Model != q.Model {
			continue
		}
		if q.Year != "" && p.Year != q.Year {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Condition != "" && p.Condition.String() != q.Condition {
			continue
		}
		out = append(out, p)
	}
	if out == nil {
		out = []Product{}
	}
	return out
}

func matchesSearch(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.PartNumber), term) ||
		strings.Contains(strings.ToLower(p.Make), term) ||
		strings.Contains(strings.ToLower(p.Model), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

// Facets derives the distinct sorted values per filterable dimension.
// Sentinel values (Universal, Various, N/A) mark a dimension as not
// applicable and are excluded.
func (c *Catalog) Facets() Facets {
	makes := make(map[string]struct{})
	models := make(map[string]struct{})
	years := make(map[string]struct{})
	categories := make(map[string]struct{})

	for _, p := range c.products {
		if p.Make != "" && p.Make != MakeAny {
			makes[p.Make] = struct{}{}
		}
		if p.Model != "" && p.Model != ModelAny {
			models[p.Model] = struct{}{}
		}
		if p.Year != "" && p.Year != YearAny {
			years[p.Year] = struct{}{}
		}
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
	}

	return Facets{
		Makes:      sortedKeys(makes),
		Models:     sortedKeys(models),
		Years:      sortedKeys(years),
		Categories: sortedKeys(categories),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
