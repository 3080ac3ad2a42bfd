package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{
			ID:         "p1",
			Name:       "Brake Pad Set",
			PartNumber: "BP-1001",
			Price:      decimal.NewFromFloat(150.00),
			Stock:      10,
			Make:       "Toyota",
			Model:      "Corolla",
			Year:       "2015",
			Category:   "Brakes",
			Condition:  ConditionNew,
		},
		{
			ID:         "p2",
			Name:       "Oil Filter",
			PartNumber: "OF-2002",
			Price:      decimal.NewFromFloat(35.50),
			Stock:      3,
			Make:       "Universal",
			Model:      "Various",
			Year:       "N/A",
			Category:   "Engine",
			Condition:  ConditionNew,
		},
		{
			ID:         "p3",
			Name:       "Used Alternator",
			PartNumber: "AL-3003",
			Price:      decimal.NewFromFloat(420.00),
			Stock:      0,
			Make:       "Honda",
			Model:      "Civic",
			Year:       "2012",
			Category:   "Electrical",
			Condition:  ConditionUsed,
		},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("preserves source order", func(t *testing.T) {
		c := NewCatalog(testProducts())
		require.Equal(t, 3, c.Len())

		products := c.Products()
		assert.Equal(t, "p1", products[0].ID)
		assert.Equal(t, "p2", products[1].ID)
		assert.Equal(t, "p3", products[2].ID)
	})

	t.Run("keeps first occurrence on duplicate IDs", func(t *testing.T) {
		dup := testProducts()
		dup = append(dup, Product{ID: "p1", Name: "Impostor"})

		c := NewCatalog(dup)
		require.Equal(t, 3, c.Len())

		p, ok := c.Get("p1")
		require.True(t, ok)
		assert.Equal(t, "Brake Pad Set", p.Name)
	})

	t.Run("empty input yields empty catalog", func(t *testing.T) {
		c := NewCatalog(nil)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Query(FilterQuery{}))
	})
}

func TestCatalogGet(t *testing.T) {
	c := NewCatalog(testProducts())

	p, ok := c.Get("p2")
	require.True(t, ok)
	assert.Equal(t, "Oil Filter", p.Name)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCatalogQuery(t *testing.T) {
	c := NewCatalog(testProducts())

	t.Run("empty filter returns full catalog in order", func(t *testing.T) {
		got := c.Query(FilterQuery{})
		require.Len(t, got, 3)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p2", got[1].ID)
		assert.Equal(t, "p3", got[2].ID)
	})

	t.Run("search is case-insensitive across fields", func(t *testing.T) {
		got := c.Query(FilterQuery{Search: "BRAKE"})
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)

		// matches part number
		got = c.Query(FilterQuery{Search: "of-2002"})
		require.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)

		// matches make
		got = c.Query(FilterQuery{Search: "honda"})
		require.Len(t, got, 1)
		assert.Equal(t, "p3", got[0].ID)

		// matches category
		got = c.Query(FilterQuery{Search: "engine"})
		require.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)
	})

	t.Run("selectors are exact and conjunctive", func(t *testing.T) {
		got := c.Query(FilterQuery{Make: "Toyota", Category: "Brakes"})
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)

		got = c.Query(FilterQuery{Make: "Toyota", Category: "Engine"})
		assert.Empty(t, got)

		// selectors are case-sensitive
		got = c.Query(FilterQuery{Make: "toyota"})
		assert.Empty(t, got)
	})

	t.Run("search combines with selectors", func(t *testing.T) {
		got := c.Query(FilterQuery{Search: "a", Condition: "used"})
		require.Len(t, got, 1)
		assert.Equal(t, "p3", got[0].ID)
	})

	t.Run("query is repeatable", func(t *testing.T) {
		q := FilterQuery{Search: "filter"}
		first := c.Query(q)
		second := c.Query(q)
		assert.Equal(t, first, second)
	})
}

func TestCatalogFacets(t *testing.T) {
	c := NewCatalog(testProducts())
	f := c.Facets()

	t.Run("excludes sentinel values", func(t *testing.T) {
		assert.NotContains(t, f.Makes, MakeAny)
		assert.NotContains(t, f.Models, ModelAny)
		assert.NotContains(t, f.Years, YearAny)
	})

	t.Run("values are distinct and sorted", func(t *testing.T) {
		assert.Equal(t, []string{"Honda", "Toyota"}, f.Makes)
		assert.Equal(t, []string{"Civic", "Corolla"}, f.Models)
		assert.Equal(t, []string{"2012", "2015"}, f.Years)
		assert.Equal(t, []string{"Brakes", "Electrical", "Engine"}, f.Categories)
	})
}

func TestConditionIsValid(t *testing.T) {
	assert.True(t, ConditionNew.IsValid())
	assert.True(t, ConditionUsed.IsValid())
	assert.True(t, ConditionRefurbished.IsValid())
	assert.False(t, Condition("broken").IsValid())
}
