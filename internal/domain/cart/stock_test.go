package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/speedparts/storefront/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAvailable(t *testing.T) {
	cat := catalog.NewCatalog([]catalog.Product{
		{ID: "p1", Price: decimal.NewFromInt(10), Stock: 6},
		{ID: "p2", Price: decimal.NewFromInt(10), Stock: 0},
	})

	t.Run("equals stock minus reservation", func(t *testing.T) {
		c := New()
		ledger := NewLedger(cat, c)
		assert.Equal(t, 6, ledger.Available("p1"))

		c.SetQuantity(mustGet(t, cat, "p1"), 4)
		assert.Equal(t, 2, ledger.Available("p1"))
	})

	t.Run("unknown product has nothing to sell", func(t *testing.T) {
		ledger := NewLedger(cat, New())
		assert.Equal(t, 0, ledger.Available("ghost"))
	})

	t.Run("never negative even after invariant breach", func(t *testing.T) {
		// simulate a stale reservation restored against a shrunken catalog
		c := Restore([]Entry{{ProductID: "p1", Quantity: 6}}, cat)
		shrunk := catalog.NewCatalog([]catalog.Product{
			{ID: "p1", Price: decimal.NewFromInt(10), Stock: 2},
		})
		ledger := NewLedger(shrunk, c)
		assert.GreaterOrEqual(t, ledger.Available("p1"), 0)
	})
}

func TestLedgerIsPurchasable(t *testing.T) {
	cat := catalog.NewCatalog([]catalog.Product{
		{ID: "p1", Price: decimal.NewFromInt(10), Stock: 1},
		{ID: "p2", Price: decimal.NewFromInt(10), Stock: 0},
	})
	c := New()
	ledger := NewLedger(cat, c)

	assert.True(t, ledger.IsPurchasable("p1"))
	assert.False(t, ledger.IsPurchasable("p2"))

	require.NoError(t, c.Add(mustGet(t, cat, "p1")))
	assert.False(t, ledger.IsPurchasable("p1"))
}

func TestLedgerStockBand(t *testing.T) {
	cat := catalog.NewCatalog([]catalog.Product{
		{ID: "out", Price: decimal.NewFromInt(10), Stock: 0},
		{ID: "low", Price: decimal.NewFromInt(10), Stock: 4},
		{ID: "edge", Price: decimal.NewFromInt(10), Stock: 5},
		{ID: "in", Price: decimal.NewFromInt(10), Stock: 50},
	})
	ledger := NewLedger(cat, New())

	tests := []struct {
		id   string
		want Band
	}{
		{"out", BandOutOfStock},
		{"low", BandLow},
		{"edge", BandInStock},
		{"in", BandInStock},
		{"ghost", BandOutOfStock},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ledger.StockBand(tt.id), "product %s", tt.id)
	}
}

func TestLedgerBandTracksReservations(t *testing.T) {
	cat := catalog.NewCatalog([]catalog.Product{
		{ID: "p1", Price: decimal.NewFromInt(10), Stock: 6},
	})
	c := New()
	ledger := NewLedger(cat, c)
	p1 := mustGet(t, cat, "p1")

	assert.Equal(t, BandInStock, ledger.StockBand("p1"))

	c.SetQuantity(p1, 3)
	assert.Equal(t, BandLow, ledger.StockBand("p1"))

	c.SetQuantity(p1, 6)
	assert.Equal(t, BandOutOfStock, ledger.StockBand("p1"))
}
