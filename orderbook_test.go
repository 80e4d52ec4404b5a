package matchcore

import (
	"testing"

	decimal "github.com/geseq/udecimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderBookInsertAndBestBuySell(t *testing.T) {
	b := NewOrderBook()

	b.Insert(mustOrder(t, Buy, decimal.New(100, 0), 10))
	b.Insert(mustOrder(t, Buy, decimal.New(105, 0), 10))
	b.Insert(mustOrder(t, Sell, decimal.New(110, 0), 10))
	b.Insert(mustOrder(t, Sell, decimal.New(115, 0), 10))

	assert.True(t, b.BestBuy().Price().Equal(decimal.New(105, 0)))
	assert.True(t, b.BestSell().Price().Equal(decimal.New(110, 0)))
	assert.False(t, b.IsCrossed())
}

func TestOrderBookInsertRejectsNonLimit(t *testing.T) {
	b := NewOrderBook()
	o, _ := newOrder(NewOrderID(), Buy, Market, decimal.Zero, 10)
	assert.Panics(t, func() { b.Insert(o) })
}

func TestOrderBookInsertRejectsZeroRemaining(t *testing.T) {
	b := NewOrderBook()
	o := mustOrder(t, Buy, decimal.New(100, 0), 10)
	o.RemainingQuantity = 0
	assert.Panics(t, func() { b.Insert(o) })
}

func TestOrderBookRemoveEmptiesLevel(t *testing.T) {
	b := NewOrderBook()
	o := mustOrder(t, Buy, decimal.New(100, 0), 10)
	b.Insert(o)

	b.Remove(o)

	assert.True(t, b.IsEmpty(Buy))
	assert.Nil(t, b.BestBuy())
}

func TestOrderBookRemoveIsIdempotenceBoundaryOnHead(t *testing.T) {
	// Removing only ever happens on the current head of a level; once removed,
	// the level with no remaining orders at that price is pruned entirely.
	b := NewOrderBook()
	price := decimal.New(100, 0)
	a := mustOrder(t, Buy, price, 10)
	c := mustOrder(t, Buy, price, 20)
	b.Insert(a)
	b.Insert(c)

	b.Remove(a)

	assert.False(t, b.IsEmpty(Buy))
	assert.Same(t, c, b.BestBuy().Head())
}

func TestOrderBookReduceHead(t *testing.T) {
	b := NewOrderBook()
	o := mustOrder(t, Buy, decimal.New(100, 0), 10)
	b.Insert(o)

	b.reduceHead(o, 4)

	assert.Equal(t, uint64(6), b.BestBuy().TotalQty())
}

func TestOrderBookIsCrossedDetectsOverlap(t *testing.T) {
	b := NewOrderBook()
	b.Insert(mustOrder(t, Buy, decimal.New(100, 0), 10))
	b.Insert(mustOrder(t, Sell, decimal.New(100, 0), 10))

	assert.True(t, b.IsCrossed())
}

func TestOrderBookIsCrossedFalseWhenOneSideEmpty(t *testing.T) {
	b := NewOrderBook()
	b.Insert(mustOrder(t, Buy, decimal.New(100, 0), 10))

	assert.False(t, b.IsCrossed())
}

func TestOrderBookDepthVolumeNumOrders(t *testing.T) {
	b := NewOrderBook()
	b.Insert(mustOrder(t, Buy, decimal.New(100, 0), 10))
	b.Insert(mustOrder(t, Buy, decimal.New(100, 0), 5))
	b.Insert(mustOrder(t, Buy, decimal.New(101, 0), 7))

	assert.Equal(t, 2, b.Depth(Buy))
	assert.Equal(t, uint64(22), b.Volume(Buy))
	assert.Equal(t, uint64(3), b.NumOrders(Buy))

	assert.Equal(t, 0, b.Depth(Sell))
	assert.Equal(t, uint64(0), b.Volume(Sell))
	assert.Equal(t, uint64(0), b.NumOrders(Sell))
}
