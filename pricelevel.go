package matchcore

import (
	decimal "github.com/geseq/udecimal"

	"github.com/exchangecore/matchcore/internal/tree"
)

// side of the book a priceLevel indexes: bids want the highest price first,
// asks want the lowest price first. Both sides share the same ascending
// price tree; only which end of it counts as "best" differs.
type bookSide byte

const (
	bidLevels bookSide = iota
	askLevels
)

// priceLevel indexes every resting orderQueue on one side of the book by
// exact decimal price, giving O(log L) best-price lookup and O(log L)
// insertion/removal of an entire price level (L = distinct price levels on
// this side, not order count).
type priceLevel struct {
	tree *tree.Tree[*orderQueue]
	side bookSide

	volume    uint64
	numOrders uint64
}

func newPriceLevel(side bookSide) *priceLevel {
	return &priceLevel{
		tree: tree.New[*orderQueue](tree.Ascending, 0),
		side: side,
	}
}

// Len returns the number of resting orders on this side.
func (pl *priceLevel) Len() uint64 { return pl.numOrders }

// Depth returns the number of distinct price levels on this side.
func (pl *priceLevel) Depth() int { return pl.tree.Size() }

// Volume returns total remaining quantity resting on this side.
func (pl *priceLevel) Volume() uint64 { return pl.volume }

// Append rests o at its price, creating the level if this is the first
// order there.
func (pl *priceLevel) Append(o *Order) {
	q, ok := pl.tree.Get(o.Price)
	if !ok {
		q = newOrderQueue(o.Price)
		pl.tree.Put(o.Price, q)
	}
	q.Append(o)
	pl.numOrders++
	pl.volume += o.RemainingQuantity
}

// Remove takes o out of its resting level, pruning the level from the tree
// if it becomes empty. price must be the price o was resting at (an order's
// own Price never changes once submitted).
func (pl *priceLevel) Remove(o *Order, price decimal.Decimal) {
	q, ok := pl.tree.Get(price)
	if !ok {
		fatal("remove of order from a price level with no queue at that price")
	}
	q.Remove(o)
	pl.numOrders--
	pl.volume -= o.RemainingQuantity

	if q.Empty() {
		pl.tree.Remove(price)
	}
}

// reduceVolume records qty filled off the top of this side without removing
// the order. It runs for every fill of the resting order, partial or full.
func (pl *priceLevel) reduceVolume(price decimal.Decimal, qty uint64) {
	if q, ok := pl.tree.Get(price); ok {
		q.reduceQty(qty)
	}
	pl.volume -= qty
}

// Best returns the best (highest bid / lowest ask) resting queue, or nil if
// this side is empty.
func (pl *priceLevel) Best() *orderQueue {
	var n *tree.Node[*orderQueue]
	var ok bool
	switch pl.side {
	case bidLevels:
		n, ok = pl.tree.GetMax()
	case askLevels:
		n, ok = pl.tree.GetMin()
	}
	if !ok {
		return nil
	}
	return n.Value
}

// Empty reports whether this side has no resting orders.
func (pl *priceLevel) Empty() bool { return pl.numOrders == 0 }

// crosses reports whether price would cross (execute immediately against)
// the best resting queue on this side: for bids, an incoming sell at price
// crosses if price <= best bid; for asks, an incoming buy at price crosses
// if price >= best ask. incoming is the side of the order checking for a
// cross, i.e. the opposite of pl.side.
func (pl *priceLevel) crosses(price decimal.Decimal) bool {
	best := pl.Best()
	if best == nil {
		return false
	}
	switch pl.side {
	case bidLevels:
		return price.Cmp(best.Price()) <= 0
	case askLevels:
		return price.Cmp(best.Price()) >= 0
	}
	return false
}
