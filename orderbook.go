package matchcore

// OrderBook holds the resting limit orders on both sides of a single
// instrument. It has no notion of matching; it only maintains price-time
// priority structures that the MatchingEngine drives.
//
// Invariants (enforced by the engine, checked defensively here):
//   - every order it holds has RemainingQuantity > 0 and Type == Limit.
//   - no price level ever has an empty queue.
//   - it never holds a MARKET order.
type OrderBook struct {
	bids *priceLevel
	asks *priceLevel
}

// NewOrderBook creates an empty book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: newPriceLevel(bidLevels),
		asks: newPriceLevel(askLevels),
	}
}

func (b *OrderBook) side(s Side) *priceLevel {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// Insert rests order on the book. order.RemainingQuantity must be positive
// and order.Type must be Limit; violating either is a caller bug, not a
// recoverable condition.
func (b *OrderBook) Insert(order *Order) {
	if order.Type != Limit {
		fatal("attempted to rest a non-LIMIT order on the book")
	}
	if order.RemainingQuantity == 0 {
		fatal("attempted to rest an order with no remaining quantity")
	}
	b.side(order.Side).Append(order)
}

// BestBuy returns the FIFO queue at the best (highest) resting bid price, or
// nil if there are no resting bids.
func (b *OrderBook) BestBuy() *orderQueue { return b.bids.Best() }

// BestSell returns the FIFO queue at the best (lowest) resting ask price, or
// nil if there are no resting asks.
func (b *OrderBook) BestSell() *orderQueue { return b.asks.Best() }

// Remove takes order off the book. It is only ever called on the current
// head of the queue it rests in (the engine never removes from the middle of
// a level); calling it twice on the same order is undefined.
func (b *OrderBook) Remove(order *Order) {
	b.side(order.Side).Remove(order, order.Price)
}

// reduceHead records a fill against the resting order at the head of its
// level without removing it from the book. The caller removes the order
// separately once it is fully filled; reduceHead must run first regardless,
// since Remove only subtracts the quantity still remaining at removal time
// (zero after a full fill).
func (b *OrderBook) reduceHead(order *Order, qty uint64) {
	b.side(order.Side).reduceVolume(order.Price, qty)
}

// IsEmpty reports whether side has no resting orders.
func (b *OrderBook) IsEmpty(s Side) bool {
	return b.side(s).Empty()
}

// Depth returns the number of distinct resting price levels on side.
func (b *OrderBook) Depth(s Side) int {
	return b.side(s).Depth()
}

// Volume returns the total remaining quantity resting on side.
func (b *OrderBook) Volume(s Side) uint64 {
	return b.side(s).Volume()
}

// NumOrders returns the number of resting orders on side.
func (b *OrderBook) NumOrders(s Side) uint64 {
	return b.side(s).Len()
}

// IsCrossed reports whether the best bid is at or above the best ask. A
// quiescent book (between two Submit calls) must never satisfy this; the
// engine checks it as a post-submission invariant.
func (b *OrderBook) IsCrossed() bool {
	bestBid := b.BestBuy()
	if bestBid == nil {
		return false
	}
	return b.asks.crosses(bestBid.Price())
}
