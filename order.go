package matchcore

import (
	"fmt"

	decimal "github.com/geseq/udecimal"
)

// Order is a single limit or market order tracked by the matching engine.
//
// Quantity is immutable; RemainingQuantity and CumulativeQuantity are
// mutated only by the engine during matching and always satisfy
// Quantity == RemainingQuantity + CumulativeQuantity.
type Order struct {
	ID    OrderID
	Side  Side
	Type  OrderType
	Price decimal.Decimal // zero value for MARKET orders

	Quantity          uint64
	RemainingQuantity uint64
	CumulativeQuantity uint64

	// ArrivalSequence is the time-priority tiebreaker, assigned by the
	// engine at Submit entry. See DESIGN.md for why this replaces the
	// wall-clock timestamp the original Java model used.
	ArrivalSequence uint64

	// prev/next link this order into its resting price level's FIFO queue.
	// Only the OrderBook/orderQueue this order rests in ever touch these.
	prev, next *Order
}

// newOrder validates and constructs an Order. It mirrors spec §4.2 step 1:
// non-positive quantity or a LIMIT order missing its price is rejected here
// so the engine never has to reason about an invalid order mid-match.
func newOrder(id OrderID, side Side, otype OrderType, price decimal.Decimal, quantity uint64) (*Order, error) {
	if quantity == 0 {
		return nil, ErrNonPositiveQuantity
	}
	switch otype {
	case Limit:
		if price.IsZero() {
			return nil, ErrLimitMissingPrice
		}
	case Market:
		price = decimal.Zero
	default:
		return nil, ErrUnknownOrderType
	}
	if side != Buy && side != Sell {
		return nil, ErrUnknownSide
	}

	return &Order{
		ID:                id,
		Side:              side,
		Type:              otype,
		Price:             price,
		Quantity:          quantity,
		RemainingQuantity: quantity,
	}, nil
}

// IsFullyFilled reports whether the order has no remaining quantity.
func (o *Order) IsFullyFilled() bool {
	return o.RemainingQuantity == 0
}

// applyFill atomically moves qty from RemainingQuantity to
// CumulativeQuantity. qty must be in (0, RemainingQuantity]; violating that
// is an engine invariant failure, not a user error.
func (o *Order) applyFill(qty uint64) {
	if qty == 0 || qty > o.RemainingQuantity {
		fatal(fmt.Sprintf("invalid fill quantity %d against order %s with remaining %d", qty, o.ID, o.RemainingQuantity))
	}
	o.RemainingQuantity -= qty
	o.CumulativeQuantity += qty
	if o.RemainingQuantity+o.CumulativeQuantity != o.Quantity {
		fatal(fmt.Sprintf("quantity invariant violated for order %s", o.ID))
	}
}

// executionType reports the ExecutionType a fill of this order's current
// state produces: FULL_FILL if nothing remains, PARTIAL_FILL otherwise.
func (o *Order) executionType() ExecutionType {
	if o.IsFullyFilled() {
		return FullFill
	}
	return PartialFill
}

// String implements fmt.Stringer for diagnostics.
func (o *Order) String() string {
	return fmt.Sprintf("Order{id=%s side=%s type=%s price=%s qty=%d remaining=%d}",
		o.ID, o.Side, o.Type, o.Price, o.Quantity, o.RemainingQuantity)
}
