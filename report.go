package matchcore

import (
	"fmt"

	decimal "github.com/geseq/udecimal"
)

// ExecutionReport describes one fill or cancellation event produced by the
// engine. Two are emitted per fill, one for the incoming order and one for
// the resting order it matched against (spec §4.3), plus a single Cancel
// report for the unfilled residual of a MARKET order.
type ExecutionReport struct {
	OrderID OrderID
	Side    Side
	Type    ExecutionType

	// OrderSize is the original quantity of the order this report is about.
	OrderSize uint64

	// Price is the price this fill executed at. It is meaningless (and left
	// at its zero value) when Type == Cancel, since a cancellation of a
	// residual has no execution price.
	Price decimal.Decimal

	LastQuantity       uint64
	CumulativeQuantity uint64
}

// HasPrice reports whether Price carries a meaningful value. It is false
// only for Cancel reports.
func (r ExecutionReport) HasPrice() bool {
	return r.Type != Cancel
}

func fillReport(o *Order, price decimal.Decimal, lastQty uint64) ExecutionReport {
	return ExecutionReport{
		OrderID:            o.ID,
		Side:               o.Side,
		Type:               o.executionType(),
		OrderSize:          o.Quantity,
		Price:              price,
		LastQuantity:       lastQty,
		CumulativeQuantity: o.CumulativeQuantity,
	}
}

func cancelReport(o *Order) ExecutionReport {
	return ExecutionReport{
		OrderID:            o.ID,
		Side:               o.Side,
		Type:               Cancel,
		OrderSize:          o.Quantity,
		LastQuantity:       0,
		CumulativeQuantity: o.CumulativeQuantity,
	}
}

// String implements fmt.Stringer for diagnostics.
func (r ExecutionReport) String() string {
	if !r.HasPrice() {
		return fmt.Sprintf("ExecutionReport{id=%s side=%s type=%s size=%d cum=%d}",
			r.OrderID, r.Side, r.Type, r.OrderSize, r.CumulativeQuantity)
	}
	return fmt.Sprintf("ExecutionReport{id=%s side=%s type=%s size=%d price=%s last=%d cum=%d}",
		r.OrderID, r.Side, r.Type, r.OrderSize, r.Price, r.LastQuantity, r.CumulativeQuantity)
}
