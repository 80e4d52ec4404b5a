package trace

import (
	"fmt"
	"strings"

	decimal "github.com/geseq/udecimal"

	"github.com/exchangecore/matchcore/internal/tree"
)

// virtualBook is a drain-thread-local, best-effort replica of the real book,
// rebuilt purely from BOOK_ADD and EXEC_REPORT events read off the ring. It
// exists so a SNAPSHOT never has to touch the engine's own book or order
// map: the engine thread never even knows the drain is looking.
//
// Correctness depends on event order, not on seeing every event: a BOOK_ADD
// always precedes any EXEC_REPORT for that order in the ring (the engine
// only inserts an order after matching against it has already happened), so
// the handlers below never need to reason about an EXEC_REPORT that arrives
// before its order's BOOK_ADD.
type virtualBook struct {
	orders map[[16]byte]*vOrder
	bids   *tree.Tree[*levelAgg]
	asks   *tree.Tree[*levelAgg]
}

type vOrder struct {
	side      string
	price     decimal.Decimal
	remaining uint64
}

type levelAgg struct {
	totalQty   uint64
	orderCount int
}

func newVirtualBook() *virtualBook {
	return &virtualBook{
		orders: make(map[[16]byte]*vOrder),
		bids:   tree.New[*levelAgg](tree.Ascending, 0),
		asks:   tree.New[*levelAgg](tree.Ascending, 0),
	}
}

func (v *virtualBook) sideTree(side string) *tree.Tree[*levelAgg] {
	if side == "BUY" {
		return v.bids
	}
	return v.asks
}

func (v *virtualBook) handleBookAdd(e *TraceEvent) {
	v.orders[e.OrderID] = &vOrder{side: e.Side, price: e.Price, remaining: e.RemainingQuantity}

	t := v.sideTree(e.Side)
	agg, ok := t.Get(e.Price)
	if !ok {
		agg = &levelAgg{}
		t.Put(e.Price, agg)
	}
	agg.totalQty += e.RemainingQuantity
	agg.orderCount++
}

func (v *virtualBook) handleExecReport(e *TraceEvent) {
	o, ok := v.orders[e.OrderID]
	if !ok {
		return
	}

	t := v.sideTree(o.side)
	agg, ok := t.Get(o.price)
	if !ok {
		return
	}

	if e.LastQuantity > agg.totalQty {
		agg.totalQty = 0
	} else {
		agg.totalQty -= e.LastQuantity
	}
	if e.LastQuantity > o.remaining {
		o.remaining = 0
	} else {
		o.remaining -= e.LastQuantity
	}

	if o.remaining == 0 {
		delete(v.orders, e.OrderID)
		agg.orderCount--
		if agg.orderCount <= 0 || agg.totalQty == 0 {
			t.Remove(o.price)
		}
	}
}

// snapshot renders the top levels levels per side, best price first, in the
// format spec §6 requires: "SNAPSHOT | Buy: [<p:qty(n), ...>] Sell: [<p:qty(n), ...>]".
func (v *virtualBook) snapshot(levels int) string {
	var b strings.Builder
	b.WriteString("SNAPSHOT | Buy: [")
	b.WriteString(formatLevels(v.bids, levels, true))
	b.WriteString("] Sell: [")
	b.WriteString(formatLevels(v.asks, levels, false))
	b.WriteString("]")
	return b.String()
}

func formatLevels(t *tree.Tree[*levelAgg], levels int, highestFirst bool) string {
	if levels <= 0 || t.Empty() {
		return ""
	}

	type entry struct {
		price decimal.Decimal
		agg   *levelAgg
	}
	all := make([]entry, 0, t.Size())
	it := t.Iterator()
	for it.Next() {
		all = append(all, entry{price: it.Key(), agg: it.Value()})
	}
	if highestFirst {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	if len(all) > levels {
		all = all[:levels]
	}

	parts := make([]string, len(all))
	for i, e := range all {
		parts[i] = fmt.Sprintf("%s:%d(%d)", e.price, e.agg.totalQty, e.agg.orderCount)
	}
	return strings.Join(parts, ", ")
}
