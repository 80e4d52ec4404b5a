package matchcore

import (
	decimal "github.com/geseq/udecimal"

	"github.com/exchangecore/matchcore/internal/trace"
)

// Engine drives price-time priority matching for a single instrument. It is
// strictly single-threaded: Submit must never be called concurrently with
// itself. All mutation of the book and the report log happens on whichever
// goroutine calls Submit.
type Engine struct {
	book    *OrderBook
	reports []ExecutionReport

	arrivalSeq uint64

	tracer *trace.Tracer
	tctx   traceContext
}

// Shutdown stops the tracing pipeline, if one is attached, per the
// bounded-join drain shutdown protocol (spec §5). It does not touch the
// book or the report log, which remain valid for inspection afterward.
func (e *Engine) Shutdown() {
	if e.tracer != nil {
		e.tracer.Shutdown()
	}
}

// traceContext is the per-engine analogue of the original's thread-local
// call-depth/current-order bookkeeping (see DESIGN.md). It is a plain field
// on Engine rather than a global so a process hosting more than one Engine
// never shares it.
type traceContext struct {
	depth          int
	currentOrderID OrderID
	haveOrder      bool
	orderCounter   uint64
}

func (c *traceContext) enter() int {
	c.depth++
	return c.depth
}

func (c *traceContext) exit() {
	c.depth--
}

// NewEngine constructs an Engine with an empty book. t may be nil, in which
// case no trace events are ever emitted (equivalent to config Emit=false and
// Output=none together).
func NewEngine(t *trace.Tracer) *Engine {
	return &Engine{
		book:   NewOrderBook(),
		tracer: t,
	}
}

// Reports returns the engine's execution-report log in generation order.
// The returned slice is owned by the engine; callers must not mutate it.
func (e *Engine) Reports() []ExecutionReport { return e.reports }

// Book exposes the resting book for read-only inspection (metrics, tests).
func (e *Engine) Book() *OrderBook { return e.book }

// Submit processes a single order to completion: it walks the opposite side
// of the book generating fills, then rests any remaining LIMIT quantity or
// cancels any remaining MARKET quantity. Concurrent calls are undefined.
func (e *Engine) Submit(side Side, otype OrderType, price decimal.Decimal, quantity uint64, id OrderID) (*Order, error) {
	order, err := newOrder(id, side, otype, price, quantity)
	if err != nil {
		return nil, err
	}

	e.tctx.currentOrderID = order.ID
	e.tctx.haveOrder = true
	order.ArrivalSequence = e.arrivalSeq
	e.arrivalSeq++
	e.emitOrderInAndCall(order)

	e.matchLoop(order)
	e.restOrCancel(order)

	if e.book.IsCrossed() {
		fatal("book crossed after submission completed")
	}

	e.tctx.orderCounter++
	e.maybeSnapshot()
	e.tctx.haveOrder = false

	return order, nil
}

// matchLoop walks the opposite side of the book, generating fills until
// order is exhausted, the opposite side is empty, or (for LIMIT orders) the
// next resting price would no longer satisfy order's limit.
func (e *Engine) matchLoop(order *Order) {
	e.tctx.enter()
	defer e.tctx.exit()
	e.emitCall(trace.FnMatchLoop)

	opp := order.Side.Opposite()
	for order.RemainingQuantity > 0 {
		q := e.bestQueue(opp)
		if q == nil {
			break
		}
		resting := q.Head()
		if resting == nil {
			fatal("non-empty price level with a nil head")
		}

		if order.Type == Limit && !e.satisfiesLimit(order, resting.Price) {
			break
		}

		e.executeFill(order, resting, resting.Price)

		if resting.IsFullyFilled() {
			e.book.Remove(resting)
		}
	}
}

func (e *Engine) bestQueue(side Side) *orderQueue {
	if side == Buy {
		return e.book.BestBuy()
	}
	return e.book.BestSell()
}

// satisfiesLimit reports whether a resting order at restingPrice may still
// trade against order under order's own limit price.
func (e *Engine) satisfiesLimit(order *Order, restingPrice decimal.Decimal) bool {
	if order.Side == Buy {
		return restingPrice.Cmp(order.Price) <= 0
	}
	return restingPrice.Cmp(order.Price) >= 0
}

// executeFill applies a fill of min(incoming.remaining, resting.remaining)
// at price to both orders, appends the pair of execution reports in
// [incoming, resting] order, and emits the matching pair of EXEC_REPORT
// trace events in the same order.
func (e *Engine) executeFill(incoming, resting *Order, price decimal.Decimal) {
	e.tctx.enter()
	defer e.tctx.exit()

	fillQty := incoming.RemainingQuantity
	if resting.RemainingQuantity < fillQty {
		fillQty = resting.RemainingQuantity
	}
	if fillQty == 0 {
		fatal("executeFill invoked with zero fillable quantity")
	}

	incoming.applyFill(fillQty)
	resting.applyFill(fillQty)
	e.book.reduceHead(resting, fillQty)

	incomingReport := fillReport(incoming, price, fillQty)
	restingReport := fillReport(resting, price, fillQty)
	e.reports = append(e.reports, incomingReport, restingReport)

	e.emitExecReport(incomingReport)
	e.emitExecReport(restingReport)
}

// restOrCancel implements MatchingEngine step 3: a LIMIT order with
// remaining quantity rests on the book; a MARKET order with remaining
// quantity is cancelled with a single terminal report.
func (e *Engine) restOrCancel(order *Order) {
	e.tctx.enter()
	defer e.tctx.exit()
	e.emitCall(trace.FnRestOrCancel)

	if order.RemainingQuantity == 0 {
		return
	}
	if order.Type == Limit {
		e.insertOnBook(order)
		return
	}

	report := cancelReport(order)
	report.LastQuantity = order.RemainingQuantity
	e.reports = append(e.reports, report)
	e.emitExecReport(report)
}

// insertOnBook rests order in its price level's FIFO queue and emits its
// BOOK_ADD. It is its own nested call frame rather than inlined into
// restOrCancel, so the BOOK_ADD sits one depth level below restOrCancel's
// CALL; like executeFill, it emits no CALL of its own.
func (e *Engine) insertOnBook(order *Order) {
	e.tctx.enter()
	defer e.tctx.exit()

	e.book.Insert(order)
	e.emitBookAdd(order)
}
