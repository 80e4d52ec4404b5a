package matchcore

import (
	"github.com/exchangecore/matchcore/internal/trace"
)

// This file implements the trace emission hooks fixed by spec §4.6. Every
// method here is a thin, cheap-to-skip wrapper: when e.tracer is nil or not
// emitting, none of them build a TraceEvent at all.

func (e *Engine) tracing() bool {
	return e.tracer != nil && e.tracer.Emitting()
}

func (e *Engine) baseEvent(t trace.EventType) trace.TraceEvent {
	ev := trace.TraceEvent{Type: t, Depth: e.tctx.depth}
	if e.tctx.haveOrder {
		ev.HasContextOrder = true
		ev.ContextOrderID = e.tctx.currentOrderID
	}
	return ev
}

// emitOrderInAndCall implements the merged ORDER_IN+CALL batch emitted at
// submit(order) entry when depth=0.
func (e *Engine) emitOrderInAndCall(order *Order) {
	if !e.tracing() {
		return
	}
	orderIn := e.baseEvent(trace.EventOrderIn)
	orderIn.OrderID = order.ID
	orderIn.Side = order.Side.String()
	orderIn.OrderType = order.Type.String()
	orderIn.Quantity = order.Quantity
	if order.Type == Limit {
		orderIn.HasPrice = true
		orderIn.Price = order.Price
	}

	call := e.baseEvent(trace.EventCall)
	call.FunctionUUID = trace.FnSubmit

	e.tracer.EmitBatch(orderIn, call)
}

func (e *Engine) emitCall(functionUUID string) {
	if !e.tracing() {
		return
	}
	ev := e.baseEvent(trace.EventCall)
	ev.FunctionUUID = functionUUID
	e.tracer.Emit(ev)
}

func (e *Engine) emitExecReport(r ExecutionReport) {
	if !e.tracing() {
		return
	}
	ev := e.baseEvent(trace.EventExecReport)
	ev.OrderID = r.OrderID
	ev.Side = r.Side.String()
	ev.ExecType = r.Type.String()
	ev.OrderSize = r.OrderSize
	ev.LastQuantity = r.LastQuantity
	ev.CumulativeQuantity = r.CumulativeQuantity
	if r.HasPrice() {
		ev.HasPrice = true
		ev.Price = r.Price
	}
	e.tracer.Emit(ev)
}

func (e *Engine) emitBookAdd(order *Order) {
	if !e.tracing() {
		return
	}
	ev := e.baseEvent(trace.EventBookAdd)
	ev.OrderID = order.ID
	ev.Side = order.Side.String()
	ev.HasPrice = true
	ev.Price = order.Price
	ev.RemainingQuantity = order.RemainingQuantity
	ev.CumulativeQuantity = order.CumulativeQuantity
	e.tracer.Emit(ev)
}

func (e *Engine) maybeSnapshot() {
	if !e.tracing() {
		return
	}
	interval := e.tracer.SnapshotInterval()
	if interval == 0 || e.tctx.orderCounter%interval != 0 {
		return
	}
	ev := e.baseEvent(trace.EventSnapshot)
	e.tracer.Emit(ev)
}

