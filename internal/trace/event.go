// Package trace implements the non-intrusive execution-tracing pipeline:
// a lossy single-producer/single-consumer ring buffer fed from fixed call
// sites in the matching core, and a background drain that formats events
// and reconstructs a best-effort replica of the book (the "virtual book")
// purely from what it reads off the ring, to render periodic snapshots
// without ever touching the engine's own structures.
package trace

import decimal "github.com/geseq/udecimal"

// EventType tags the payload carried by a TraceEvent.
type EventType byte

const (
	EventCall EventType = iota
	EventOrderIn
	EventExecReport
	EventBookAdd
	EventSnapshot
)

func (t EventType) String() string {
	switch t {
	case EventCall:
		return "CALL"
	case EventOrderIn:
		return "ORDER_IN"
	case EventExecReport:
		return "EXEC_REPORT"
	case EventBookAdd:
		return "BOOK_ADD"
	case EventSnapshot:
		return "SNAPSHOT"
	default:
		return "UNKNOWN"
	}
}

// TraceEvent is one pre-allocated ring slot. Every field is a value type
// (fixed-size array, string constant, decimal.Decimal, or integer) rather
// than a heap pointer into engine-owned state, so releasing a slot back to
// the producer never needs to scrub a reference to avoid pinning it (spec
// design note on reference lifetime in ring slots) — there simply isn't one
// to pin. A slot not in use for a given EventType just carries zero values
// for the fields that type doesn't need.
type TraceEvent struct {
	Type  EventType
	Depth int

	HasContextOrder bool
	ContextOrderID  [16]byte

	FunctionUUID string

	OrderID   [16]byte
	Side      string
	OrderType string
	ExecType  string

	HasPrice bool
	Price    decimal.Decimal

	Quantity           uint64
	OrderSize          uint64
	LastQuantity       uint64
	CumulativeQuantity uint64
	RemainingQuantity  uint64
}

func (e *TraceEvent) reset() {
	*e = TraceEvent{}
}
