package trace

// Function identifiers are static constants standing in for the
// compile-time-resolved uuids the original instrumentation generated for
// each traced call site. There is no bytecode rewriting here: the matching
// core calls Tracer methods directly at the sites named in each
// description below.
const (
	FnSubmit       = "7c1e9b4a-2f3d-4a5e-8b6c-1d2e3f4a5b6c"
	FnMatchLoop    = "9a2f7c3e-5b4d-4e6f-9a1b-2c3d4e5f6a7b"
	FnRestOrCancel = "3d5e7f9a-1b2c-4d3e-8f5a-6b7c8d9e0f1a"
	FnExecuteFill  = "5f7a9b1c-3d4e-4f5a-9b6c-7d8e9f0a1b2c"
	FnInsert       = "1b3d5f7a-9c0e-4d1f-8a2b-3c4d5e6f7a8b"
)

// functionMeta describes one traced function for the trace log's header
// section (spec §6: "a header section listing {functionName, uuid,
// description} tuples for each traced operation").
type functionMeta struct {
	Name        string
	UUID        string
	Description string
}

var functionRegistry = []functionMeta{
	{Name: "Submit", UUID: FnSubmit, Description: "entry point for a single incoming order"},
	{Name: "matchLoop", UUID: FnMatchLoop, Description: "walks the opposite side of the book generating fills"},
	{Name: "restOrCancel", UUID: FnRestOrCancel, Description: "rests remaining LIMIT quantity or cancels remaining MARKET quantity"},
	{Name: "executeFill", UUID: FnExecuteFill, Description: "applies one fill to both sides and appends execution reports"},
	{Name: "OrderBook.Insert", UUID: FnInsert, Description: "rests an order in its price level's FIFO queue"},
}
