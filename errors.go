package matchcore

import "errors"

// Input-validation errors. These are boundary errors: the CSV reader (or any
// other order source) reports them and skips the offending line. Submit
// also returns them for an order that fails the same checks, without
// touching the book or the report log (spec §4.2 step 1).
var (
	ErrNonPositiveQuantity = errors.New("matchcore: quantity must be positive")
	ErrLimitMissingPrice   = errors.New("matchcore: LIMIT order requires a price")
	ErrUnknownSide         = errors.New("matchcore: unknown side")
	ErrUnknownOrderType    = errors.New("matchcore: unknown order type")
)

// fatalError marks an engine invariant violation: an invalid fill quantity,
// a broken quantity invariant, or a crossed book after a submission
// completed. These are unrecoverable by design (spec §4.2, §7) — the engine
// panics with a fatalError rather than attempt to heal state, and the only
// correct response from a caller is to end the run. It is a distinct type
// (not a plain string or errors.New value), so a recover() can tell it
// apart from an ordinary panic; the CLI driver's recover does not make that
// distinction and ends the run with a non-zero exit code on any panic.
type fatalError struct {
	msg string
}

func (e fatalError) Error() string { return "matchcore: fatal: " + e.msg }

func fatal(msg string) {
	panic(fatalError{msg: msg})
}
