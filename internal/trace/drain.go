package trace

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/exchangecore/matchcore/metrics"
)

const (
	pollParkInterval = 100 * time.Microsecond
	flushHighWater   = 64 * 1024
	shutdownTimeout  = 5 * time.Second
)

// drain is the sole consumer of the ring and the sole writer of the trace
// sink. Every field below is touched only from the drain goroutine, except
// stop and stopped, which carry shutdown signaling between goroutines.
type drain struct {
	ring   *ring
	book   *virtualBook
	sink   io.WriteCloser
	buf    *bufio.Writer
	buffered int

	cfg Config

	stop    chan struct{}
	stopped chan struct{}

	sinkFailed sync.Once
}

func newDrain(r *ring, cfg Config) (*drain, error) {
	sink, err := openSink(cfg)
	if err != nil {
		return nil, err
	}

	d := &drain{
		ring:    r,
		book:    newVirtualBook(),
		sink:    sink,
		buf:     bufio.NewWriterSize(sink, flushHighWater),
		cfg:     cfg,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	d.writeHeader()
	return d, nil
}

func openSink(cfg Config) (io.WriteCloser, error) {
	switch cfg.Output {
	case OutputNone:
		return nopSink{}, nil
	case OutputFile:
		f, err := os.Create(cfg.Logfile)
		if err != nil {
			return nil, fmt.Errorf("trace: open logfile: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("trace: unknown output %q", cfg.Output)
	}
}

type nopSink struct{}

func (nopSink) Write(p []byte) (int, error) { return len(p), nil }
func (nopSink) Close() error                { return nil }

func (d *drain) writeHeader() {
	fmt.Fprintln(d.buf, "=== Function Metadata ===")
	for _, fn := range functionRegistry {
		fmt.Fprintf(d.buf, "%s | %s | %s\n", fn.Name, fn.UUID, fn.Description)
	}
	fmt.Fprintln(d.buf, "=== Execution Trace ===")
}

// run is the drain's main loop. It returns when stop is closed and the ring
// has been fully drained.
func (d *drain) run() {
	defer close(d.stopped)

	for {
		select {
		case <-d.stop:
			d.drainFully()
			d.flush()
			return
		default:
		}

		e, ok := d.ring.poll()
		if !ok {
			time.Sleep(pollParkInterval)
			continue
		}
		d.handle(e)
		d.ring.release()
	}
}

// drainFully empties whatever remains in the ring without waiting for new
// events; used at shutdown so no already-published event is dropped just
// because the loop happened to be parked.
func (d *drain) drainFully() {
	for {
		e, ok := d.ring.poll()
		if !ok {
			return
		}
		d.handle(e)
		d.ring.release()
	}
}

func (d *drain) handle(e *TraceEvent) {
	switch e.Type {
	case EventBookAdd:
		d.book.handleBookAdd(e)
	case EventExecReport:
		d.book.handleExecReport(e)
	}
	d.appendLine(formatEvent(e, d.book, d.cfg.SnapshotLevels))
}

func (d *drain) appendLine(line string) {
	if line == "" {
		return
	}
	n, err := d.buf.WriteString(line)
	if err == nil {
		n2, err2 := d.buf.WriteString("\n")
		n += n2
		err = err2
	}
	if err != nil {
		d.onSinkFailure(err)
		return
	}
	d.buffered += n
	if d.buffered >= flushHighWater {
		d.flush()
	}
}

func (d *drain) flush() {
	if err := d.buf.Flush(); err != nil {
		d.onSinkFailure(err)
		return
	}
	d.buffered = 0
	metrics.DrainFlushesTotal.Inc()
}

// onSinkFailure switches to a null sink and logs a single diagnostic, per
// spec §7: a trace sink I/O failure never interrupts matching, and the
// drain doesn't keep retrying a broken sink on every subsequent line.
func (d *drain) onSinkFailure(err error) {
	d.sinkFailed.Do(func() {
		fmt.Fprintf(os.Stderr, "matchcore: trace sink write failed, switching to null sink: %v\n", err)
		_ = d.sink.Close()
		d.sink = nopSink{}
		d.buf = bufio.NewWriterSize(d.sink, flushHighWater)
	})
}

// shutdown signals the drain to stop, waits up to shutdownTimeout for it to
// exit, and performs a final best-effort drain from the calling goroutine if
// the timeout elapsed — the safety net spec §5 requires so no shutdown can
// silently lose events still sitting in the ring.
func (d *drain) shutdown() {
	close(d.stop)
	select {
	case <-d.stopped:
	case <-time.After(shutdownTimeout):
		d.drainFully()
		d.flush()
	}
	_ = d.sink.Close()
}

func formatEvent(e *TraceEvent, vb *virtualBook, snapshotLevels int) string {
	indent := strings.Repeat("  ", e.Depth)
	ctx := "N/A"
	if e.HasContextOrder {
		ctx = encodeOrderID(e.ContextOrderID)
	}

	var payload string
	switch e.Type {
	case EventOrderIn:
		payload = fmt.Sprintf("ORDER_IN | %s | %s | %s | qty=%d | price=%s",
			encodeOrderID(e.OrderID), e.Side, e.OrderType, e.Quantity, formatPrice(e))
	case EventCall:
		payload = fmt.Sprintf("CALL | %s", e.FunctionUUID)
	case EventExecReport:
		payload = fmt.Sprintf("EXEC_REPORT | %s | %s | %s | qty=%d | lastQty=%d | cumQty=%d | price=%s",
			encodeOrderID(e.OrderID), e.Side, e.ExecType, e.OrderSize, e.LastQuantity, e.CumulativeQuantity, formatPrice(e))
	case EventBookAdd:
		payload = fmt.Sprintf("BOOK_ADD | %s | %s | price=%s | remainingQty=%d | cumQty=%d",
			encodeOrderID(e.OrderID), e.Side, formatPrice(e), e.RemainingQuantity, e.CumulativeQuantity)
	case EventSnapshot:
		payload = vb.snapshot(snapshotLevels)
	default:
		return ""
	}

	return fmt.Sprintf("%s | %s%s", ctx, indent, payload)
}

func formatPrice(e *TraceEvent) string {
	if !e.HasPrice {
		return ""
	}
	return e.Price.String()
}

// encodeOrderID matches the CSV boundary's own encoding (spec §6: 22-char
// unpadded URL-safe Base64 of the 16 id bytes) so the trace log's ids are
// directly greppable against the input/output CSVs.
func encodeOrderID(id [16]byte) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}
