package trace

import "github.com/exchangecore/matchcore/metrics"

// Tracer is the engine-side handle onto the tracing pipeline: it owns the
// ring, starts and stops the drain goroutine, and gates emission on
// Config.Emit. A nil *Tracer is not valid; use NewTracer with Config{Emit:
// false} to get a tracer that maintains no ring and does no I/O while still
// giving the engine a uniform call surface.
type Tracer struct {
	cfg   Config
	ring  *ring
	drain *drain
}

// NewTracer starts the drain goroutine (unless cfg.Emit is false, in which
// case there is nothing to drain) and returns a ready-to-use Tracer.
func NewTracer(cfg Config) (*Tracer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Tracer{cfg: cfg}
	if !cfg.Emit {
		return t, nil
	}

	t.ring = newRing(cfg.ringCapacity())
	d, err := newDrain(t.ring, cfg)
	if err != nil {
		return nil, err
	}
	t.drain = d
	go d.run()
	return t, nil
}

// Emitting reports whether the tracer will actually claim ring slots. The
// engine can use this to skip building TraceEvent values entirely when
// tracing is off, rather than constructing values it's about to discard.
func (t *Tracer) Emitting() bool { return t.cfg.Emit }

// SnapshotInterval returns the configured number of submissions between
// SNAPSHOT events.
func (t *Tracer) SnapshotInterval() uint64 { return t.cfg.SnapshotInterval }

// Emit claims a single slot, copies ev into it, and publishes immediately.
// It reports whether the event was actually recorded; false means the ring
// was full and the event was dropped, which is expected under load and not
// an error the caller needs to react to.
func (t *Tracer) Emit(ev TraceEvent) bool {
	if !t.cfg.Emit {
		return false
	}
	slot, ok := t.ring.claim()
	if !ok {
		metrics.RingEventsDropped.Inc()
		return false
	}
	*slot = ev
	t.ring.publish()
	metrics.RingEventsPublished.Inc()
	return true
}

// EmitBatch claims a slot for every event in evs and publishes once, so all
// of them become visible to the drain atomically (spec §4.4 batching). If
// the ring cannot hold every event, none of them are claimed.
func (t *Tracer) EmitBatch(evs ...TraceEvent) bool {
	if !t.cfg.Emit {
		return false
	}
	slots, ok := t.ring.claimN(uint64(len(evs)))
	if !ok {
		metrics.RingEventsDropped.Add(float64(len(evs)))
		return false
	}
	for i, ev := range evs {
		*slots[i] = ev
	}
	t.ring.publish()
	metrics.RingEventsPublished.Add(float64(len(evs)))
	return true
}

// Shutdown stops the drain (if one was started) per the bounded-join
// protocol in spec §5.
func (t *Tracer) Shutdown() {
	if t.drain != nil {
		t.drain.shutdown()
	}
}
