package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerEmitDisabledNeverStartsDrain(t *testing.T) {
	tr, err := NewTracer(Config{Output: OutputNone, SnapshotInterval: 1, Emit: false})
	require.NoError(t, err)
	assert.False(t, tr.Emitting())
	assert.False(t, tr.Emit(TraceEvent{Type: EventCall}))
	tr.Shutdown() // must not panic with no drain attached
}

func TestTracerEmitBatchIsAllOrNothing(t *testing.T) {
	tr, err := NewTracer(Config{Output: OutputNone, SnapshotInterval: 1, Emit: true, RingCapacity: 2})
	require.NoError(t, err)
	defer tr.Shutdown()

	ok := tr.EmitBatch(TraceEvent{Type: EventOrderIn}, TraceEvent{Type: EventCall}, TraceEvent{Type: EventCall})
	assert.False(t, ok, "batch bigger than the ring must be rejected wholesale")
}

func TestTracerWritesHeaderAndLinesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.log")

	tr, err := NewTracer(Config{Output: OutputFile, Logfile: path, SnapshotInterval: 1, Emit: true})
	require.NoError(t, err)

	ok := tr.Emit(TraceEvent{Type: EventCall, FunctionUUID: FnSubmit})
	require.True(t, ok)

	tr.Shutdown()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Submit | "+FnSubmit)
	assert.Contains(t, string(data), "CALL | "+FnSubmit)
}

func TestTracerConfigValidation(t *testing.T) {
	_, err := NewTracer(Config{Output: "bogus", SnapshotInterval: 1})
	assert.Error(t, err)

	_, err = NewTracer(Config{Output: OutputFile, SnapshotInterval: 1})
	assert.Error(t, err, "output=file with no logfile must be rejected")

	_, err = NewTracer(Config{Output: OutputNone, SnapshotInterval: 0})
	assert.Error(t, err, "snapshot interval of 0 must be rejected")
}
