package trace

import (
	"testing"

	decimal "github.com/geseq/udecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oid(b byte) [16]byte {
	var id [16]byte
	id[0] = b
	return id
}

func TestVirtualBookBookAddThenFullFillRemovesLevel(t *testing.T) {
	vb := newVirtualBook()

	vb.handleBookAdd(&TraceEvent{
		OrderID: oid(1), Side: "BUY", Price: decimal.New(100, 0), RemainingQuantity: 10,
	})
	agg, ok := vb.bids.Get(decimal.New(100, 0))
	require.True(t, ok)
	assert.Equal(t, uint64(10), agg.totalQty)
	assert.Equal(t, 1, agg.orderCount)

	vb.handleExecReport(&TraceEvent{OrderID: oid(1), LastQuantity: 10})

	assert.True(t, vb.bids.Empty())
	_, tracked := vb.orders[oid(1)]
	assert.False(t, tracked)
}

func TestVirtualBookPartialFillKeepsLevel(t *testing.T) {
	vb := newVirtualBook()
	vb.handleBookAdd(&TraceEvent{
		OrderID: oid(1), Side: "SELL", Price: decimal.New(50, 0), RemainingQuantity: 10,
	})
	vb.handleExecReport(&TraceEvent{OrderID: oid(1), LastQuantity: 4})

	agg, ok := vb.asks.Get(decimal.New(50, 0))
	require.True(t, ok)
	assert.Equal(t, uint64(6), agg.totalQty)
	assert.Equal(t, 1, agg.orderCount)
	_, tracked := vb.orders[oid(1)]
	assert.True(t, tracked)
}

func TestVirtualBookExecReportForUntrackedOrderIsIgnored(t *testing.T) {
	vb := newVirtualBook()
	// No BOOK_ADD ever arrived for this id; must not panic or create state.
	vb.handleExecReport(&TraceEvent{OrderID: oid(9), LastQuantity: 5})
	assert.True(t, vb.bids.Empty())
	assert.True(t, vb.asks.Empty())
}

func TestSnapshotZeroLevelsRendersEmpty(t *testing.T) {
	vb := newVirtualBook()
	vb.handleBookAdd(&TraceEvent{OrderID: oid(1), Side: "BUY", Price: decimal.New(100, 0), RemainingQuantity: 10})

	assert.Equal(t, "SNAPSHOT | Buy: [] Sell: []", vb.snapshot(0))
}

func TestSnapshotOrdersBidsHighestFirst(t *testing.T) {
	vb := newVirtualBook()
	vb.handleBookAdd(&TraceEvent{OrderID: oid(1), Side: "BUY", Price: decimal.New(100, 0), RemainingQuantity: 5})
	vb.handleBookAdd(&TraceEvent{OrderID: oid(2), Side: "BUY", Price: decimal.New(101, 0), RemainingQuantity: 5})

	got := vb.snapshot(5)
	assert.Contains(t, got, "101:5(1), 100:5(1)")
}
