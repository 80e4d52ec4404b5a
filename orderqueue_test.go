package matchcore

import (
	"testing"

	decimal "github.com/geseq/udecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrder(t *testing.T, side Side, price decimal.Decimal, qty uint64) *Order {
	t.Helper()
	o, err := newOrder(NewOrderID(), side, Limit, price, qty)
	require.NoError(t, err)
	return o
}

func TestOrderQueueAppendMaintainsFIFO(t *testing.T) {
	price := decimal.New(100, 0)
	q := newOrderQueue(price)

	a := mustOrder(t, Buy, price, 10)
	b := mustOrder(t, Buy, price, 20)
	c := mustOrder(t, Buy, price, 30)

	q.Append(a)
	q.Append(b)
	q.Append(c)

	assert.Equal(t, uint64(3), q.Len())
	assert.Equal(t, uint64(60), q.TotalQty())
	assert.Same(t, a, q.Head())
}

func TestOrderQueueRemoveFromMiddle(t *testing.T) {
	price := decimal.New(100, 0)
	q := newOrderQueue(price)

	a := mustOrder(t, Buy, price, 10)
	b := mustOrder(t, Buy, price, 20)
	c := mustOrder(t, Buy, price, 30)
	q.Append(a)
	q.Append(b)
	q.Append(c)

	q.Remove(b)

	assert.Equal(t, uint64(2), q.Len())
	assert.Same(t, a, q.Head())
	assert.Same(t, c, a.next)
	assert.Same(t, a, c.prev)
}

func TestOrderQueueRemoveHeadAdvances(t *testing.T) {
	price := decimal.New(100, 0)
	q := newOrderQueue(price)

	a := mustOrder(t, Buy, price, 10)
	b := mustOrder(t, Buy, price, 20)
	q.Append(a)
	q.Append(b)

	q.Remove(a)
	assert.Same(t, b, q.Head())
}

func TestOrderQueueEmptyAfterRemovingAll(t *testing.T) {
	price := decimal.New(100, 0)
	q := newOrderQueue(price)

	a := mustOrder(t, Buy, price, 10)
	q.Append(a)
	q.Remove(a)

	assert.True(t, q.Empty())
	assert.Nil(t, q.Head())
}

func TestOrderQueueReduceQty(t *testing.T) {
	price := decimal.New(100, 0)
	q := newOrderQueue(price)

	a := mustOrder(t, Buy, price, 10)
	q.Append(a)
	q.reduceQty(4)

	assert.Equal(t, uint64(6), q.TotalQty())
}
