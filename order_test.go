package matchcore

import (
	"testing"

	decimal "github.com/geseq/udecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderRejectsZeroQuantity(t *testing.T) {
	_, err := newOrder(NewOrderID(), Buy, Limit, decimal.New(10, 0), 0)
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)
}

func TestNewOrderRejectsLimitMissingPrice(t *testing.T) {
	_, err := newOrder(NewOrderID(), Buy, Limit, decimal.Zero, 10)
	assert.ErrorIs(t, err, ErrLimitMissingPrice)
}

func TestNewOrderRejectsUnknownSide(t *testing.T) {
	_, err := newOrder(NewOrderID(), Side(9), Limit, decimal.New(10, 0), 10)
	assert.ErrorIs(t, err, ErrUnknownSide)
}

func TestNewOrderRejectsUnknownType(t *testing.T) {
	_, err := newOrder(NewOrderID(), Buy, OrderType(9), decimal.New(10, 0), 10)
	assert.ErrorIs(t, err, ErrUnknownOrderType)
}

func TestNewOrderMarketZeroesPrice(t *testing.T) {
	o, err := newOrder(NewOrderID(), Buy, Market, decimal.New(10, 0), 10)
	require.NoError(t, err)
	assert.True(t, o.Price.IsZero())
}

func TestNewOrderValidLimit(t *testing.T) {
	id := NewOrderID()
	o, err := newOrder(id, Sell, Limit, decimal.New(100, 0), 50)
	require.NoError(t, err)
	assert.Equal(t, id, o.ID)
	assert.Equal(t, Sell, o.Side)
	assert.Equal(t, Limit, o.Type)
	assert.True(t, o.Price.Equal(decimal.New(100, 0)))
	assert.Equal(t, uint64(50), o.Quantity)
	assert.Equal(t, uint64(50), o.RemainingQuantity)
	assert.Equal(t, uint64(0), o.CumulativeQuantity)
	assert.False(t, o.IsFullyFilled())
}

func TestOrderApplyFillPartial(t *testing.T) {
	o, err := newOrder(NewOrderID(), Buy, Limit, decimal.New(10, 0), 100)
	require.NoError(t, err)

	o.applyFill(40)
	assert.Equal(t, uint64(60), o.RemainingQuantity)
	assert.Equal(t, uint64(40), o.CumulativeQuantity)
	assert.False(t, o.IsFullyFilled())
	assert.Equal(t, PartialFill, o.executionType())
}

func TestOrderApplyFillFull(t *testing.T) {
	o, err := newOrder(NewOrderID(), Buy, Limit, decimal.New(10, 0), 100)
	require.NoError(t, err)

	o.applyFill(100)
	assert.Equal(t, uint64(0), o.RemainingQuantity)
	assert.Equal(t, uint64(100), o.CumulativeQuantity)
	assert.True(t, o.IsFullyFilled())
	assert.Equal(t, FullFill, o.executionType())
}

func TestOrderApplyFillOverdrawPanics(t *testing.T) {
	o, err := newOrder(NewOrderID(), Buy, Limit, decimal.New(10, 0), 100)
	require.NoError(t, err)

	assert.Panics(t, func() { o.applyFill(101) })
}

func TestOrderApplyFillZeroPanics(t *testing.T) {
	o, err := newOrder(NewOrderID(), Buy, Limit, decimal.New(10, 0), 100)
	require.NoError(t, err)

	assert.Panics(t, func() { o.applyFill(0) })
}
