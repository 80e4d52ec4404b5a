package csvfeed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exchangecore/matchcore"
)

func TestReadOrdersParsesWellFormedLines(t *testing.T) {
	id := matchcore.NewOrderID()
	input := "orderId,side,orderType,quantity,price\n" +
		id.String() + ",BUY,LIMIT,10,100.50\n"

	orders, err := ReadOrders(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, id, orders[0].ID)
	assert.Equal(t, matchcore.Buy, orders[0].Side)
	assert.Equal(t, matchcore.Limit, orders[0].Type)
	assert.Equal(t, uint64(10), orders[0].Quantity)
}

func TestReadOrdersMarketAllowsEmptyPrice(t *testing.T) {
	id := matchcore.NewOrderID()
	input := "orderId,side,orderType,quantity,price\n" +
		id.String() + ",SELL,MARKET,5,\n"

	orders, err := ReadOrders(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, matchcore.Market, orders[0].Type)
}

func TestReadOrdersSkipsMalformedLinesAndContinues(t *testing.T) {
	id := matchcore.NewOrderID()
	input := "orderId,side,orderType,quantity,price\n" +
		"not-a-valid-id,BUY,LIMIT,10,100\n" +
		id.String() + ",BUY,LIMIT,0,100\n" + // non-positive quantity
		id.String() + ",BUY,LIMIT,10,\n" + // limit missing price
		id.String() + ",WRONG,LIMIT,10,100\n" + // unknown side
		id.String() + ",BUY,LIMIT,10,100\n" // well-formed

	var errs []error
	orders, err := ReadOrders(strings.NewReader(input), func(line int, e error) {
		errs = append(errs, e)
	})
	require.NoError(t, err)
	require.Len(t, orders, 1, "only the last, well-formed line should survive")
	assert.Len(t, errs, 4)
}

func TestReadOrdersRejectsWrongHeader(t *testing.T) {
	_, err := ReadOrders(strings.NewReader("a,b,c\n"), nil)
	assert.Error(t, err)
}
