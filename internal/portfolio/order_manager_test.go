package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderManager_MarketOrderFills(t *testing.T) {
	om := NewOrderManager(0.001)

	order := om.Submit("ZZZZ", OrderBuy, OrderMarket, 100, 0)
	require.Equal(t, OrderPending, order.Status)
	require.NotEmpty(t, order.ID)

	fill, err := om.Execute(order.ID, 50, day(0))
	require.NoError(t, err)
	require.NotNil(t, fill)

	assert.InDelta(t, 50.0, fill.Price, 1e-9)
	assert.InDelta(t, 100.0, fill.Quantity, 1e-9)
	assert.InDelta(t, 50*100*0.001, fill.Commission, 1e-9)

	got, ok := om.Get(order.ID)
	require.True(t, ok)
	assert.Equal(t, OrderFilled, got.Status)
	assert.InDelta(t, 50.0, got.FilledPrice, 1e-9)
}

func TestOrderManager_ZeroQuantityRejected(t *testing.T) {
	om := NewOrderManager(0)

	order := om.Submit("ZZZZ", OrderBuy, OrderMarket, 0, 0)
	assert.Equal(t, OrderRejected, order.Status)

	_, err := om.Execute(order.ID, 50, day(0))
	assert.Error(t, err)
}

func TestOrderManager_LimitBuyWaitsForPrice(t *testing.T) {
	om := NewOrderManager(0)

	order := om.Submit("ZZZZ", OrderBuy, OrderLimit, 10, 95)

	// Close above the limit: no fill, order stays pending.
	fill, err := om.Execute(order.ID, 100, day(0))
	require.NoError(t, err)
	assert.Nil(t, fill)
	assert.Len(t, om.Pending(), 1)

	// Close at the limit fills.
	fill, err = om.Execute(order.ID, 95, day(1))
	require.NoError(t, err)
	require.NotNil(t, fill)
	assert.InDelta(t, 95.0, fill.Price, 1e-9)
	assert.Empty(t, om.Pending())
}

func TestOrderManager_StopBuyTriggersAbove(t *testing.T) {
	om := NewOrderManager(0)

	order := om.Submit("ZZZZ", OrderBuy, OrderStop, 10, 105)

	fill, err := om.Execute(order.ID, 100, day(0))
	require.NoError(t, err)
	assert.Nil(t, fill)

	fill, err = om.Execute(order.ID, 106, day(1))
	require.NoError(t, err)
	require.NotNil(t, fill)
	assert.InDelta(t, 106.0, fill.Price, 1e-9)
}

func TestOrderManager_InvalidCloseRejectsOrder(t *testing.T) {
	om := NewOrderManager(0)

	order := om.Submit("ZZZZ", OrderBuy, OrderMarket, 10, 0)
	_, err := om.Execute(order.ID, 0, day(0))
	require.Error(t, err)

	got, _ := om.Get(order.ID)
	assert.Equal(t, OrderRejected, got.Status)
}

func TestOrderManager_Cancel(t *testing.T) {
	om := NewOrderManager(0)

	order := om.Submit("ZZZZ", OrderSell, OrderLimit, 10, 120)
	require.NoError(t, om.Cancel(order.ID))

	got, _ := om.Get(order.ID)
	assert.Equal(t, OrderCancelled, got.Status)

	// A cancelled order cannot be filled or cancelled again.
	_, err := om.Execute(order.ID, 125, day(0))
	assert.Error(t, err)
	assert.Error(t, om.Cancel(order.ID))
}

func TestOrderManager_UnknownOrder(t *testing.T) {
	om := NewOrderManager(0)

	_, err := om.Execute("no-such-id", 100, time.Now())
	assert.Error(t, err)
	assert.Error(t, om.Cancel("no-such-id"))

	_, ok := om.Get("no-such-id")
	assert.False(t, ok)
}
