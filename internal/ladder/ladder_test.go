package ladder_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kestrelmarkets/clob/internal/common"
	"github.com/kestrelmarkets/clob/internal/ladder"
)

func price(v string) common.Price { return decimal.RequireFromString(v) }

func newUUID() uuid.UUID    { return uuid.New() }
func newID() common.OrderId { return common.OrderId(newUUID()) }

func TestEnqueueOrdersByPriceThenTime(t *testing.T) {
	l := ladder.New()
	item := common.ItemId(newUUID())

	a, b, c := newID(), newID(), newID()
	l.Enqueue(item, common.Buy, price("99"), a)
	l.Enqueue(item, common.Buy, price("99"), b)
	l.Enqueue(item, common.Buy, price("100"), c)

	best, ok := l.Best(item, common.Buy)
	assert.True(t, ok)
	assert.True(t, best.Equal(price("100")), "bids should rank 100 above 99")

	assert.Equal(t, []common.Price{price("100"), price("99")}, l.Levels(item, common.Buy))
	assert.Equal(t, []common.OrderId{a, b}, l.Queue(item, common.Buy, price("99")))
}

func TestAsksAscendByPrice(t *testing.T) {
	l := ladder.New()
	item := common.ItemId(newUUID())

	l.Enqueue(item, common.Sell, price("101"), newID())
	l.Enqueue(item, common.Sell, price("100"), newID())

	best, ok := l.Best(item, common.Sell)
	assert.True(t, ok)
	assert.True(t, best.Equal(price("100")), "asks should rank 100 below 101")
}

func TestPopHeadRemovesEmptyLevel(t *testing.T) {
	l := ladder.New()
	item := common.ItemId(newUUID())
	id := newID()
	l.Enqueue(item, common.Buy, price("50"), id)

	l.PopHead(item, common.Buy)

	_, ok := l.Best(item, common.Buy)
	assert.False(t, ok, "level should be gone once its only order is popped")
}

func TestRemoveSpecificOrder(t *testing.T) {
	l := ladder.New()
	item := common.ItemId(newUUID())
	a, b := newID(), newID()
	l.Enqueue(item, common.Buy, price("50"), a)
	l.Enqueue(item, common.Buy, price("50"), b)

	ok := l.Remove(item, common.Buy, price("50"), a)
	assert.True(t, ok)
	assert.Equal(t, []common.OrderId{b}, l.Queue(item, common.Buy, price("50")))

	assert.False(t, l.Remove(item, common.Buy, price("50"), a), "already removed")
}

func TestPeekHeadEmptySide(t *testing.T) {
	l := ladder.New()
	item := common.ItemId(newUUID())

	_, ok := l.PeekHead(item, common.Sell)
	assert.False(t, ok)
}
