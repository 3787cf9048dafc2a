package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelmarkets/clob/internal/common"
	"github.com/kestrelmarkets/clob/internal/model"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newOpenOrder(price, quantity string) *model.Order {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.Order{
		ID:             common.OrderId(uuid.New()),
		ItemID:         common.ItemId(uuid.New()),
		UserID:         common.UserId(uuid.New()),
		Side:           common.Buy,
		Type:           common.Limit,
		TimeInForce:    common.GTC,
		Price:          d(price),
		Quantity:       d(quantity),
		QuantityFilled: common.Zero,
		Status:         common.Open,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestFill_PartialThenFullTransitionsStatus(t *testing.T) {
	o := newOpenOrder("100", "10")
	now := time.Now()

	require.NoError(t, o.Fill(d("4"), now))
	assert.Equal(t, common.PartiallyFilled, o.Status)
	assert.True(t, o.QuantityFilled.Equal(d("4")))
	assert.True(t, o.Remaining().Equal(d("6")))

	require.NoError(t, o.Fill(d("6"), now))
	assert.Equal(t, common.Closed, o.Status)
	assert.True(t, o.Remaining().IsZero())
}

func TestFill_ClampsOverfillToQuantity(t *testing.T) {
	o := newOpenOrder("100", "10")

	require.NoError(t, o.Fill(d("15"), time.Now()))
	assert.True(t, o.QuantityFilled.Equal(d("10")))
	assert.Equal(t, common.Closed, o.Status)
}

func TestFill_RefusesTerminalOrder(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Cancel(time.Now()))

	err := o.Fill(d("1"), time.Now())
	assert.ErrorIs(t, err, model.ErrAlreadyTerminal)
}

func TestCancel_RefusesAlreadyTerminal(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Cancel(time.Now()))

	err := o.Cancel(time.Now())
	assert.ErrorIs(t, err, model.ErrAlreadyTerminal)
}

func TestCloseAsTerminal_ForcesClosedRegardlessOfFillRatio(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Fill(d("3"), time.Now()))

	o.CloseAsTerminal(time.Now())
	assert.Equal(t, common.Closed, o.Status)
	assert.True(t, o.QuantityFilled.Equal(d("3")))
}

func TestResting_TrueForOpenAndPartiallyFilledOnly(t *testing.T) {
	o := newOpenOrder("100", "10")
	assert.True(t, o.Resting())

	require.NoError(t, o.Fill(d("4"), time.Now()))
	assert.True(t, o.Resting())

	require.NoError(t, o.Fill(d("6"), time.Now()))
	assert.False(t, o.Resting())
}

func TestResize_RecomputesStatusFromNewQuantity(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Fill(d("4"), time.Now()))

	require.NoError(t, o.Resize(d("4"), time.Now()))
	assert.Equal(t, common.Closed, o.Status)
}

func TestResize_RejectsBelowAlreadyFilled(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Fill(d("4"), time.Now()))

	err := o.Resize(d("3"), time.Now())
	assert.ErrorIs(t, err, model.ErrWouldUnderfill)
	assert.True(t, o.Quantity.Equal(d("10")), "rejected resize must not mutate quantity")
}

func TestResize_RefusesTerminalOrder(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Cancel(time.Now()))

	err := o.Resize(d("5"), time.Now())
	assert.ErrorIs(t, err, model.ErrAlreadyTerminal)
}

func TestReprice_OnlyTouchesPrice(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Reprice(d("105"), time.Now()))

	assert.True(t, o.Price.Equal(d("105")))
	assert.Equal(t, common.Open, o.Status)
	assert.True(t, o.QuantityFilled.IsZero())
}

func TestReprice_RefusesTerminalOrder(t *testing.T) {
	o := newOpenOrder("100", "10")
	require.NoError(t, o.Cancel(time.Now()))

	err := o.Reprice(d("105"), time.Now())
	assert.ErrorIs(t, err, model.ErrAlreadyTerminal)
}
