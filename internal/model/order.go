// Package model defines the Order and Trade entities: the mutable
// execution state the matching core operates on, and the append-only
// record it produces.
package model

import (
	"errors"

	"github.com/kestrelmarkets/clob/internal/common"
)

// ErrAlreadyTerminal is returned by any mutation attempted against an
// order whose status is Closed or Cancelled (invariant 5: terminal
// states accept no further fills or mutations).
var ErrAlreadyTerminal = errors.New("order is already in a terminal state")

// ErrWouldUnderfill is returned by Resize when the requested quantity
// is below what has already been filled (would violate invariant 1:
// 0 <= quantity_filled <= quantity).
var ErrWouldUnderfill = errors.New("requested quantity is below quantity already filled")

// Order is the identity and execution record for one submission.
// Identity fields (ID, ItemID, UserID, Side, Type, TimeInForce,
// CreatedAt) never change after construction; the rest mutate as the
// order fills, rests, or is cancelled.
type Order struct {
	ID             common.OrderId
	ItemID         common.ItemId
	UserID         common.UserId
	Side           common.Side
	Type           common.OrderType
	TimeInForce    common.TimeInForce
	Price          common.Price
	Quantity       common.Quantity
	QuantityFilled common.Quantity
	Status         common.OrderStatus
	CreatedAt      common.Timestamp
	UpdatedAt      common.Timestamp
	ExpiresAt      *common.Timestamp
}

// Remaining is the outstanding, unfilled quantity.
func (o *Order) Remaining() common.Quantity {
	return o.Quantity.Sub(o.QuantityFilled)
}

// Fill accumulates a fill against the order and recomputes status per
// invariants 1-4. It refuses to operate on a terminal order and clamps
// an overfill so QuantityFilled never exceeds Quantity.
func (o *Order) Fill(qty common.Quantity, now common.Timestamp) error {
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}
	if qty.LessThanOrEqual(common.Zero) {
		return nil
	}
	o.QuantityFilled = o.QuantityFilled.Add(qty)
	if o.QuantityFilled.GreaterThan(o.Quantity) {
		o.QuantityFilled = o.Quantity
	}
	o.recomputeStatus()
	o.UpdatedAt = now
	return nil
}

// recomputeStatus sets Status from the fill ratio alone (invariants
// 2-4). Callers implementing a TIF override (IOC/FOK terminal states)
// must apply that override after calling this, not instead of it.
func (o *Order) recomputeStatus() {
	switch {
	case o.QuantityFilled.Equal(o.Quantity):
		o.Status = common.Closed
	case o.QuantityFilled.GreaterThan(common.Zero):
		o.Status = common.PartiallyFilled
	default:
		o.Status = common.Open
	}
}

// Cancel transitions the order to Cancelled. Refuses to operate on an
// order that is already terminal.
func (o *Order) Cancel(now common.Timestamp) error {
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}
	o.Status = common.Cancelled
	o.UpdatedAt = now
	return nil
}

// CloseAsTerminal forces the order to Closed without requiring full
// fill — the documented IOC override (spec §4.3 step 5): an IOC taker
// that fills any amount ends Closed even if quantity_filled < quantity.
func (o *Order) CloseAsTerminal(now common.Timestamp) {
	o.Status = common.Closed
	o.UpdatedAt = now
}

// Resting reports whether the order currently occupies a ladder slot.
func (o *Order) Resting() bool {
	return o.Status == common.Open || o.Status == common.PartiallyFilled
}

// Resize implements the update_order_quantity administrative mutation
// (spec §4.4): changes the requested quantity and recomputes status
// from the new fill ratio. Refuses to operate on a terminal order or to
// set a quantity below what's already filled.
func (o *Order) Resize(q common.Quantity, now common.Timestamp) error {
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}
	if q.LessThan(o.QuantityFilled) {
		return ErrWouldUnderfill
	}
	o.Quantity = q
	o.recomputeStatus()
	o.UpdatedAt = now
	return nil
}

// Reprice implements the registry-side half of update_order_price
// (spec §4.4): it only touches the stored price and UpdatedAt. Moving the
// ladder entry to match is the matching engine's responsibility, since
// Order itself has no visibility into the ladder.
func (o *Order) Reprice(p common.Price, now common.Timestamp) error {
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}
	o.Price = p
	o.UpdatedAt = now
	return nil
}
