package matching

import (
	"github.com/rs/zerolog/log"

	"github.com/kestrelmarkets/clob/internal/common"
	"github.com/kestrelmarkets/clob/internal/model"
)

// UpdateStatus implements the update_order_status administrative
// mutation (spec §4.4). Only the transition to Cancelled is accepted —
// equivalent to Cancel — since Open/PartiallyFilled/Closed must only
// ever be derived from the fill invariants, never assigned directly.
func (e *Engine) UpdateStatus(id common.OrderId, status common.OrderStatus) (model.Order, bool) {
	if status != common.Cancelled {
		return model.Order{}, false
	}
	o, ok := e.registry.Get(id)
	if !ok {
		return model.Order{}, false
	}
	if err := o.Cancel(e.clock.Now()); err != nil {
		return model.Order{}, false
	}
	return *o, true
}

// UpdateQuantity implements update_order_quantity (spec §4.4): mutates
// the registry entry's requested quantity and, if that closes the
// order out, removes it from the ladder.
func (e *Engine) UpdateQuantity(id common.OrderId, q common.Quantity) (model.Order, bool) {
	o, ok := e.registry.Get(id)
	if !ok {
		return model.Order{}, false
	}

	wasResting := o.Resting()
	price, side, item := o.Price, o.Side, o.ItemID

	if err := o.Resize(q, e.clock.Now()); err != nil {
		return model.Order{}, false
	}

	if wasResting && !o.Resting() {
		e.ladder.Remove(item, side, price, id)
	}
	return *o, true
}

// UpdatePrice implements update_order_price (spec §4.4, §9): rejects
// terminal orders outright, and internally cancel-and-replaces a
// resting order's ladder slot rather than mutating price in place
// (which would desynchronize the ladder's price-key invariant — the
// defect spec §9 calls out rather than replicate). Time priority is
// lost for the repriced order, which is the documented cost.
func (e *Engine) UpdatePrice(id common.OrderId, p common.Price) (model.Order, bool) {
	o, ok := e.registry.Get(id)
	if !ok {
		return model.Order{}, false
	}

	wasResting := o.Resting()
	oldPrice, side, item := o.Price, o.Side, o.ItemID

	if err := o.Reprice(p, e.clock.Now()); err != nil {
		return model.Order{}, false
	}

	if wasResting {
		if !e.ladder.Remove(item, side, oldPrice, id) {
			log.Warn().Str("order_id", id.String()).Msg("resting order missing from ladder during reprice")
		}
		e.ladder.Enqueue(item, side, p, id)
	}
	return *o, true
}
