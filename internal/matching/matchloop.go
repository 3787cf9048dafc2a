package matching

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kestrelmarkets/clob/internal/common"
	"github.com/kestrelmarkets/clob/internal/model"
)

// dayDuration is how long a DAY order is valid for (spec §3 invariant
// 7). DAY expiration sweeping itself is a declared non-goal (spec §1);
// this value is only ever stamped onto ExpiresAt as advisory metadata.
const dayDuration = 24 * time.Hour

// popInstruction records how many consecutive heads to pop off one
// opposing price level once a sweep commits. Staging this instead of
// popping immediately is what keeps a sweep reversible for FOK.
type popInstruction struct {
	price common.Price
	count int
}

// sweep is the staged result of one match loop: fill deltas keyed by
// maker ID, the trades those fills produced, and the ladder pops the
// commit step must apply. Nothing here touches the registry or the
// ladder — that only happens in commit, and only if the TIF gate lets
// it through.
type sweep struct {
	fills     map[common.OrderId]common.Quantity
	trades    []model.Trade
	pops      []popInstruction
	takerFill common.Quantity
}

func (s *sweep) takerFilled() common.Quantity { return s.takerFill }

// matchLoop implements spec §4.3 step 4: snapshot the opposing ladder's
// price levels once, then walk each crossable level's FIFO queue from
// the head, staging fills and trades without mutating the registry or
// ladder.
func (e *Engine) matchLoop(taker *model.Order) *sweep {
	s := &sweep{
		fills:     make(map[common.OrderId]common.Quantity),
		takerFill: common.Zero,
	}

	opposite := taker.Side.Opposite()
	remaining := taker.Quantity

	for _, px := range e.ladder.Levels(taker.ItemID, opposite) {
		if !remaining.IsPositive() {
			break
		}
		if !crosses(taker.Side, taker.Price, px) {
			break
		}

		queue := e.ladder.Queue(taker.ItemID, opposite, px)
		consumed := 0

		for _, makerID := range queue {
			if !remaining.IsPositive() {
				break
			}

			maker, found := e.registry.Get(makerID)
			if !found || maker.Status.Terminal() {
				consumed++
				continue
			}

			outstanding := maker.Remaining().Sub(s.fills[makerID])
			if !outstanding.IsPositive() {
				consumed++
				continue
			}

			fill := common.MinQuantity(remaining, outstanding)
			s.fills[makerID] = s.fills[makerID].Add(fill)
			remaining = remaining.Sub(fill)
			s.takerFill = s.takerFill.Add(fill)

			s.trades = append(s.trades, buildTrade(taker, maker, px, fill))

			if s.fills[makerID].Equal(maker.Remaining()) {
				consumed++
			}
		}

		if consumed > 0 {
			s.pops = append(s.pops, popInstruction{price: px, count: consumed})
		}
	}

	return s
}

// crosses implements spec §4.3 step 4's cross check: a Buy taker
// crosses when the opposing price is at or below its limit; a Sell
// taker crosses when the opposing price is at or above its limit.
// Equality crosses in both directions.
func crosses(side common.Side, takerPrice, opposingPrice common.Price) bool {
	if side == common.Buy {
		return opposingPrice.LessThanOrEqual(takerPrice)
	}
	return opposingPrice.GreaterThanOrEqual(takerPrice)
}

// buildTrade assigns buy/sell order IDs by taker side; price is always
// the maker's (resting) price, per spec §3.
func buildTrade(taker, maker *model.Order, price common.Price, qty common.Quantity) model.Trade {
	buyID, sellID := taker.ID, maker.ID
	if taker.Side == common.Sell {
		buyID, sellID = maker.ID, taker.ID
	}
	return model.Trade{
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		ItemID:      taker.ItemID,
		Quantity:    qty,
		Price:       price,
	}
}

// commit applies a staged sweep: update makers, pop consumed ladder
// heads, append trades, set the taker's final state, and rest the
// taker if its policy allows. This is spec §4.3 step 6.
func (e *Engine) commit(taker *model.Order, s *sweep) {
	now := e.clock.Now()

	for makerID, qty := range s.fills {
		maker, ok := e.registry.Get(makerID)
		if !ok {
			continue
		}
		_ = maker.Fill(qty, now)
	}

	for _, pop := range s.pops {
		for i := 0; i < pop.count; i++ {
			e.ladder.PopHead(taker.ItemID, taker.Side.Opposite())
		}
	}

	for i := range s.trades {
		s.trades[i].ID = e.ids.NewTradeID()
		s.trades[i].Timestamp = now
		log.Info().
			Str("trade_id", s.trades[i].ID.String()).
			Str("price", s.trades[i].Price.String()).
			Str("quantity", s.trades[i].Quantity.String()).
			Msg("trade committed")
	}
	e.trades = append(e.trades, s.trades...)

	_ = taker.Fill(s.takerFill, now)
	applyTimeInForce(taker, s, now)

	if err := e.registry.Insert(taker); err != nil {
		taker.Status = common.Cancelled
		return
	}

	if taker.TimeInForce.Rests() && taker.Resting() {
		e.ladder.Enqueue(taker.ItemID, taker.Side, taker.Price, taker.ID)
	}
}

// applyTimeInForce implements spec §4.3 step 5's IOC override: any
// unfilled remainder is never rested, and the taker ends Closed if it
// filled at all, Cancelled otherwise — overriding the usual fill-ratio
// invariant for this one TIF. A FOK taker that could not fill completely
// was already rejected by the caller, so one that reaches commit is fully
// filled; FOK, GTC and DAY need no adjustment beyond the fill-ratio
// status commit() already applied via taker.Fill.
func applyTimeInForce(taker *model.Order, s *sweep, now common.Timestamp) {
	if taker.TimeInForce != common.IOC {
		return
	}
	if s.takerFill.IsPositive() {
		taker.CloseAsTerminal(now)
		return
	}
	_ = taker.Cancel(now)
}
