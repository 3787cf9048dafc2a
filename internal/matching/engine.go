// Package matching is the CLOB matching core: the submit/validate/
// match/commit pipeline, the time-in-force policy, the market-order
// slippage guard, and the query/administrative-mutation surface. The
// sweep is staged and reversible: nothing in the registry or ladder
// changes until a match loop's result clears the time-in-force gate,
// which is what lets FOK discard a sweep wholesale instead of
// unwinding partial mutations.
package matching

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/kestrelmarkets/clob/internal/common"
	"github.com/kestrelmarkets/clob/internal/ladder"
	"github.com/kestrelmarkets/clob/internal/model"
	"github.com/kestrelmarkets/clob/internal/registry"
)

// defaultSlippageBound is the 5% default from spec §4.3/§9. Spec calls
// this "a local, overridable parameter" rather than a hardcoded
// constant, so it's exposed through WithSlippageBound.
var defaultSlippageBound = decimal.NewFromFloat(0.05)

// Engine is the matching core. It owns a registry and a ladder per
// engine instance (spec §5: no shared state across engine instances)
// and consults its Clock/IDGenerator collaborators fresh on every call.
type Engine struct {
	clock         common.Clock
	ids           common.IDGenerator
	registry      *registry.Registry
	ladder        *ladder.Ladder
	trades        []model.Trade
	slippageBound decimal.Decimal
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithSlippageBound overrides the default 5% market-order slippage
// guard (spec §9: "a local, overridable parameter").
func WithSlippageBound(bound decimal.Decimal) Option {
	return func(e *Engine) { e.slippageBound = bound }
}

// New constructs an Engine with the given injected Clock and
// IDGenerator collaborators.
func New(clock common.Clock, ids common.IDGenerator, opts ...Option) *Engine {
	e := &Engine{
		clock:         clock,
		ids:           ids,
		registry:      registry.New(),
		ladder:        ladder.New(),
		slippageBound: defaultSlippageBound,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateOrderRequest is the submission input (spec §6).
type CreateOrderRequest struct {
	ItemID      common.ItemId
	UserID      common.UserId
	Side        common.Side
	Type        common.OrderType
	Price       common.Price
	Quantity    common.Quantity
	TimeInForce common.TimeInForce
}

// Submit runs the full pipeline: validate, resolve market price,
// construct, staged match, time-in-force gate, commit. Returns the
// taker order's final snapshot, or an error if validation/slippage
// rejects the request outright (in which case no state changes at
// all — spec §7).
func (e *Engine) Submit(req CreateOrderRequest) (model.Order, error) {
	if req.Price.IsNegative() {
		return model.Order{}, ErrNegativePrice
	}
	if !req.Quantity.IsPositive() {
		return model.Order{}, ErrNonPositiveQty
	}

	if req.Type == common.Market {
		resolved, err := e.resolveMarketPrice(req.ItemID, req.Side, req.Price)
		if err != nil {
			return model.Order{}, err
		}
		req.Price = resolved
	}

	now := e.clock.Now()
	taker := &model.Order{
		ID:             e.ids.NewOrderID(),
		ItemID:         req.ItemID,
		UserID:         req.UserID,
		Side:           req.Side,
		Type:           req.Type,
		TimeInForce:    req.TimeInForce,
		Price:          req.Price,
		Quantity:       req.Quantity,
		QuantityFilled: common.Zero,
		Status:         common.Open,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      expiryFor(req.TimeInForce, now),
	}

	sweep := e.matchLoop(taker)

	if taker.TimeInForce == common.FOK && sweep.takerFilled().LessThan(taker.Quantity) {
		taker.Status = common.Cancelled
		taker.UpdatedAt = now
		if err := e.registry.Insert(taker); err != nil {
			log.Error().Err(err).Str("order_id", taker.ID.String()).Msg("failed to insert FOK-rejected order")
		}
		log.Warn().
			Str("order_id", taker.ID.String()).
			Str("requested", taker.Quantity.String()).
			Str("available", sweep.takerFilled().String()).
			Msg("FOK order rejected: insufficient liquidity to fill completely")
		return *taker, nil
	}

	e.commit(taker, sweep)

	log.Debug().
		Str("order_id", taker.ID.String()).
		Str("side", taker.Side.String()).
		Str("status", taker.Status.String()).
		Int("trades", len(sweep.trades)).
		Msg("order submitted")

	return *taker, nil
}

// resolveMarketPrice implements spec §4.3 step 2: discover the price
// from the opposing best, slippage-check it against the same-side
// reference, and return the resolved limit price a market order
// executes as.
func (e *Engine) resolveMarketPrice(item common.ItemId, side common.Side, _ common.Price) (common.Price, error) {
	opposing, ok := e.ladder.Best(item, side.Opposite())
	if !ok {
		return common.Zero, ErrNoLiquidity
	}

	if ref, ok := e.ladder.Best(item, side); ok && !ref.IsZero() {
		deviation := opposing.Sub(ref).Abs().Div(ref)
		if deviation.GreaterThan(e.slippageBound) {
			log.Warn().
				Str("reference", ref.String()).
				Str("opposing", opposing.String()).
				Str("deviation", deviation.String()).
				Msg("market order rejected: slippage bound exceeded")
			return common.Zero, ErrSlippage
		}
	}

	return opposing, nil
}

// expiryFor implements spec §3 invariant 7: DAY expires 24h out, IOC
// expires immediately (it never truly rests), GTC/FOK carry none.
func expiryFor(tif common.TimeInForce, now common.Timestamp) *common.Timestamp {
	switch tif {
	case common.DAY:
		t := now.Add(dayDuration)
		return &t
	case common.IOC:
		t := now
		return &t
	default:
		return nil
	}
}

// MarketPrice returns the current best price on (item, side), the
// get_current_market_price query from spec §4.4.
func (e *Engine) MarketPrice(item common.ItemId, side common.Side) (common.Price, bool) {
	return e.ladder.Best(item, side)
}

// GetOrder is the point-read query from spec §4.4.
func (e *Engine) GetOrder(id common.OrderId) (model.Order, bool) {
	return e.registry.Snapshot(id)
}

// GetOrders returns a snapshot of every order known to the registry.
func (e *Engine) GetOrders() []model.Order {
	return e.registry.All()
}

// Trades returns the append-only trade log in append order.
func (e *Engine) Trades() []model.Trade {
	out := make([]model.Trade, len(e.trades))
	copy(out, e.trades)
	return out
}

// Cancel implements cancel_order (spec §4.4): flips a non-terminal
// order to Cancelled and leaves its ladder slot as a tombstone for the
// match loop to absorb later (§9).
func (e *Engine) Cancel(id common.OrderId) bool {
	o, ok := e.registry.Get(id)
	if !ok {
		return false
	}
	if err := o.Cancel(e.clock.Now()); err != nil {
		return false
	}
	log.Debug().Str("order_id", id.String()).Msg("order cancelled")
	return true
}
