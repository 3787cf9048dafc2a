package matching

import "errors"

// These are the exact, user-visible validation/no-liquidity/slippage
// error strings from spec §6. Submit returns these sentinels unwrapped,
// so callers and tests match them with errors.Is; the wording is part of
// the user-visible surface and must not drift.
var (
	ErrNegativePrice  = errors.New("Price cannot be negative")
	ErrNonPositiveQty = errors.New("Quantity must be greater than zero")
	ErrNoLiquidity    = errors.New("Market order cannot be placed without any existing orders to determine price")
	ErrSlippage       = errors.New("Market order price cannot be more than 5% away from the current market price...")
)
