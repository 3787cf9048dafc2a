package common

import "github.com/shopspring/decimal"

// Price and Quantity are plain aliases over decimal.Decimal rather than a
// bespoke wrapper type: prices and quantities need every arithmetic and
// comparison operation decimal.Decimal already provides, and a wrapper
// would only add indirection without adding safety (callers still pass
// any Decimal where a Price or Quantity is expected). Exact decimal
// arithmetic is what price-level keying and fill accounting require;
// float64 is never used here.
type (
	Price    = decimal.Decimal
	Quantity = decimal.Decimal
)

// Zero is the shared zero value for both Price and Quantity.
var Zero = decimal.Zero

// MinQuantity returns the smaller of two quantities, used throughout the
// match loop to size a fill against both sides' outstanding quantity.
func MinQuantity(a, b Quantity) Quantity {
	if a.LessThan(b) {
		return a
	}
	return b
}
