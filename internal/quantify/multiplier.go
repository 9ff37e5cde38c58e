// Package quantify implements the quantity derivation arithmetic:
// batch multipliers for purchase quantities, the allocation ledger
// and date range expansion for bulk entries.
package quantify

import (
	"github.com/shopspring/decimal"
)

// Multiplier returns the integer batch multiplier for a day.
//
// totalPockets is the day's total ordered pocket count,
// packetsPerBatch the recipe type's conversion constant (pockets per
// kg-equivalent batch). A packetsPerBatch of zero or less means no
// conversion data is available and yields 0, it is not an error.
func Multiplier(totalPockets, packetsPerBatch decimal.Decimal) int64 {
	if !packetsPerBatch.IsPositive() {
		return 0
	}

	return totalPockets.Div(packetsPerBatch).Ceil().IntPart()
}

// LineQuantity returns the concrete purchase quantity for an
// ingredient ratio. No rounding is applied, the whole-batch rounding
// already happened in the multiplier.
func LineQuantity(ratio decimal.Decimal, multiplier int64) decimal.Decimal {
	return ratio.Mul(decimal.NewFromInt(multiplier))
}
