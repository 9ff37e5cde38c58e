package quantify

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientStock occurs when an allocation would push a
	// day's remaining stock below zero.
	ErrInsufficientStock = errors.New("the allocated quantity exceeds the remaining stock for this date")

	// ErrQuantityNotPositive occurs when an allocation quantity is
	// zero or negative.
	ErrQuantityNotPositive = errors.New("the allocated quantity must be positive")
)

// Ledger tracks a single day's stock across successive allocations.
// It is not safe for concurrent use, callers serialize access, the
// controllers do so by applying it inside a database transaction.
type Ledger struct {
	remaining decimal.Decimal
}

// NewLedger returns a Ledger with the given opening quantity.
func NewLedger(available decimal.Decimal) *Ledger {
	return &Ledger{remaining: available}
}

// Remaining returns the quantity still available.
func (l *Ledger) Remaining() decimal.Decimal {
	return l.remaining
}

// Apply debits quantity from the ledger and returns the balance after
// the debit. The ledger is unchanged when an error is returned.
func (l *Ledger) Apply(quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return l.remaining, ErrQuantityNotPositive
	}

	balance := l.remaining.Sub(quantity)
	if balance.IsNegative() {
		return l.remaining, ErrInsufficientStock
	}

	l.remaining = balance
	return balance, nil
}
