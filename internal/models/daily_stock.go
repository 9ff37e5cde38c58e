package models

import (
	"errors"

	"github.com/fpda/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyStock is the quantity of prepared food available for
// distribution on a calendar day.
//
// Quantity is the starting stock as reported by the kitchen.
// Remaining is the balance after all committed allocations; it is
// only ever written together with allocations in one transaction.
type DailyStock struct {
	DefaultModel
	Date      types.Day       `gorm:"uniqueIndex:daily_stock_date"`
	Quantity  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Remaining decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CreatedBy string
}

var (
	ErrDailyStockNotUnique        = errors.New("stock has already been recorded for this date")
	ErrDailyStockQuantityNegative = errors.New("the stock quantity must not be negative")
)

func (s *DailyStock) AfterSave(_ *gorm.DB) error {
	if s.Quantity.IsNegative() || s.Remaining.IsNegative() {
		return ErrDailyStockQuantityNegative
	}

	return nil
}

// StockForDay returns the stock row for a day.
func StockForDay(db *gorm.DB, day types.Day) (DailyStock, error) {
	var stock DailyStock

	err := db.Where("date = ?", day).First(&stock).Error
	if err != nil {
		return DailyStock{}, err
	}

	return stock, nil
}

// LockStockForDay returns the stock row for a day, locked for update
// so that transactions debiting the same day serialize on it.
// SQLite ignores the locking clause, there the single connection
// already serializes access.
func LockStockForDay(tx *gorm.DB, day types.Day) (DailyStock, error) {
	return StockForDay(tx.Clauses(clause.Locking{Strength: "UPDATE"}), day)
}
