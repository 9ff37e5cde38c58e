package models

import (
	"errors"
	"strings"

	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation assigns a part of a day's available stock to a
// location.
//
// Balance is a snapshot of the day's remaining stock after this
// allocation was applied, not a live value. The sum of Quantity over
// a day's allocations never exceeds that day's starting stock; this
// is enforced by creating allocations through the ledger in a single
// transaction.
type Allocation struct {
	DefaultModel
	Date         types.Day  `gorm:"uniqueIndex:allocation_date_location"`
	Location     Location   `json:"-"`
	LocationID   uuid.UUID  `gorm:"uniqueIndex:allocation_date_location"`
	RecipeType   RecipeType `json:"-"`
	RecipeTypeID uuid.UUID
	Required     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The location's ordered pocket count
	Quantity     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The allocated quantity
	Balance      decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Remaining stock after this row
	CreatedBy    string
}

var (
	ErrAllocationNotUnique        = errors.New("an allocation for this location already exists for this date")
	ErrAllocationQuantityNegative = errors.New("the allocated quantity must be larger than zero")
)

func (a *Allocation) BeforeSave(_ *gorm.DB) error {
	a.CreatedBy = strings.TrimSpace(a.CreatedBy)

	return nil
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	err := tx.First(&Location{}, a.LocationID).Error
	if err != nil {
		return err
	}

	return tx.First(&RecipeType{}, a.RecipeTypeID).Error
}

// AllocatedLocationIDs returns the IDs of all locations that already
// have an allocation for a day.
func AllocatedLocationIDs(db *gorm.DB, day types.Day) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := db.Model(&Allocation{}).
		Where("date = ?", day).
		Pluck("location_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
