package models

import (
	"errors"
	"strings"

	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Requirement is the pocket count a location has ordered for a
// calendar day. Only one requirement per (day, location) may exist.
type Requirement struct {
	DefaultModel
	Date       types.Day       `gorm:"uniqueIndex:requirement_date_location"`
	Location   Location        `json:"-"`
	LocationID uuid.UUID       `gorm:"uniqueIndex:requirement_date_location"`
	Quantity   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CreatedBy  string
}

var (
	ErrRequirementNotUnique        = errors.New("a requirement for this location already exists for this date")
	ErrRequirementQuantityNegative = errors.New("the required quantity must not be negative")
)

func (r *Requirement) BeforeSave(_ *gorm.DB) error {
	r.CreatedBy = strings.TrimSpace(r.CreatedBy)

	return nil
}

func (r *Requirement) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Requirement)
	return tx.First(&Location{}, toSave.LocationID).Error
}

func (r *Requirement) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Requirement)

	if tx.Statement.Changed("LocationID") {
		return tx.First(&Location{}, toSave.LocationID).Error
	}

	return nil
}

func (r *Requirement) AfterSave(_ *gorm.DB) error {
	if r.Quantity.IsNegative() {
		return ErrRequirementQuantityNegative
	}

	return nil
}

// RequirementTotal sums the ordered pocket count over all
// requirements for a day. The total is recipe-agnostic.
func RequirementTotal(db *gorm.DB, day types.Day) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := db.Table("requirements").
		Where("date = ? AND deleted_at IS NULL", day).
		Select("SUM(quantity)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return total.Decimal, nil
}
