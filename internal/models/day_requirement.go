package models

import (
	"errors"
	"strings"

	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase types for day requirements. Retail covers a single day,
// Bulk spans a date range expanded into one header per day.
const (
	PurchaseTypeRetail = "RETAIL"
	PurchaseTypeBulk   = "BULK"
)

// DayRequirement is the header of a day's derived purchase
// quantities for one recipe type.
type DayRequirement struct {
	DefaultModel
	Date          types.Day       `gorm:"uniqueIndex:day_requirement_date_recipe_purchase"`
	RecipeType    RecipeType      `json:"-"`
	RecipeTypeID  uuid.UUID       `gorm:"uniqueIndex:day_requirement_date_recipe_purchase"`
	TotalRequired decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The day's total ordered pocket count
	Multiplier    int64           // Batch multiplier the line quantities were derived with
	PurchaseType  string          `gorm:"uniqueIndex:day_requirement_date_recipe_purchase;check:purchase_type IN ('RETAIL', 'BULK')"`
	CreatedBy     string
}

// DayRequirementLine is one derived purchase quantity of a header.
type DayRequirementLine struct {
	DefaultModel
	DayRequirement   DayRequirement `json:"-"`
	DayRequirementID uuid.UUID
	Item             Item `json:"-"`
	ItemID           uuid.UUID
	Quantity         decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // ingredient ratio times the header's multiplier
}

var (
	ErrDayRequirementNotUnique       = errors.New("day requirements already exist for this date and recipe type")
	ErrDayRequirementPurchaseInvalid = errors.New("the purchase type must be RETAIL or BULK")
)

func (d *DayRequirement) BeforeSave(_ *gorm.DB) error {
	d.PurchaseType = strings.ToUpper(strings.TrimSpace(d.PurchaseType))
	d.CreatedBy = strings.TrimSpace(d.CreatedBy)

	if d.PurchaseType != PurchaseTypeRetail && d.PurchaseType != PurchaseTypeBulk {
		return ErrDayRequirementPurchaseInvalid
	}

	return nil
}

func (d *DayRequirement) BeforeCreate(tx *gorm.DB) error {
	_ = d.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*DayRequirement)
	return tx.First(&RecipeType{}, toSave.RecipeTypeID).Error
}

// Lines returns all lines of this header.
func (d DayRequirement) Lines(db *gorm.DB) ([]DayRequirementLine, error) {
	var lines []DayRequirementLine

	err := db.Where(DayRequirementLine{DayRequirementID: d.ID}).Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// AfterDelete removes the lines of the header. Lines never outlive
// their header.
func (d *DayRequirement) AfterDelete(tx *gorm.DB) error {
	return tx.Where(DayRequirementLine{DayRequirementID: d.ID}).Delete(&DayRequirementLine{}).Error
}

func (l *DayRequirementLine) BeforeCreate(tx *gorm.DB) error {
	_ = l.DefaultModel.BeforeCreate(tx)

	return tx.First(&Item{}, l.ItemID).Error
}
