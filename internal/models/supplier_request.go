package models

import (
	"strings"

	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SupplierRequest is a purchase request sent to a supplier for one
// category of a day requirement.
type SupplierRequest struct {
	DefaultModel
	Date         types.Day // The day requirement the request is derived from
	Supplier     Supplier  `json:"-"`
	SupplierID   uuid.UUID
	Category     ItemCategory `json:"-"`
	CategoryID   uuid.UUID
	RecipeType   RecipeType `json:"-"`
	RecipeTypeID uuid.UUID
	CreatedBy    string
}

// SupplierRequestLine is one requested item of a supplier request.
type SupplierRequestLine struct {
	DefaultModel
	SupplierRequest   SupplierRequest `json:"-"`
	SupplierRequestID uuid.UUID
	Item              Item `json:"-"`
	ItemID            uuid.UUID
	Quantity          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (s *SupplierRequest) BeforeSave(_ *gorm.DB) error {
	s.CreatedBy = strings.TrimSpace(s.CreatedBy)

	return nil
}

func (s *SupplierRequest) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	err := tx.First(&Supplier{}, s.SupplierID).Error
	if err != nil {
		return err
	}

	err = tx.First(&ItemCategory{}, s.CategoryID).Error
	if err != nil {
		return err
	}

	return tx.First(&RecipeType{}, s.RecipeTypeID).Error
}

// Lines returns all lines of this request.
func (s SupplierRequest) Lines(db *gorm.DB) ([]SupplierRequestLine, error) {
	var lines []SupplierRequestLine

	err := db.Where(SupplierRequestLine{SupplierRequestID: s.ID}).Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// AfterDelete removes the lines of the request.
func (s *SupplierRequest) AfterDelete(tx *gorm.DB) error {
	return tx.Where(SupplierRequestLine{SupplierRequestID: s.ID}).Delete(&SupplierRequestLine{}).Error
}

func (l *SupplierRequestLine) BeforeCreate(tx *gorm.DB) error {
	_ = l.DefaultModel.BeforeCreate(tx)

	return tx.First(&Item{}, l.ItemID).Error
}
