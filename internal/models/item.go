package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a purchasable ingredient.
type Item struct {
	DefaultModel
	Name       string       `gorm:"uniqueIndex:item_name"`
	Category   ItemCategory `json:"-"`
	CategoryID uuid.UUID
	Unit       Unit `json:"-"`
	UnitID     uuid.UUID
	Brand      string
	Rate       decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Purchase rate per unit
	Remark     string
	CreatedBy  string
	Archived   bool
}

var ErrItemNameNotUnique = errors.New("the item name must be unique")

func (i *Item) BeforeSave(_ *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.Brand = strings.TrimSpace(i.Brand)
	i.Remark = strings.TrimSpace(i.Remark)
	i.CreatedBy = strings.TrimSpace(i.CreatedBy)

	return nil
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Item)
	return i.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the item before
// committing an update to the database.
func (i *Item) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Item)

	if tx.Statement.Changed("CategoryID") || tx.Statement.Changed("UnitID") {
		return i.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (i *Item) checkIntegrity(tx *gorm.DB, toSave Item) error {
	err := tx.First(&ItemCategory{}, toSave.CategoryID).Error
	if err != nil {
		return err
	}

	return tx.First(&Unit{}, toSave.UnitID).Error
}
