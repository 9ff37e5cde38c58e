package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipeItem is one ingredient of a recipe type with the quantity
// needed per pocket-equivalent.
type RecipeItem struct {
	DefaultModel
	RecipeType   RecipeType      `json:"-"`
	RecipeTypeID uuid.UUID       `gorm:"uniqueIndex:recipe_item_recipe_item"`
	Item         Item            `json:"-"`
	ItemID       uuid.UUID       `gorm:"uniqueIndex:recipe_item_recipe_item"`
	Quantity     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Required quantity per pocket-equivalent
	CreatedBy    string
}

var (
	ErrRecipeItemNotUnique        = errors.New("the item is already part of this recipe")
	ErrRecipeItemQuantityNegative = errors.New("the ingredient quantity must not be negative")
)

func (r *RecipeItem) BeforeSave(_ *gorm.DB) error {
	r.CreatedBy = strings.TrimSpace(r.CreatedBy)

	return nil
}

func (r *RecipeItem) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecipeItem)
	return r.checkIntegrity(tx, *toSave)
}

func (r *RecipeItem) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(RecipeItem)

	if tx.Statement.Changed("RecipeTypeID") || tx.Statement.Changed("ItemID") {
		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

func (r *RecipeItem) checkIntegrity(tx *gorm.DB, toSave RecipeItem) error {
	err := tx.First(&RecipeType{}, toSave.RecipeTypeID).Error
	if err != nil {
		return err
	}

	return tx.First(&Item{}, toSave.ItemID).Error
}

func (r *RecipeItem) AfterSave(_ *gorm.DB) error {
	if r.Quantity.IsNegative() {
		return ErrRecipeItemQuantityNegative
	}

	return nil
}
