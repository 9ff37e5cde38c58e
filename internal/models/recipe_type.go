package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipeType is a named dish with a fixed ingredient ratio table and
// a conversion constant.
//
// TotalPackets is the number of pockets one kg-equivalent batch
// yields; it converts a day's ordered pocket count into the batch
// multiplier for purchase quantities.
type RecipeType struct {
	DefaultModel
	Name         string          `gorm:"uniqueIndex:recipe_type_name"`
	PerKg        decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Kgs prepared per day
	TotalPackets decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Pockets per kg-equivalent batch
	CreatedBy    string
	Archived     bool
}

var ErrRecipeTypeNameNotUnique = errors.New("the recipe type name must be unique")

func (r *RecipeType) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.CreatedBy = strings.TrimSpace(r.CreatedBy)

	return nil
}

// Ingredients returns the ingredient ratio table for this recipe type.
func (r RecipeType) Ingredients(db *gorm.DB) ([]RecipeItem, error) {
	var ingredients []RecipeItem

	err := db.Where(RecipeItem{RecipeTypeID: r.ID}).Find(&ingredients).Error
	if err != nil {
		return nil, err
	}

	return ingredients, nil
}
