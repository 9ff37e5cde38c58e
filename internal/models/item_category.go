package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ItemCategory groups items, e.g. "Vegetables" or "Spices".
type ItemCategory struct {
	DefaultModel
	Name      string `gorm:"uniqueIndex:item_category_name"`
	CreatedBy string
	Archived  bool
}

var ErrCategoryNameNotUnique = errors.New("the category name must be unique")

func (i *ItemCategory) BeforeSave(_ *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.CreatedBy = strings.TrimSpace(i.CreatedBy)

	return nil
}

// Items returns all items in this category.
func (i ItemCategory) Items(db *gorm.DB) ([]Item, error) {
	var items []Item

	err := db.Where(Item{CategoryID: i.ID}).Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}
