package models

import (
	"errors"
	"strings"

	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule plans a recipe type for a calendar day. Only one schedule
// per (day, recipe type) may exist.
type Schedule struct {
	DefaultModel
	Date         types.Day  `gorm:"uniqueIndex:schedule_date_recipe"`
	RecipeType   RecipeType `json:"-"`
	RecipeTypeID uuid.UUID  `gorm:"uniqueIndex:schedule_date_recipe"`
	CreatedBy    string
}

var ErrScheduleNotUnique = errors.New("this recipe type is already scheduled for this date")

func (s *Schedule) BeforeSave(_ *gorm.DB) error {
	s.CreatedBy = strings.TrimSpace(s.CreatedBy)

	return nil
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Schedule)
	return tx.First(&RecipeType{}, toSave.RecipeTypeID).Error
}

func (s *Schedule) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Schedule)

	if tx.Statement.Changed("RecipeTypeID") {
		return tx.First(&RecipeType{}, toSave.RecipeTypeID).Error
	}

	return nil
}
