package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Unit is a unit of measurement, e.g. "Kilogram"/"kg".
type Unit struct {
	DefaultModel
	Name      string
	Short     string `gorm:"uniqueIndex:unit_short"`
	CreatedBy string
}

var ErrUnitShortNotUnique = errors.New("the unit abbreviation must be unique")

func (u *Unit) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Short = strings.TrimSpace(u.Short)
	u.CreatedBy = strings.TrimSpace(u.CreatedBy)

	return nil
}
