package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Location represents a distribution location (a mosque) that
// receives prepared food.
type Location struct {
	DefaultModel
	Name      string `gorm:"uniqueIndex:location_name"`
	Address   string
	City      string
	CreatedBy string
	Archived  bool
}

var ErrLocationNameNotUnique = errors.New("the location name must be unique")

// BeforeSave trims whitespace from all strings
func (l *Location) BeforeSave(_ *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Address = strings.TrimSpace(l.Address)
	l.City = strings.TrimSpace(l.City)
	l.CreatedBy = strings.TrimSpace(l.CreatedBy)

	return nil
}
