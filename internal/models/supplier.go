package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Supplier represents a vendor that material is purchased from.
type Supplier struct {
	DefaultModel
	Name      string `gorm:"uniqueIndex:supplier_name"`
	Address   string
	City      string
	Mobile    string
	CreatedBy string
	Archived  bool
}

var ErrSupplierNameNotUnique = errors.New("the supplier name must be unique")

func (s *Supplier) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Address = strings.TrimSpace(s.Address)
	s.City = strings.TrimSpace(s.City)
	s.Mobile = strings.TrimSpace(s.Mobile)
	s.CreatedBy = strings.TrimSpace(s.CreatedBy)

	return nil
}
