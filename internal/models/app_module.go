package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppModule is an application module / sub-module pair that
// permissions can be granted for, e.g. (master, item) or
// (distribution, delivery).
type AppModule struct {
	DefaultModel
	Name          string `gorm:"uniqueIndex:app_module_name_sub"`
	SubModuleName string `gorm:"uniqueIndex:app_module_name_sub"`
	CreatedBy     string
}

// Permission grants a user access to one application module.
type Permission struct {
	DefaultModel
	User     User      `json:"-"`
	UserID   uuid.UUID `gorm:"uniqueIndex:permission_user_module"`
	Module   AppModule `json:"-"`
	ModuleID uuid.UUID `gorm:"uniqueIndex:permission_user_module"`
}

var (
	ErrAppModuleNotUnique  = errors.New("this module and sub-module combination already exists")
	ErrPermissionNotUnique = errors.New("this permission has already been granted")
)

func (m *AppModule) BeforeSave(_ *gorm.DB) error {
	m.Name = strings.ToLower(strings.TrimSpace(m.Name))
	m.SubModuleName = strings.ToLower(strings.TrimSpace(m.SubModuleName))
	m.CreatedBy = strings.TrimSpace(m.CreatedBy)

	return nil
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	err := tx.First(&User{}, p.UserID).Error
	if err != nil {
		return err
	}

	return tx.First(&AppModule{}, p.ModuleID).Error
}
