package models

import (
	"errors"
	"strings"

	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaterialReceipt records material received from a supplier against
// a day requirement.
type MaterialReceipt struct {
	DefaultModel
	ReceiptDate     types.Day
	RequirementDate types.Day // The day requirement the receipt settles
	Supplier        Supplier  `json:"-"`
	SupplierID      uuid.UUID
	Item            Item `json:"-"`
	ItemID          uuid.UUID
	Quantity        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CreatedBy       string
}

var ErrReceiptQuantityNotPositive = errors.New("the received quantity must be larger than zero")

func (m *MaterialReceipt) BeforeSave(_ *gorm.DB) error {
	m.CreatedBy = strings.TrimSpace(m.CreatedBy)

	return nil
}

func (m *MaterialReceipt) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	err := tx.First(&Supplier{}, m.SupplierID).Error
	if err != nil {
		return err
	}

	return tx.First(&Item{}, m.ItemID).Error
}

func (m *MaterialReceipt) AfterSave(_ *gorm.DB) error {
	if !m.Quantity.IsPositive() {
		return ErrReceiptQuantityNotPositive
	}

	return nil
}
