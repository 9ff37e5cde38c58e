package models

import (
	"errors"
	"strings"

	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Delivery records that allocated food was handed over to a
// location. One delivery per (day, location).
type Delivery struct {
	DefaultModel
	Date        types.Day       `gorm:"uniqueIndex:delivery_date_location"`
	Location    Location        `json:"-"`
	LocationID  uuid.UUID       `gorm:"uniqueIndex:delivery_date_location"`
	Quantity    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Time        string          // Time of day of the handover, free-form
	DeliveredBy string
}

var ErrDeliveryNotUnique = errors.New("a delivery for this location has already been recorded for this date")

func (d *Delivery) BeforeSave(_ *gorm.DB) error {
	d.Time = strings.TrimSpace(d.Time)
	d.DeliveredBy = strings.TrimSpace(d.DeliveredBy)

	return nil
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	_ = d.DefaultModel.BeforeCreate(tx)

	return tx.First(&Location{}, d.LocationID).Error
}

// DeliveredLocationIDs returns the IDs of all locations that already
// have a delivery for a day.
func DeliveredLocationIDs(db *gorm.DB, day types.Day) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := db.Model(&Delivery{}).
		Where("date = ?", day).
		Pluck("location_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
