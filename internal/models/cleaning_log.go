package models

import (
	"errors"
	"strings"

	"github.com/fpda/backend/internal/types"
	"gorm.io/gorm"
)

// Cleaning areas.
const (
	CleaningAreaMaterial = "MATERIAL"
	CleaningAreaVessel   = "VESSEL"
	CleaningAreaPrep     = "PREP"
	CleaningAreaPacking  = "PACKING"
	CleaningAreaCooking  = "COOKING"
)

// CleaningLog documents the cleaning of a kitchen area, optionally
// with a link to photo or video evidence.
type CleaningLog struct {
	DefaultModel
	Date      types.Day
	Area      string `gorm:"check:area IN ('MATERIAL', 'VESSEL', 'PREP', 'PACKING', 'COOKING')"`
	Remarks   string
	MediaURL  string
	CreatedBy string
}

var ErrCleaningAreaInvalid = errors.New("the cleaning area is invalid")

func (c *CleaningLog) BeforeSave(_ *gorm.DB) error {
	c.Area = strings.ToUpper(strings.TrimSpace(c.Area))
	c.Remarks = strings.TrimSpace(c.Remarks)
	c.MediaURL = strings.TrimSpace(c.MediaURL)
	c.CreatedBy = strings.TrimSpace(c.CreatedBy)

	switch c.Area {
	case CleaningAreaMaterial, CleaningAreaVessel, CleaningAreaPrep, CleaningAreaPacking, CleaningAreaCooking:
		return nil
	}

	return ErrCleaningAreaInvalid
}
