package v1

import (
	"github.com/fpda/backend/internal/models"
	fp_uuid "github.com/fpda/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemEditable represents all user configurable parameters
type ItemEditable struct {
	Name       string          `json:"item_name" example:"Basmati Rice" default:""`              // Name of the item
	CategoryID uuid.UUID       `json:"cat_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`  // ID of the category the item belongs to
	UnitID     uuid.UUID       `json:"unit_code" example:"a6e30478-b4a6-4f83-975b-1c43cbd90a22"` // ID of the unit the item is measured in
	Brand      string          `json:"item_brand" example:"India Gate" default:""`               // Brand of the item
	Rate       decimal.Decimal `json:"item_rate" example:"85.50" default:"0"`                    // Purchase rate per unit
	Remark     string          `json:"remark" example:"Only the 25kg bags" default:""`           // Notes about the item
	CreatedBy  string          `json:"created_by" example:"admin" default:""`                    // User who created the resource
	Archived   bool            `json:"archived" example:"true" default:"false"`                  // Is the item archived?
}

func (editable ItemEditable) model() models.Item {
	return models.Item{
		Name:       editable.Name,
		CategoryID: editable.CategoryID,
		UnitID:     editable.UnitID,
		Brand:      editable.Brand,
		Rate:       editable.Rate,
		Remark:     editable.Remark,
		CreatedBy:  editable.CreatedBy,
		Archived:   editable.Archived,
	}
}

type Item struct {
	models.DefaultModel
	ItemEditable
}

func newItem(model models.Item) Item {
	return Item{
		DefaultModel: model.DefaultModel,
		ItemEditable: ItemEditable{
			Name:       model.Name,
			CategoryID: model.CategoryID,
			UnitID:     model.UnitID,
			Brand:      model.Brand,
			Rate:       model.Rate,
			Remark:     model.Remark,
			CreatedBy:  model.CreatedBy,
			Archived:   model.Archived,
		},
	}
}

type ItemListResponse struct {
	Data       []Item      `json:"data"`                                                          // List of Items
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ItemCreateResponse struct {
	Data  []ItemResponse `json:"data"`                                                          // List of the created Items or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ItemResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ItemResponse struct {
	Data  *Item   `json:"data"`                                                          // Data for the Item
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ItemQueryFilter struct {
	Name       string       `form:"name" filterField:"false"`   // By name
	CategoryID fp_uuid.UUID `form:"category"`                   // By ID of the ItemCategory
	UnitID     fp_uuid.UUID `form:"unit"`                       // By ID of the Unit
	Archived   bool         `form:"archived"`                   // Is the Item archived?
	Search     string       `form:"search" filterField:"false"` // By string in the name
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Item returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of Items to return. Defaults to 50.
}

func (f ItemQueryFilter) model() models.Item {
	return models.Item{
		CategoryID: f.CategoryID.UUID,
		UnitID:     f.UnitID.UUID,
		Archived:   f.Archived,
	}
}
