package v1

import (
	"github.com/fpda/backend/internal/models"
	"gorm.io/gorm"
)

// ItemCategoryEditable represents all user configurable parameters
type ItemCategoryEditable struct {
	Name      string `json:"cat_name" example:"Vegetables" default:""` // Name of the category
	CreatedBy string `json:"created_by" example:"admin" default:""`    // User who created the resource
}

func (editable ItemCategoryEditable) model() models.ItemCategory {
	return models.ItemCategory{
		Name:      editable.Name,
		CreatedBy: editable.CreatedBy,
	}
}

type ItemCategory struct {
	models.DefaultModel
	ItemCategoryEditable

	// These fields are computed
	Items []Item `json:"items"` // Items in the category
}

func newItemCategory(db *gorm.DB, model models.ItemCategory) (ItemCategory, error) {
	category := ItemCategory{
		DefaultModel: model.DefaultModel,
		ItemCategoryEditable: ItemCategoryEditable{
			Name:      model.Name,
			CreatedBy: model.CreatedBy,
		},
	}

	items, err := model.Items(db)
	if err != nil {
		return ItemCategory{}, err
	}

	for _, item := range items {
		category.Items = append(category.Items, newItem(item))
	}

	return category, nil
}

type ItemCategoryListResponse struct {
	Data       []ItemCategory `json:"data"`                                                          // List of ItemCategories
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type ItemCategoryCreateResponse struct {
	Data  []ItemCategoryResponse `json:"data"`                                                          // List of the created ItemCategories or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ItemCategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ItemCategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ItemCategoryResponse struct {
	Data  *ItemCategory `json:"data"`                                                          // Data for the ItemCategory
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ItemCategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // By string in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first ItemCategory returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of ItemCategories to return. Defaults to 50.
}

func (f ItemCategoryQueryFilter) model() models.ItemCategory {
	return models.ItemCategory{}
}
