package v1

import (
	"github.com/fpda/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipeTypeEditable represents all user configurable parameters
type RecipeTypeEditable struct {
	Name         string          `json:"recipe_name" example:"Chicken Biryani" default:""` // Name of the recipe type
	PerKg        decimal.Decimal `json:"recipe_perkg" example:"1" default:"0"`             // Batch size the ingredient ratios refer to
	TotalPackets decimal.Decimal `json:"recipe_totpkt" example:"40" default:"0"`           // Pockets one batch yields
	CreatedBy    string          `json:"created_by" example:"admin" default:""`            // User who created the resource
	Archived     bool            `json:"archived" example:"true" default:"false"`          // Is the recipe type archived?
}

func (editable RecipeTypeEditable) model() models.RecipeType {
	return models.RecipeType{
		Name:         editable.Name,
		PerKg:        editable.PerKg,
		TotalPackets: editable.TotalPackets,
		CreatedBy:    editable.CreatedBy,
		Archived:     editable.Archived,
	}
}

type RecipeType struct {
	models.DefaultModel
	RecipeTypeEditable

	// These fields are computed
	Ingredients []RecipeItem `json:"ingredients"` // Ingredient ratios for one batch
}

func newRecipeType(db *gorm.DB, model models.RecipeType) (RecipeType, error) {
	recipeType := RecipeType{
		DefaultModel: model.DefaultModel,
		RecipeTypeEditable: RecipeTypeEditable{
			Name:         model.Name,
			PerKg:        model.PerKg,
			TotalPackets: model.TotalPackets,
			CreatedBy:    model.CreatedBy,
			Archived:     model.Archived,
		},
	}

	ingredients, err := model.Ingredients(db)
	if err != nil {
		return RecipeType{}, err
	}

	for _, ingredient := range ingredients {
		recipeType.Ingredients = append(recipeType.Ingredients, newRecipeItem(ingredient))
	}

	return recipeType, nil
}

type RecipeTypeListResponse struct {
	Data       []RecipeType `json:"data"`                                                          // List of RecipeTypes
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type RecipeTypeCreateResponse struct {
	Data  []RecipeTypeResponse `json:"data"`                                                          // List of the created RecipeTypes or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecipeTypeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecipeTypeResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecipeTypeResponse struct {
	Data  *RecipeType `json:"data"`                                                          // Data for the RecipeType
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecipeTypeQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Archived bool   `form:"archived"`                   // Is the RecipeType archived?
	Search   string `form:"search" filterField:"false"` // By string in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first RecipeType returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of RecipeTypes to return. Defaults to 50.
}

func (f RecipeTypeQueryFilter) model() models.RecipeType {
	return models.RecipeType{
		Archived: f.Archived,
	}
}
