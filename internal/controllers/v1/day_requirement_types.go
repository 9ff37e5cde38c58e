package v1

import (
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/quantify"
	"github.com/fpda/backend/internal/types"
	fp_uuid "github.com/fpda/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DayRequirementLineEditable is one purchase line of a day requirement.
type DayRequirementLineEditable struct {
	ItemID   uuid.UUID       `json:"item_code" example:"a6e30478-b4a6-4f83-975b-1c43cbd90a22"` // ID of the item
	Quantity decimal.Decimal `json:"qty" example:"0.75" default:"0"`                           // Quantity to purchase
}

func (editable DayRequirementLineEditable) model(requirementID uuid.UUID) models.DayRequirementLine {
	return models.DayRequirementLine{
		DayRequirementID: requirementID,
		ItemID:           editable.ItemID,
		Quantity:         editable.Quantity,
	}
}

// DayRequirementEditable represents all user configurable parameters
type DayRequirementEditable struct {
	Date          types.Day                    `json:"day_req_date" example:"2024-03-01"`                          // Day the purchase is for
	RecipeTypeID  uuid.UUID                    `json:"recipe_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the recipe type
	PurchaseType  string                       `json:"purchase_type" example:"RETAIL" default:"RETAIL"`            // RETAIL or BULK
	TotalRequired decimal.Decimal              `json:"day_req_qty" example:"120" default:"0"`                      // Total ordered pockets for the day
	Multiplier    int64                        `json:"multiplier" example:"3" default:"0"`                         // Whole batches to cook
	CreatedBy     string                       `json:"created_by" example:"admin" default:""`                      // User who created the resource
	Lines         []DayRequirementLineEditable `json:"lines"`                                                      // Purchase lines
}

func (editable DayRequirementEditable) model() models.DayRequirement {
	purchaseType := editable.PurchaseType
	if purchaseType == "" {
		purchaseType = models.PurchaseTypeRetail
	}

	return models.DayRequirement{
		Date:          editable.Date,
		RecipeTypeID:  editable.RecipeTypeID,
		PurchaseType:  purchaseType,
		TotalRequired: editable.TotalRequired,
		Multiplier:    editable.Multiplier,
		CreatedBy:     editable.CreatedBy,
	}
}

type DayRequirement struct {
	models.DefaultModel
	Date          types.Day       `json:"day_req_date" example:"2024-03-01"`
	RecipeTypeID  uuid.UUID       `json:"recipe_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	PurchaseType  string          `json:"purchase_type" example:"RETAIL"`
	TotalRequired decimal.Decimal `json:"day_req_qty" example:"120"`
	Multiplier    int64           `json:"multiplier" example:"3"`
	CreatedBy     string          `json:"created_by" example:"admin"`

	// These fields are computed
	Lines []DayRequirementLine `json:"lines"` // Purchase lines
}

type DayRequirementLine struct {
	models.DefaultModel
	ItemID   uuid.UUID       `json:"item_code" example:"a6e30478-b4a6-4f83-975b-1c43cbd90a22"`
	Quantity decimal.Decimal `json:"qty" example:"0.75"`
}

func newDayRequirement(db *gorm.DB, model models.DayRequirement) (DayRequirement, error) {
	requirement := DayRequirement{
		DefaultModel:  model.DefaultModel,
		Date:          model.Date,
		RecipeTypeID:  model.RecipeTypeID,
		PurchaseType:  model.PurchaseType,
		TotalRequired: model.TotalRequired,
		Multiplier:    model.Multiplier,
		CreatedBy:     model.CreatedBy,
	}

	lines, err := model.Lines(db)
	if err != nil {
		return DayRequirement{}, err
	}

	for _, line := range lines {
		requirement.Lines = append(requirement.Lines, DayRequirementLine{
			DefaultModel: line.DefaultModel,
			ItemID:       line.ItemID,
			Quantity:     line.Quantity,
		})
	}

	return requirement, nil
}

// DayRequirementDerived is the computed purchase plan for a date and
// recipe type. It is a preview, nothing is saved when deriving.
type DayRequirementDerived struct {
	Date          types.Day                    `json:"day_req_date" example:"2024-03-01"`
	RecipeTypeID  uuid.UUID                    `json:"recipe_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	TotalRequired decimal.Decimal              `json:"day_req_qty" example:"120"` // Total ordered pockets for the day
	Multiplier    int64                        `json:"multiplier" example:"3"`    // Whole batches to cook
	Lines         []DayRequirementLineEditable `json:"lines"`                     // Purchase quantities per ingredient
}

// deriveForDay computes the purchase plan for one day: the total
// ordered pockets, the batch multiplier for the recipe type and the
// resulting quantity for every ingredient.
func deriveForDay(db *gorm.DB, day types.Day, recipeTypeID uuid.UUID) (DayRequirementDerived, error) {
	var recipeType models.RecipeType
	if err := db.First(&recipeType, recipeTypeID).Error; err != nil {
		return DayRequirementDerived{}, err
	}

	total, err := models.RequirementTotal(db, day)
	if err != nil {
		return DayRequirementDerived{}, err
	}

	multiplier := quantify.Multiplier(total, recipeType.TotalPackets)

	ingredients, err := recipeType.Ingredients(db)
	if err != nil {
		return DayRequirementDerived{}, err
	}

	derived := DayRequirementDerived{
		Date:          day,
		RecipeTypeID:  recipeTypeID,
		TotalRequired: total,
		Multiplier:    multiplier,
	}

	for _, ingredient := range ingredients {
		derived.Lines = append(derived.Lines, DayRequirementLineEditable{
			ItemID:   ingredient.ItemID,
			Quantity: quantify.LineQuantity(ingredient.Quantity, multiplier),
		})
	}

	return derived, nil
}

type DayRequirementDeriveQuery struct {
	Date         types.Day    `form:"date"`       // Date to derive for
	RecipeTypeID fp_uuid.UUID `form:"recipeType"` // Recipe type ID
}

type DayRequirementDeriveResponse struct {
	Data  *DayRequirementDerived `json:"data"`                                                 // The derived purchase plan
	Error *string                `json:"error" example:"the date query parameter must be set"` // The error, if any occurred
}

// DayRequirementBulkEditable derives and saves day requirements for a
// date range.
type DayRequirementBulkEditable struct {
	From         types.Day `json:"req_date_from" example:"2024-03-01"`                         // First day of the range
	To           types.Day `json:"req_date_to" example:"2024-03-07"`                           // Last day of the range, inclusive
	RecipeTypeID uuid.UUID `json:"recipe_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the recipe type
	PurchaseType string    `json:"purchase_type" example:"RETAIL" default:"RETAIL"`            // RETAIL or BULK
	CreatedBy    string    `json:"created_by" example:"admin" default:""`
}

type DayRequirementListResponse struct {
	Data       []DayRequirement `json:"data"`                                                          // List of DayRequirements
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type DayRequirementResponse struct {
	Data  *DayRequirement `json:"data"`                                                          // Data for the DayRequirement
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DayRequirementQueryFilter struct {
	Date         types.Day    `form:"date"`                       // By date
	RecipeTypeID fp_uuid.UUID `form:"recipeType"`                 // By ID of the RecipeType
	PurchaseType string       `form:"purchaseType"`               // By purchase type
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first DayRequirement returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of DayRequirements to return. Defaults to 50.
}

func (f DayRequirementQueryFilter) model() models.DayRequirement {
	return models.DayRequirement{
		Date:         f.Date,
		RecipeTypeID: f.RecipeTypeID.UUID,
		PurchaseType: f.PurchaseType,
	}
}
