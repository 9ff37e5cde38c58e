package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/types"
	fp_uuid "github.com/fpda/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterSupplierRequestRoutes registers the routes for supplier
// requests with the RouterGroup that is passed.
func RegisterSupplierRequestRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSupplierRequestList)
		r.GET("", GetSupplierRequests)
		r.POST("", CreateSupplierRequest)
		r.GET("/derive", DeriveSupplierRequest)
	}

	// SupplierRequest with ID
	{
		r.OPTIONS("/:id", OptionsSupplierRequestDetail)
		r.GET("/:id", GetSupplierRequest)
		r.DELETE("/:id", DeleteSupplierRequest)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SupplierRequests
// @Success		204
// @Router			/v1/supplier-requests [options]
func OptionsSupplierRequestList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SupplierRequests
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/supplier-requests/{id} [options]
func OptionsSupplierRequestDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.SupplierRequest{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Derive supplier request lines
// @Description	Returns the derived purchase quantities for a date and item category, taken from the day requirements of that date
// @Tags			SupplierRequests
// @Produce		json
// @Success		200			{object}	SupplierRequestDeriveResponse
// @Failure		400			{object}	SupplierRequestDeriveResponse
// @Failure		500			{object}	SupplierRequestDeriveResponse
// @Param			date		query		string	true	"Date of the day requirements"
// @Param			category	query		string	true	"ID of the item category"
// @Param			recipeType	query		string	false	"Limit to one recipe type"
// @Router			/v1/supplier-requests/derive [get]
func DeriveSupplierRequest(c *gin.Context) {
	var query SupplierRequestDeriveQuery
	_ = c.Bind(&query)

	if query.Date.IsZero() {
		s := errDateNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, SupplierRequestDeriveResponse{
			Error: &s,
		})
		return
	}

	if query.CategoryID == fp_uuid.Nil {
		s := errCategoryNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, SupplierRequestDeriveResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.Where("date = ?", query.Date)
	if query.RecipeTypeID != fp_uuid.Nil {
		q = q.Where("recipe_type_id = ?", query.RecipeTypeID.UUID)
	}

	var requirements []models.DayRequirement
	err := q.Find(&requirements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestDeriveResponse{
			Error: &s,
		})
		return
	}

	// Quantities for the same item are summed across requirements
	quantities := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)
	for _, requirement := range requirements {
		lines, err := requirement.Lines(models.DB)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SupplierRequestDeriveResponse{
				Error: &s,
			})
			return
		}

		for _, line := range lines {
			var item models.Item
			err = models.DB.First(&item, line.ItemID).Error
			if err != nil {
				s := err.Error()
				c.JSON(status(err), SupplierRequestDeriveResponse{
					Error: &s,
				})
				return
			}

			if item.CategoryID != query.CategoryID.UUID {
				continue
			}

			if _, ok := quantities[line.ItemID]; !ok {
				order = append(order, line.ItemID)
			}
			quantities[line.ItemID] = quantities[line.ItemID].Add(line.Quantity)
		}
	}

	lines := make([]SupplierRequestLineEditable, 0)
	for _, itemID := range order {
		lines = append(lines, SupplierRequestLineEditable{
			ItemID:   itemID,
			Quantity: quantities[itemID],
		})
	}

	data := SupplierRequestDerived{
		Date:       query.Date,
		CategoryID: query.CategoryID.UUID,
		Lines:      lines,
	}

	c.JSON(http.StatusOK, SupplierRequestDeriveResponse{Data: &data})
}

// @Summary		Create supplier request
// @Description	Creates a new supplier request with its lines. Header and lines are written in one transaction.
// @Tags			SupplierRequests
// @Accept			json
// @Produce		json
// @Success		201		{object}	SupplierRequestResponse
// @Failure		400		{object}	SupplierRequestResponse
// @Failure		404		{object}	SupplierRequestResponse
// @Failure		500		{object}	SupplierRequestResponse
// @Param			request	body		SupplierRequestEditable	true	"SupplierRequest"
// @Router			/v1/supplier-requests [post]
func CreateSupplierRequest(c *gin.Context) {
	var editable SupplierRequestEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestResponse{
			Error: &s,
		})
		return
	}

	if len(editable.Lines) == 0 {
		s := errNoLines.Error()
		c.JSON(http.StatusBadRequest, SupplierRequestResponse{
			Error: &s,
		})
		return
	}

	request := editable.model()

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		for _, line := range editable.Lines {
			model := line.model(request.ID)
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestResponse{
			Error: &s,
		})
		return
	}

	data, err := newSupplierRequest(models.DB, request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, SupplierRequestResponse{Data: &data})
}

// @Summary		Get supplier requests
// @Description	Returns a list of supplier requests
// @Tags			SupplierRequests
// @Produce		json
// @Success		200	{object}	SupplierRequestListResponse
// @Failure		400	{object}	SupplierRequestListResponse
// @Failure		500	{object}	SupplierRequestListResponse
// @Router			/v1/supplier-requests [get]
// @Param			date		query	string	false	"Filter by date"
// @Param			supplier	query	string	false	"Filter by supplier ID"
// @Param			category	query	string	false	"Filter by item category ID"
// @Param			offset		query	uint	false	"The offset of the first SupplierRequest returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of SupplierRequests to return. Defaults to 50."
func GetSupplierRequests(c *gin.Context) {
	var filter SupplierRequestQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("date DESC, created_at ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var requests []models.SupplierRequest
	err := q.Find(&requests).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SupplierRequestListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SupplierRequest, 0)
	for _, request := range requests {
		apiResource, err := newSupplierRequest(models.DB, request)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SupplierRequestListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, SupplierRequestListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get supplier request
// @Description	Returns a specific supplier request with its lines
// @Tags			SupplierRequests
// @Produce		json
// @Success		200	{object}	SupplierRequestResponse
// @Failure		400	{object}	SupplierRequestResponse
// @Failure		404	{object}	SupplierRequestResponse
// @Failure		500	{object}	SupplierRequestResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/supplier-requests/{id} [get]
func GetSupplierRequest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestResponse{
			Error: &s,
		})
		return
	}

	var request models.SupplierRequest
	err = models.DB.First(&request, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestResponse{
			Error: &s,
		})
		return
	}

	data, err := newSupplierRequest(models.DB, request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierRequestResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SupplierRequestResponse{Data: &data})
}

// @Summary		Delete supplier request
// @Description	Deletes a supplier request and its lines
// @Tags			SupplierRequests
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/supplier-requests/{id} [delete]
func DeleteSupplierRequest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var request models.SupplierRequest
	err = models.DB.First(&request, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&request).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// SupplierRequestLineEditable represents one requested item
type SupplierRequestLineEditable struct {
	ItemID   uuid.UUID       `json:"item_code" example:"5415b6c9-a99b-4dfa-a25e-8178fbbc69e5"` // ID of the item
	Quantity decimal.Decimal `json:"qty" example:"12.5"`                                       // Quantity to request
}

func (editable SupplierRequestLineEditable) model(requestID uuid.UUID) models.SupplierRequestLine {
	return models.SupplierRequestLine{
		SupplierRequestID: requestID,
		ItemID:            editable.ItemID,
		Quantity:          editable.Quantity,
	}
}

// SupplierRequestEditable represents all user configurable parameters
type SupplierRequestEditable struct {
	Date         types.Day                     `json:"req_date" example:"2024-03-01"`                              // The day requirement the request is derived from
	SupplierID   uuid.UUID                     `json:"sup_code" example:"677bbdcf-fd71-4a7c-b6d5-27d6ff367ab4"`    // ID of the supplier
	CategoryID   uuid.UUID                     `json:"cat_code" example:"b07a3e75-4048-4aaf-80ee-1b7bd086c6e1"`    // ID of the item category
	RecipeTypeID uuid.UUID                     `json:"recipe_code" example:"a6e30478-b4a6-4f83-975b-1c43cbd90a22"` // ID of the recipe type
	CreatedBy    string                        `json:"created_by" example:"admin" default:""`                      // User who created the resource
	Lines        []SupplierRequestLineEditable `json:"lines"`                                                      // The requested items
}

func (editable SupplierRequestEditable) model() models.SupplierRequest {
	return models.SupplierRequest{
		Date:         editable.Date,
		SupplierID:   editable.SupplierID,
		CategoryID:   editable.CategoryID,
		RecipeTypeID: editable.RecipeTypeID,
		CreatedBy:    editable.CreatedBy,
	}
}

type SupplierRequestLine struct {
	models.DefaultModel
	ItemID   uuid.UUID       `json:"item_code" example:"5415b6c9-a99b-4dfa-a25e-8178fbbc69e5"` // ID of the item
	Quantity decimal.Decimal `json:"qty" example:"12.5"`                                       // Quantity to request
}

type SupplierRequest struct {
	models.DefaultModel
	Date         types.Day             `json:"req_date" example:"2024-03-01"`                              // The day requirement the request is derived from
	SupplierID   uuid.UUID             `json:"sup_code" example:"677bbdcf-fd71-4a7c-b6d5-27d6ff367ab4"`    // ID of the supplier
	CategoryID   uuid.UUID             `json:"cat_code" example:"b07a3e75-4048-4aaf-80ee-1b7bd086c6e1"`    // ID of the item category
	RecipeTypeID uuid.UUID             `json:"recipe_code" example:"a6e30478-b4a6-4f83-975b-1c43cbd90a22"` // ID of the recipe type
	CreatedBy    string                `json:"created_by" example:"admin"`                                 // User who created the resource
	Lines        []SupplierRequestLine `json:"lines"`                                                      // The requested items
}

func newSupplierRequest(db *gorm.DB, model models.SupplierRequest) (SupplierRequest, error) {
	lines, err := model.Lines(db)
	if err != nil {
		return SupplierRequest{}, err
	}

	apiLines := make([]SupplierRequestLine, 0)
	for _, line := range lines {
		apiLines = append(apiLines, SupplierRequestLine{
			DefaultModel: line.DefaultModel,
			ItemID:       line.ItemID,
			Quantity:     line.Quantity,
		})
	}

	return SupplierRequest{
		DefaultModel: model.DefaultModel,
		Date:         model.Date,
		SupplierID:   model.SupplierID,
		CategoryID:   model.CategoryID,
		RecipeTypeID: model.RecipeTypeID,
		CreatedBy:    model.CreatedBy,
		Lines:        apiLines,
	}, nil
}

type SupplierRequestListResponse struct {
	Data       []SupplierRequest `json:"data"`                                                          // List of SupplierRequests
	Error      *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type SupplierRequestResponse struct {
	Data  *SupplierRequest `json:"data"`                                                          // Data for the SupplierRequest
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SupplierRequestDerived is the suggested content of a new supplier
// request for a date and category.
type SupplierRequestDerived struct {
	Date       types.Day                     `json:"req_date" example:"2024-03-01"`                           // Date of the day requirements
	CategoryID uuid.UUID                     `json:"cat_code" example:"b07a3e75-4048-4aaf-80ee-1b7bd086c6e1"` // ID of the item category
	Lines      []SupplierRequestLineEditable `json:"lines"`                                                   // The derived purchase quantities
}

type SupplierRequestDeriveResponse struct {
	Data  *SupplierRequestDerived `json:"data"`                                                     // The derived request
	Error *string                 `json:"error" example:"the category query parameter must be set"` // The error, if any occurred
}

type SupplierRequestDeriveQuery struct {
	Date         types.Day    `form:"date"`       // Date of the day requirements
	CategoryID   fp_uuid.UUID `form:"category"`   // ID of the item category
	RecipeTypeID fp_uuid.UUID `form:"recipeType"` // Limit to one recipe type
}

type SupplierRequestQueryFilter struct {
	Date         types.Day    `form:"date"`                       // By date
	SupplierID   fp_uuid.UUID `form:"supplier"`                   // By ID of the Supplier
	CategoryID   fp_uuid.UUID `form:"category"`                   // By ID of the ItemCategory
	RecipeTypeID fp_uuid.UUID `form:"recipeType"`                 // By ID of the RecipeType
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first SupplierRequest returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of SupplierRequests to return. Defaults to 50.
}

func (f SupplierRequestQueryFilter) model() models.SupplierRequest {
	return models.SupplierRequest{
		Date:         f.Date,
		SupplierID:   f.SupplierID.UUID,
		CategoryID:   f.CategoryID.UUID,
		RecipeTypeID: f.RecipeTypeID.UUID,
	}
}
