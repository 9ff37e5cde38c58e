package v1

import (
	"errors"
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/quantify"
	"github.com/fpda/backend/internal/types"
	fp_uuid "github.com/fpda/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterAllocationRoutes registers the routes for food allocations with
// the RouterGroup that is passed.
func RegisterAllocationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAllocationList)
		r.GET("", GetAllocations)
		r.POST("", CreateAllocations)
		r.GET("/open", GetOpenAllocations)
	}

	// Allocation with ID
	{
		r.OPTIONS("/:id", OptionsAllocationDetail)
		r.GET("/:id", GetAllocation)
		r.DELETE("/:id", DeleteAllocation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations [options]
func OptionsAllocationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [options]
func OptionsAllocationDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Allocation{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create allocations
// @Description	Allocates stock to locations for a date. The whole batch is checked against the remaining stock and committed in one transaction, a batch that would overdraw the stock is rejected entirely.
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		201			{object}	AllocationCreateResponse
// @Failure		400			{object}	AllocationCreateResponse
// @Failure		404			{object}	AllocationCreateResponse
// @Failure		500			{object}	AllocationCreateResponse
// @Param			allocations	body		[]AllocationEditable	true	"Allocations"
// @Router			/v1/allocations [post]
func CreateAllocations(c *gin.Context) {
	var editables []AllocationEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationCreateResponse{
			Error: &e,
		})
		return
	}

	if len(editables) == 0 {
		e := errNoLines.Error()
		c.JSON(http.StatusBadRequest, AllocationCreateResponse{
			Error: &e,
		})
		return
	}

	// All allocations of one batch debit the same stock date
	day := editables[0].Date
	for _, editable := range editables {
		if !editable.Date.Equal(day) {
			e := errMixedAllocationDates.Error()
			c.JSON(http.StatusBadRequest, AllocationCreateResponse{
				Error: &e,
			})
			return
		}
	}

	var created []models.Allocation
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		stock, err := models.LockStockForDay(tx, day)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound) {
				return errNoStockForDate
			}
			return err
		}

		ledger := quantify.NewLedger(stock.Remaining)

		for _, editable := range editables {
			balance, err := ledger.Apply(editable.Quantity)
			if err != nil {
				return err
			}

			allocation := editable.model()
			allocation.Balance = balance

			if err := tx.Create(&allocation).Error; err != nil {
				return err
			}

			created = append(created, allocation)
		}

		stock.Remaining = ledger.Remaining()
		return tx.Save(&stock).Error
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationCreateResponse{
			Error: &e,
		})
		return
	}

	r := AllocationCreateResponse{}
	for _, allocation := range created {
		data := newAllocation(allocation)
		r.Data = append(r.Data, AllocationResponse{Data: &data})
	}

	c.JSON(http.StatusCreated, r)
}

// @Summary		Get open allocations
// @Description	Returns the locations that ordered pockets for a date but have no allocation yet
// @Tags			Allocations
// @Produce		json
// @Success		200		{object}	OpenAllocationListResponse
// @Failure		400		{object}	OpenAllocationListResponse
// @Failure		500		{object}	OpenAllocationListResponse
// @Param			date	query		string	true	"Date to check"
// @Router			/v1/allocations/open [get]
func GetOpenAllocations(c *gin.Context) {
	var query OpenQuery
	_ = c.Bind(&query)

	if query.Date.IsZero() {
		s := errDateNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, OpenAllocationListResponse{
			Error: &s,
		})
		return
	}

	var requirements []models.Requirement
	err := models.DB.
		Where("date = ?", query.Date).
		Order("date ASC").
		Find(&requirements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OpenAllocationListResponse{
			Error: &s,
		})
		return
	}

	allocated, err := models.AllocatedLocationIDs(models.DB, query.Date)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OpenAllocationListResponse{
			Error: &s,
		})
		return
	}

	data := make([]OpenAllocation, 0)
	for _, requirement := range requirements {
		if slices.Contains(allocated, requirement.LocationID) {
			continue
		}

		var location models.Location
		err = models.DB.First(&location, requirement.LocationID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), OpenAllocationListResponse{
				Error: &s,
			})
			return
		}

		data = append(data, OpenAllocation{
			LocationID:   requirement.LocationID,
			LocationName: location.Name,
			Required:     requirement.Quantity,
		})
	}

	c.JSON(http.StatusOK, OpenAllocationListResponse{Data: data})
}

// @Summary		Get allocations
// @Description	Returns a list of food allocations
// @Tags			Allocations
// @Produce		json
// @Success		200	{object}	AllocationListResponse
// @Failure		400	{object}	AllocationListResponse
// @Failure		500	{object}	AllocationListResponse
// @Router			/v1/allocations [get]
// @Param			date		query	string	false	"Filter by date"
// @Param			location	query	string	false	"Filter by location ID"
// @Param			recipeType	query	string	false	"Filter by recipe type ID"
// @Param			offset		query	uint	false	"The offset of the first Allocation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Allocations to return. Defaults to 50."
func GetAllocations(c *gin.Context) {
	var filter AllocationQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("created_at ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var allocations []models.Allocation
	err := q.Find(&allocations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Allocation, 0)
	for _, allocation := range allocations {
		data = append(data, newAllocation(allocation))
	}

	c.JSON(http.StatusOK, AllocationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get allocation
// @Description	Returns a specific allocation
// @Tags			Allocations
// @Produce		json
// @Success		200	{object}	AllocationResponse
// @Failure		400	{object}	AllocationResponse
// @Failure		404	{object}	AllocationResponse
// @Failure		500	{object}	AllocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [get]
func GetAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	data := newAllocation(allocation)
	c.JSON(http.StatusOK, AllocationResponse{Data: &data})
}

// @Summary		Delete allocation
// @Description	Deletes an allocation and credits its quantity back to the day's stock
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [delete]
func DeleteAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&allocation).Error; err != nil {
			return err
		}

		stock, err := models.LockStockForDay(tx, allocation.Date)
		if err != nil {
			return err
		}

		stock.Remaining = stock.Remaining.Add(allocation.Quantity)
		return tx.Save(&stock).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// AllocationEditable represents all user configurable parameters
type AllocationEditable struct {
	Date         types.Day       `json:"alloc_date" example:"2024-03-01"`                            // Day the stock is allocated on
	LocationID   uuid.UUID       `json:"masjid_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the location
	RecipeTypeID uuid.UUID       `json:"recipe_code" example:"a6e30478-b4a6-4f83-975b-1c43cbd90a22"` // ID of the recipe type
	Required     decimal.Decimal `json:"req_qty" example:"120" default:"0"`                          // Pockets the location ordered
	Quantity     decimal.Decimal `json:"alloc_qty" example:"100" default:"0"`                        // Pockets actually allocated
	CreatedBy    string          `json:"created_by" example:"admin" default:""`                      // User who created the resource
}

func (editable AllocationEditable) model() models.Allocation {
	return models.Allocation{
		Date:         editable.Date,
		LocationID:   editable.LocationID,
		RecipeTypeID: editable.RecipeTypeID,
		Required:     editable.Required,
		Quantity:     editable.Quantity,
		CreatedBy:    editable.CreatedBy,
	}
}

type Allocation struct {
	models.DefaultModel
	AllocationEditable
	Balance decimal.Decimal `json:"balance_qty" example:"20"` // Remaining stock after this allocation
}

func newAllocation(model models.Allocation) Allocation {
	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			Date:         model.Date,
			LocationID:   model.LocationID,
			RecipeTypeID: model.RecipeTypeID,
			Required:     model.Required,
			Quantity:     model.Quantity,
			CreatedBy:    model.CreatedBy,
		},
		Balance: model.Balance,
	}
}

type AllocationListResponse struct {
	Data       []Allocation `json:"data"`                                                          // List of Allocations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AllocationCreateResponse struct {
	Data  []AllocationResponse `json:"data"`                                                                             // List of the created Allocations
	Error *string              `json:"error" example:"the allocated quantity exceeds the remaining stock for this date"` // The error, if any occurred
}

type AllocationResponse struct {
	Data  *Allocation `json:"data"`                                                          // Data for the Allocation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// OpenQuery is the query for endpoints that list open work for a date.
type OpenQuery struct {
	Date types.Day `form:"date"` // Date to check
}

// OpenAllocation is a location that ordered pockets for a date but has
// no allocation yet.
type OpenAllocation struct {
	LocationID   uuid.UUID       `json:"masjid_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the location
	LocationName string          `json:"masjid_name" example:"Masjid An-Noor"`                       // Name of the location
	Required     decimal.Decimal `json:"req_qty" example:"120"`                                      // Pockets the location ordered
}

type OpenAllocationListResponse struct {
	Data  []OpenAllocation `json:"data"`                                                 // Locations without an allocation
	Error *string          `json:"error" example:"the date query parameter must be set"` // The error, if any occurred
}

type AllocationQueryFilter struct {
	Date         types.Day    `form:"date"`                       // By date
	LocationID   fp_uuid.UUID `form:"location"`                   // By ID of the Location
	RecipeTypeID fp_uuid.UUID `form:"recipeType"`                 // By ID of the RecipeType
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first Allocation returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of Allocations to return. Defaults to 50.
}

func (f AllocationQueryFilter) model() models.Allocation {
	return models.Allocation{
		Date:         f.Date,
		LocationID:   f.LocationID.UUID,
		RecipeTypeID: f.RecipeTypeID.UUID,
	}
}
