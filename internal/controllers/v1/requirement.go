package v1

import (
	"fmt"
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

// RegisterRequirementRoutes registers the routes for pocket requirements with
// the RouterGroup that is passed.
func RegisterRequirementRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRequirementList)
		r.GET("", GetRequirements)
		r.POST("", CreateRequirements)
		r.POST("/bulk", CreateRequirementsBulk)
	}

	// Requirement with ID
	{
		r.OPTIONS("/:id", OptionsRequirementDetail)
		r.GET("/:id", GetRequirement)
		r.PATCH("/:id", UpdateRequirement)
		r.DELETE("/:id", DeleteRequirement)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Requirements
// @Success		204
// @Router			/v1/requirements [options]
func OptionsRequirementList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Requirements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/requirements/{id} [options]
func OptionsRequirementDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Requirement{})
}

// @Summary		Create requirements
// @Description	Creates new pocket requirements
// @Tags			Requirements
// @Produce		json
// @Success		201				{object}	RequirementCreateResponse
// @Failure		400				{object}	RequirementCreateResponse
// @Failure		404				{object}	RequirementCreateResponse
// @Failure		500				{object}	RequirementCreateResponse
// @Param			requirements	body		[]RequirementEditable	true	"Requirements"
// @Router			/v1/requirements [post]
func CreateRequirements(c *gin.Context) {
	var editables []RequirementEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequirementCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := RequirementCreateResponse{}

	for _, editable := range editables {
		requirement := editable.model()

		err = models.DB.Create(&requirement).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRequirement(requirement)
		r.Data = append(r.Data, RequirementResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Create requirements for a date range
// @Description	Expands the entries over every day in the inclusive date range. Days a location already has a requirement for are skipped and counted.
// @Tags			Requirements
// @Accept			json
// @Produce		json
// @Success		201		{object}	BulkExpandResponse
// @Failure		400		{object}	BulkExpandResponse
// @Failure		404		{object}	BulkExpandResponse
// @Failure		500		{object}	BulkExpandResponse
// @Param			range	body		RequirementBulkEditable	true	"Date range and entries"
// @Router			/v1/requirements/bulk [post]
func CreateRequirementsBulk(c *gin.Context) {
	var editable RequirementBulkEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BulkExpandResponse{
			Error: &e,
		})
		return
	}

	if len(editable.Entries) == 0 {
		e := errBulkNoEntries.Error()
		c.JSON(http.StatusBadRequest, BulkExpandResponse{
			Error: &e,
		})
		return
	}

	if editable.To.Before(editable.From) {
		e := errBulkRangeReversed.Error()
		c.JSON(http.StatusBadRequest, BulkExpandResponse{
			Error: &e,
		})
		return
	}

	var existing []models.Requirement
	err = models.DB.
		Where("date >= ? AND date <= ?", editable.From, editable.To).
		Find(&existing).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BulkExpandResponse{
			Error: &e,
		})
		return
	}

	taken := make(map[string]struct{}, len(existing))
	for _, requirement := range existing {
		taken[fmt.Sprintf("%s/%s", requirement.Date, requirement.LocationID)] = struct{}{}
	}

	expansion := quantify.Expand(editable.From, editable.To, editable.Entries,
		func(entry RequirementBulkEntry) string { return entry.LocationID.String() },
		func(day types.Day, key string) bool {
			_, ok := taken[fmt.Sprintf("%s/%s", day, key)]
			return ok
		})

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range expansion.Rows {
			requirement := models.Requirement{
				Date:       row.Day,
				LocationID: row.Entry.LocationID,
				Quantity:   row.Entry.Quantity,
				CreatedBy:  editable.CreatedBy,
			}

			if err := tx.Create(&requirement).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BulkExpandResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, BulkExpandResponse{
		Data: &BulkExpandResult{
			Created:           len(expansion.Rows),
			SkippedDuplicates: expansion.SkippedDuplicates,
		},
	})
}

// @Summary		Get requirements
// @Description	Returns a list of pocket requirements
// @Tags			Requirements
// @Produce		json
// @Success		200	{object}	RequirementListResponse
// @Failure		400	{object}	RequirementListResponse
// @Failure		500	{object}	RequirementListResponse
// @Router			/v1/requirements [get]
// @Param			date		query	string	false	"Filter by date"
// @Param			location	query	string	false	"Filter by location ID"
// @Param			offset		query	uint	false	"The offset of the first Requirement returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Requirements to return. Defaults to 50."
func GetRequirements(c *gin.Context) {
	var filter RequirementQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("date ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var requirements []models.Requirement
	err := q.Find(&requirements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequirementListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Requirement, 0)
	for _, requirement := range requirements {
		data = append(data, newRequirement(requirement))
	}

	c.JSON(http.StatusOK, RequirementListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get requirement
// @Description	Returns a specific pocket requirement
// @Tags			Requirements
// @Produce		json
// @Success		200	{object}	RequirementResponse
// @Failure		400	{object}	RequirementResponse
// @Failure		404	{object}	RequirementResponse
// @Failure		500	{object}	RequirementResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/requirements/{id} [get]
func GetRequirement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &s,
		})
		return
	}

	var requirement models.Requirement
	err = models.DB.First(&requirement, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &s,
		})
		return
	}

	data := newRequirement(requirement)
	c.JSON(http.StatusOK, RequirementResponse{Data: &data})
}

// @Summary		Update requirement
// @Description	Update an existing requirement. Only values to be updated need to be specified.
// @Tags			Requirements
// @Accept			json
// @Produce		json
// @Success		200			{object}	RequirementResponse
// @Failure		400			{object}	RequirementResponse
// @Failure		404			{object}	RequirementResponse
// @Failure		500			{object}	RequirementResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			requirement	body		RequirementEditable		true	"Requirement"
// @Router			/v1/requirements/{id} [patch]
func UpdateRequirement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &s,
		})
		return
	}

	var requirement models.Requirement
	err = models.DB.First(&requirement, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RequirementEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &s,
		})
		return
	}

	var data RequirementEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&requirement).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &s,
		})
		return
	}

	r := newRequirement(requirement)
	c.JSON(http.StatusOK, RequirementResponse{Data: &r})
}

// @Summary		Delete requirement
// @Description	Deletes a requirement
// @Tags			Requirements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/requirements/{id} [delete]
func DeleteRequirement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var requirement models.Requirement
	err = models.DB.First(&requirement, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&requirement).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// RequirementEditable represents all user configurable parameters
type RequirementEditable struct {
	Date       types.Day       `json:"req_date" example:"2024-03-01"`                              // Day the pockets are needed on
	LocationID uuid.UUID       `json:"masjid_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the location
	Quantity   decimal.Decimal `json:"req_qty" example:"120" default:"0"`                          // Pockets needed
	CreatedBy  string          `json:"created_by" example:"admin" default:""`                      // User who created the resource
}

func (editable RequirementEditable) model() models.Requirement {
	return models.Requirement{
		Date:       editable.Date,
		LocationID: editable.LocationID,
		Quantity:   editable.Quantity,
		CreatedBy:  editable.CreatedBy,
	}
}

// RequirementBulkEntry is one location and quantity to require on
// every day of the range.
type RequirementBulkEntry struct {
	LocationID uuid.UUID       `json:"masjid_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the location
	Quantity   decimal.Decimal `json:"req_qty" example:"120" default:"0"`                          // Pockets needed per day
}

type RequirementBulkEditable struct {
	From      types.Day              `json:"req_date_from" example:"2024-03-01"` // First day of the range
	To        types.Day              `json:"req_date_to" example:"2024-03-07"`   // Last day of the range, inclusive
	Entries   []RequirementBulkEntry `json:"entries"`                            // Location quantities per day
	CreatedBy string                 `json:"created_by" example:"admin" default:""`
}

type Requirement struct {
	models.DefaultModel
	RequirementEditable
}

func newRequirement(model models.Requirement) Requirement {
	return Requirement{
		DefaultModel: model.DefaultModel,
		RequirementEditable: RequirementEditable{
			Date:       model.Date,
			LocationID: model.LocationID,
			Quantity:   model.Quantity,
			CreatedBy:  model.CreatedBy,
		},
	}
}

type RequirementListResponse struct {
	Data       []Requirement `json:"data"`                                                          // List of Requirements
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type RequirementCreateResponse struct {
	Data  []RequirementResponse `json:"data"`                                                          // List of the created Requirements or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RequirementCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RequirementResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RequirementResponse struct {
	Data  *Requirement `json:"data"`                                                          // Data for the Requirement
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RequirementQueryFilter struct {
	Date       types.Day    `form:"date"`                       // By date
	LocationID fp_uuid.UUID `form:"location"`                   // By ID of the Location
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Requirement returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of Requirements to return. Defaults to 50.
}

func (f RequirementQueryFilter) model() models.Requirement {
	return models.Requirement{
		Date:       f.Date,
		LocationID: f.LocationID.UUID,
	}
}
