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
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterScheduleRoutes registers the routes for cooking schedules with
// the RouterGroup that is passed.
func RegisterScheduleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsScheduleList)
		r.GET("", GetSchedules)
		r.POST("", CreateSchedules)
		r.POST("/bulk", CreateSchedulesBulk)
	}

	// Schedule with ID
	{
		r.OPTIONS("/:id", OptionsScheduleDetail)
		r.GET("/:id", GetSchedule)
		r.PATCH("/:id", UpdateSchedule)
		r.DELETE("/:id", DeleteSchedule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Schedules
// @Success		204
// @Router			/v1/schedules [options]
func OptionsScheduleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Schedules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/schedules/{id} [options]
func OptionsScheduleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Schedule{})
}

// @Summary		Create schedules
// @Description	Creates new cooking schedules
// @Tags			Schedules
// @Produce		json
// @Success		201			{object}	ScheduleCreateResponse
// @Failure		400			{object}	ScheduleCreateResponse
// @Failure		404			{object}	ScheduleCreateResponse
// @Failure		500			{object}	ScheduleCreateResponse
// @Param			schedules	body		[]ScheduleEditable	true	"Schedules"
// @Router			/v1/schedules [post]
func CreateSchedules(c *gin.Context) {
	var editables []ScheduleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScheduleCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := ScheduleCreateResponse{}

	for _, editable := range editables {
		schedule := editable.model()

		err = models.DB.Create(&schedule).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSchedule(schedule)
		r.Data = append(r.Data, ScheduleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Create schedules for a date range
// @Description	Expands the entries over every day in the inclusive date range. Days a recipe type is already scheduled for are skipped and counted.
// @Tags			Schedules
// @Accept			json
// @Produce		json
// @Success		201		{object}	BulkExpandResponse
// @Failure		400		{object}	BulkExpandResponse
// @Failure		404		{object}	BulkExpandResponse
// @Failure		500		{object}	BulkExpandResponse
// @Param			range	body		ScheduleBulkEditable	true	"Date range and entries"
// @Router			/v1/schedules/bulk [post]
func CreateSchedulesBulk(c *gin.Context) {
	var editable ScheduleBulkEditable

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

	// Load the pairs that already exist in the range so the expander
	// can skip them
	var existing []models.Schedule
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
	for _, schedule := range existing {
		taken[fmt.Sprintf("%s/%s", schedule.Date, schedule.RecipeTypeID)] = struct{}{}
	}

	expansion := quantify.Expand(editable.From, editable.To, editable.Entries,
		func(entry ScheduleBulkEntry) string { return entry.RecipeTypeID.String() },
		func(day types.Day, key string) bool {
			_, ok := taken[fmt.Sprintf("%s/%s", day, key)]
			return ok
		})

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range expansion.Rows {
			schedule := models.Schedule{
				Date:         row.Day,
				RecipeTypeID: row.Entry.RecipeTypeID,
				CreatedBy:    editable.CreatedBy,
			}

			if err := tx.Create(&schedule).Error; err != nil {
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

// @Summary		Get schedules
// @Description	Returns a list of cooking schedules
// @Tags			Schedules
// @Produce		json
// @Success		200	{object}	ScheduleListResponse
// @Failure		400	{object}	ScheduleListResponse
// @Failure		500	{object}	ScheduleListResponse
// @Router			/v1/schedules [get]
// @Param			date		query	string	false	"Filter by date"
// @Param			recipeType	query	string	false	"Filter by recipe type ID"
// @Param			offset		query	uint	false	"The offset of the first Schedule returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Schedules to return. Defaults to 50."
func GetSchedules(c *gin.Context) {
	var filter ScheduleQueryFilter

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

	var schedules []models.Schedule
	err := q.Find(&schedules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScheduleListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Schedule, 0)
	for _, schedule := range schedules {
		data = append(data, newSchedule(schedule))
	}

	c.JSON(http.StatusOK, ScheduleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get schedule
// @Description	Returns a specific cooking schedule
// @Tags			Schedules
// @Produce		json
// @Success		200	{object}	ScheduleResponse
// @Failure		400	{object}	ScheduleResponse
// @Failure		404	{object}	ScheduleResponse
// @Failure		500	{object}	ScheduleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/schedules/{id} [get]
func GetSchedule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	var schedule models.Schedule
	err = models.DB.First(&schedule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	data := newSchedule(schedule)
	c.JSON(http.StatusOK, ScheduleResponse{Data: &data})
}

// @Summary		Update schedule
// @Description	Update an existing schedule. Only values to be updated need to be specified.
// @Tags			Schedules
// @Accept			json
// @Produce		json
// @Success		200			{object}	ScheduleResponse
// @Failure		400			{object}	ScheduleResponse
// @Failure		404			{object}	ScheduleResponse
// @Failure		500			{object}	ScheduleResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			schedule	body		ScheduleEditable	true	"Schedule"
// @Router			/v1/schedules/{id} [patch]
func UpdateSchedule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	var schedule models.Schedule
	err = models.DB.First(&schedule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ScheduleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	var data ScheduleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&schedule).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduleResponse{
			Error: &s,
		})
		return
	}

	r := newSchedule(schedule)
	c.JSON(http.StatusOK, ScheduleResponse{Data: &r})
}

// @Summary		Delete schedule
// @Description	Deletes a schedule
// @Tags			Schedules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/schedules/{id} [delete]
func DeleteSchedule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var schedule models.Schedule
	err = models.DB.First(&schedule, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&schedule).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ScheduleEditable represents all user configurable parameters
type ScheduleEditable struct {
	Date         types.Day `json:"schedule_date" example:"2024-03-01"`                         // Day the recipe is cooked on
	RecipeTypeID uuid.UUID `json:"recipe_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the recipe type
	CreatedBy    string    `json:"created_by" example:"admin" default:""`                      // User who created the resource
}

func (editable ScheduleEditable) model() models.Schedule {
	return models.Schedule{
		Date:         editable.Date,
		RecipeTypeID: editable.RecipeTypeID,
		CreatedBy:    editable.CreatedBy,
	}
}

// ScheduleBulkEntry is one recipe type to schedule on every day of
// the range.
type ScheduleBulkEntry struct {
	RecipeTypeID uuid.UUID `json:"recipe_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the recipe type
}

type ScheduleBulkEditable struct {
	From      types.Day           `json:"req_date_from" example:"2024-03-01"` // First day of the range
	To        types.Day           `json:"req_date_to" example:"2024-03-07"`   // Last day of the range, inclusive
	Entries   []ScheduleBulkEntry `json:"entries"`                            // Recipe types to schedule per day
	CreatedBy string              `json:"created_by" example:"admin" default:""`
}

type Schedule struct {
	models.DefaultModel
	ScheduleEditable
}

func newSchedule(model models.Schedule) Schedule {
	return Schedule{
		DefaultModel: model.DefaultModel,
		ScheduleEditable: ScheduleEditable{
			Date:         model.Date,
			RecipeTypeID: model.RecipeTypeID,
			CreatedBy:    model.CreatedBy,
		},
	}
}

type ScheduleListResponse struct {
	Data       []Schedule  `json:"data"`                                                          // List of Schedules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ScheduleCreateResponse struct {
	Data  []ScheduleResponse `json:"data"`                                                          // List of the created Schedules or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ScheduleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ScheduleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ScheduleResponse struct {
	Data  *Schedule `json:"data"`                                                          // Data for the Schedule
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BulkExpandResult reports how a date range expansion went.
type BulkExpandResult struct {
	Created           int `json:"created" example:"14"`          // Rows created
	SkippedDuplicates int `json:"skippedDuplicates" example:"2"` // Pairs skipped because they already existed
}

type BulkExpandResponse struct {
	Data  *BulkExpandResult `json:"data"`                                                         // Result of the expansion
	Error *string           `json:"error" example:"the to date must not be before the from date"` // The error, if any occurred
}

type ScheduleQueryFilter struct {
	Date         types.Day    `form:"date"`                       // By date
	RecipeTypeID fp_uuid.UUID `form:"recipeType"`                 // By ID of the RecipeType
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first Schedule returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of Schedules to return. Defaults to 50.
}

func (f ScheduleQueryFilter) model() models.Schedule {
	return models.Schedule{
		Date:         f.Date,
		RecipeTypeID: f.RecipeTypeID.UUID,
	}
}
