package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCleaningLogRoutes registers the routes for cleaning logs
// with the RouterGroup that is passed.
func RegisterCleaningLogRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCleaningLogList)
		r.GET("", GetCleaningLogs)
		r.POST("", CreateCleaningLogs)
	}

	// CleaningLog with ID
	{
		r.OPTIONS("/:id", OptionsCleaningLogDetail)
		r.GET("/:id", GetCleaningLog)
		r.PATCH("/:id", UpdateCleaningLog)
		r.DELETE("/:id", DeleteCleaningLog)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CleaningLogs
// @Success		204
// @Router			/v1/cleaning-logs [options]
func OptionsCleaningLogList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CleaningLogs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cleaning-logs/{id} [options]
func OptionsCleaningLogDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CleaningLog{})
}

// @Summary		Create cleaning logs
// @Description	Creates new cleaning logs
// @Tags			CleaningLogs
// @Accept			json
// @Produce		json
// @Success		201		{object}	CleaningLogCreateResponse
// @Failure		400		{object}	CleaningLogCreateResponse
// @Failure		500		{object}	CleaningLogCreateResponse
// @Param			logs	body		[]CleaningLogEditable	true	"CleaningLogs"
// @Router			/v1/cleaning-logs [post]
func CreateCleaningLogs(c *gin.Context) {
	var editables []CleaningLogEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CleaningLogCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := CleaningLogCreateResponse{}

	for _, editable := range editables {
		log := editable.model()

		dbErr := models.DB.Create(&log).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newCleaningLog(log)
		r.Data = append(r.Data, CleaningLogResponse{Data: &data})
	}

	c.JSON(status, r)
}

func (r *CleaningLogCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CleaningLogResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// @Summary		Get cleaning logs
// @Description	Returns a list of cleaning logs
// @Tags			CleaningLogs
// @Produce		json
// @Success		200	{object}	CleaningLogListResponse
// @Failure		400	{object}	CleaningLogListResponse
// @Failure		500	{object}	CleaningLogListResponse
// @Router			/v1/cleaning-logs [get]
// @Param			date	query	string	false	"Filter by date"
// @Param			area	query	string	false	"Filter by area"
// @Param			offset	query	uint	false	"The offset of the first CleaningLog returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of CleaningLogs to return. Defaults to 50."
func GetCleaningLogs(c *gin.Context) {
	var filter CleaningLogQueryFilter

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

	var logs []models.CleaningLog
	err := q.Find(&logs).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CleaningLogListResponse{
			Error: &e,
		})
		return
	}

	data := make([]CleaningLog, 0)
	for _, log := range logs {
		data = append(data, newCleaningLog(log))
	}

	c.JSON(http.StatusOK, CleaningLogListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get cleaning log
// @Description	Returns a specific cleaning log
// @Tags			CleaningLogs
// @Produce		json
// @Success		200	{object}	CleaningLogResponse
// @Failure		400	{object}	CleaningLogResponse
// @Failure		404	{object}	CleaningLogResponse
// @Failure		500	{object}	CleaningLogResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cleaning-logs/{id} [get]
func GetCleaningLog(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogResponse{
			Error: &s,
		})
		return
	}

	var log models.CleaningLog
	err = models.DB.First(&log, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogResponse{
			Error: &s,
		})
		return
	}

	data := newCleaningLog(log)
	c.JSON(http.StatusOK, CleaningLogResponse{Data: &data})
}

// @Summary		Update cleaning log
// @Description	Updates an existing cleaning log. Only values to be updated need to be specified.
// @Tags			CleaningLogs
// @Accept			json
// @Produce		json
// @Success		200	{object}	CleaningLogResponse
// @Failure		400	{object}	CleaningLogResponse
// @Failure		404	{object}	CleaningLogResponse
// @Failure		500	{object}	CleaningLogResponse
// @Param			id	path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			log	body		CleaningLogEditable	true	"CleaningLog"
// @Router			/v1/cleaning-logs/{id} [patch]
func UpdateCleaningLog(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogResponse{
			Error: &s,
		})
		return
	}

	var log models.CleaningLog
	err = models.DB.First(&log, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CleaningLogEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogResponse{
			Error: &s,
		})
		return
	}

	var data CleaningLogEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&log).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CleaningLogResponse{
			Error: &s,
		})
		return
	}

	apiResource := newCleaningLog(log)
	c.JSON(http.StatusOK, CleaningLogResponse{Data: &apiResource})
}

// @Summary		Delete cleaning log
// @Description	Deletes a cleaning log
// @Tags			CleaningLogs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cleaning-logs/{id} [delete]
func DeleteCleaningLog(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var log models.CleaningLog
	err = models.DB.First(&log, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&log).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// CleaningLogEditable represents all user configurable parameters
type CleaningLogEditable struct {
	Date      types.Day `json:"cleaning_date" example:"2024-03-01"`                           // Day of the cleaning
	Area      string    `json:"area" example:"VESSEL"`                                        // The cleaned area
	Remarks   string    `json:"remarks" example:"Deep cleaned after lunch prep" default:""`   // Free-form remarks
	MediaURL  string    `json:"media_url" example:"https://cdn.example.com/v.mp4" default:""` // Link to photo or video evidence
	CreatedBy string    `json:"created_by" example:"admin" default:""`                        // User who created the resource
}

func (editable CleaningLogEditable) model() models.CleaningLog {
	return models.CleaningLog{
		Date:      editable.Date,
		Area:      editable.Area,
		Remarks:   editable.Remarks,
		MediaURL:  editable.MediaURL,
		CreatedBy: editable.CreatedBy,
	}
}

type CleaningLog struct {
	models.DefaultModel
	CleaningLogEditable
}

func newCleaningLog(model models.CleaningLog) CleaningLog {
	return CleaningLog{
		DefaultModel: model.DefaultModel,
		CleaningLogEditable: CleaningLogEditable{
			Date:      model.Date,
			Area:      model.Area,
			Remarks:   model.Remarks,
			MediaURL:  model.MediaURL,
			CreatedBy: model.CreatedBy,
		},
	}
}

type CleaningLogListResponse struct {
	Data       []CleaningLog `json:"data"`                                                          // List of CleaningLogs
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type CleaningLogCreateResponse struct {
	Data  []CleaningLogResponse `json:"data"`                                         // List of the created CleaningLogs
	Error *string               `json:"error" example:"the cleaning area is invalid"` // The error, if any occurred
}

type CleaningLogResponse struct {
	Data  *CleaningLog `json:"data"`                                                          // Data for the CleaningLog
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CleaningLogQueryFilter struct {
	Date   types.Day `form:"date"`                       // By date
	Area   string    `form:"area"`                       // By area
	Offset uint      `form:"offset" filterField:"false"` // The offset of the first CleaningLog returned. Defaults to 0.
	Limit  int       `form:"limit" filterField:"false"`  // Maximum number of CleaningLogs to return. Defaults to 50.
}

func (f CleaningLogQueryFilter) model() models.CleaningLog {
	return models.CleaningLog{
		Date: f.Date,
		Area: f.Area,
	}
}
