package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterUnitRoutes registers the routes for units with
// the RouterGroup that is passed.
func RegisterUnitRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsUnitList)
		r.GET("", GetUnits)
		r.POST("", CreateUnits)
	}

	// Unit with ID
	{
		r.OPTIONS("/:id", OptionsUnitDetail)
		r.GET("/:id", GetUnit)
		r.PATCH("/:id", UpdateUnit)
		r.DELETE("/:id", DeleteUnit)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Units
// @Success		204
// @Router			/v1/units [options]
func OptionsUnitList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Units
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/units/{id} [options]
func OptionsUnitDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Unit{})
}

// @Summary		Create units
// @Description	Creates new measurement units
// @Tags			Units
// @Produce		json
// @Success		201		{object}	UnitCreateResponse
// @Failure		400		{object}	UnitCreateResponse
// @Failure		500		{object}	UnitCreateResponse
// @Param			units	body		[]UnitEditable	true	"Units"
// @Router			/v1/units [post]
func CreateUnits(c *gin.Context) {
	var editables []UnitEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := UnitCreateResponse{}

	for _, editable := range editables {
		unit := editable.model()

		err = models.DB.Create(&unit).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newUnit(unit)
		r.Data = append(r.Data, UnitResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get units
// @Description	Returns a list of measurement units
// @Tags			Units
// @Produce		json
// @Success		200	{object}	UnitListResponse
// @Failure		400	{object}	UnitListResponse
// @Failure		500	{object}	UnitListResponse
// @Router			/v1/units [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			short	query	string	false	"Filter by short form"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first Unit returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Units to return. Defaults to 50."
func GetUnits(c *gin.Context) {
	var filter UnitQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Search)
	q = likeFilter(q, "short", filter.Short)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var units []models.Unit
	err := q.Find(&units).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Unit, 0)
	for _, unit := range units {
		data = append(data, newUnit(unit))
	}

	c.JSON(http.StatusOK, UnitListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get unit
// @Description	Returns a specific measurement unit
// @Tags			Units
// @Produce		json
// @Success		200	{object}	UnitResponse
// @Failure		400	{object}	UnitResponse
// @Failure		404	{object}	UnitResponse
// @Failure		500	{object}	UnitResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/units/{id} [get]
func GetUnit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	var unit models.Unit
	err = models.DB.First(&unit, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	data := newUnit(unit)
	c.JSON(http.StatusOK, UnitResponse{Data: &data})
}

// @Summary		Update unit
// @Description	Update an existing unit. Only values to be updated need to be specified.
// @Tags			Units
// @Accept			json
// @Produce		json
// @Success		200		{object}	UnitResponse
// @Failure		400		{object}	UnitResponse
// @Failure		404		{object}	UnitResponse
// @Failure		500		{object}	UnitResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			unit	body		UnitEditable	true	"Unit"
// @Router			/v1/units/{id} [patch]
func UpdateUnit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	var unit models.Unit
	err = models.DB.First(&unit, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, UnitEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	var data UnitEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&unit).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	r := newUnit(unit)
	c.JSON(http.StatusOK, UnitResponse{Data: &r})
}

// @Summary		Delete unit
// @Description	Deletes a unit
// @Tags			Units
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/units/{id} [delete]
func DeleteUnit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var unit models.Unit
	err = models.DB.First(&unit, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&unit).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// UnitEditable represents all user configurable parameters
type UnitEditable struct {
	Name      string `json:"unit_name" example:"Kilogram" default:""` // Name of the unit
	Short     string `json:"unit_short" example:"kg" default:""`      // Short form used in listings
	CreatedBy string `json:"created_by" example:"admin" default:""`   // User who created the resource
}

func (editable UnitEditable) model() models.Unit {
	return models.Unit{
		Name:      editable.Name,
		Short:     editable.Short,
		CreatedBy: editable.CreatedBy,
	}
}

type Unit struct {
	models.DefaultModel
	UnitEditable
}

func newUnit(model models.Unit) Unit {
	return Unit{
		DefaultModel: model.DefaultModel,
		UnitEditable: UnitEditable{
			Name:      model.Name,
			Short:     model.Short,
			CreatedBy: model.CreatedBy,
		},
	}
}

type UnitListResponse struct {
	Data       []Unit      `json:"data"`                                                          // List of Units
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UnitCreateResponse struct {
	Data  []UnitResponse `json:"data"`                                                          // List of the created Units or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *UnitCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, UnitResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UnitResponse struct {
	Data  *Unit   `json:"data"`                                                          // Data for the Unit
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UnitQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Short  string `form:"short" filterField:"false"`  // By short form
	Search string `form:"search" filterField:"false"` // By string in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Unit returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Units to return. Defaults to 50.
}

func (f UnitQueryFilter) model() models.Unit {
	return models.Unit{}
}
