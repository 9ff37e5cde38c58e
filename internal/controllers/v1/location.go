package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterLocationRoutes registers the routes for locations with
// the RouterGroup that is passed.
func RegisterLocationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsLocationList)
		r.GET("", GetLocations)
		r.POST("", CreateLocations)
	}

	// Location with ID
	{
		r.OPTIONS("/:id", OptionsLocationDetail)
		r.GET("/:id", GetLocation)
		r.PATCH("/:id", UpdateLocation)
		r.DELETE("/:id", DeleteLocation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Locations
// @Success		204
// @Router			/v1/locations [options]
func OptionsLocationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Locations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/locations/{id} [options]
func OptionsLocationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Location{})
}

// @Summary		Create locations
// @Description	Creates new delivery locations
// @Tags			Locations
// @Produce		json
// @Success		201			{object}	LocationCreateResponse
// @Failure		400			{object}	LocationCreateResponse
// @Failure		500			{object}	LocationCreateResponse
// @Param			locations	body		[]LocationEditable	true	"Locations"
// @Router			/v1/locations [post]
func CreateLocations(c *gin.Context) {
	var editables []LocationEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LocationCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := LocationCreateResponse{}

	for _, editable := range editables {
		location := editable.model()

		err = models.DB.Create(&location).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newLocation(location)
		r.Data = append(r.Data, LocationResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get locations
// @Description	Returns a list of delivery locations
// @Tags			Locations
// @Produce		json
// @Success		200	{object}	LocationListResponse
// @Failure		400	{object}	LocationListResponse
// @Failure		500	{object}	LocationListResponse
// @Router			/v1/locations [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			city		query	string	false	"Filter by city"
// @Param			archived	query	bool	false	"Is the location archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Location returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Locations to return. Defaults to 50."
func GetLocations(c *gin.Context) {
	var filter LocationQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Search)
	q = likeFilter(q, "city", filter.City)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Locations and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var locations []models.Location
	err := q.Find(&locations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LocationListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Location, 0)
	for _, location := range locations {
		data = append(data, newLocation(location))
	}

	c.JSON(http.StatusOK, LocationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get location
// @Description	Returns a specific delivery location
// @Tags			Locations
// @Produce		json
// @Success		200	{object}	LocationResponse
// @Failure		400	{object}	LocationResponse
// @Failure		404	{object}	LocationResponse
// @Failure		500	{object}	LocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/locations/{id} [get]
func GetLocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationResponse{
			Error: &s,
		})
		return
	}

	var location models.Location
	err = models.DB.First(&location, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationResponse{
			Error: &s,
		})
		return
	}

	data := newLocation(location)
	c.JSON(http.StatusOK, LocationResponse{Data: &data})
}

// @Summary		Update location
// @Description	Update an existing location. Only values to be updated need to be specified.
// @Tags			Locations
// @Accept			json
// @Produce		json
// @Success		200			{object}	LocationResponse
// @Failure		400			{object}	LocationResponse
// @Failure		404			{object}	LocationResponse
// @Failure		500			{object}	LocationResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			location	body		LocationEditable	true	"Location"
// @Router			/v1/locations/{id} [patch]
func UpdateLocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationResponse{
			Error: &s,
		})
		return
	}

	var location models.Location
	err = models.DB.First(&location, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, LocationEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationResponse{
			Error: &s,
		})
		return
	}

	var data LocationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&location).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LocationResponse{
			Error: &s,
		})
		return
	}

	r := newLocation(location)
	c.JSON(http.StatusOK, LocationResponse{Data: &r})
}

// @Summary		Delete location
// @Description	Deletes a location
// @Tags			Locations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/locations/{id} [delete]
func DeleteLocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var location models.Location
	err = models.DB.First(&location, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&location).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// LocationEditable represents all user configurable parameters
type LocationEditable struct {
	Name      string `json:"masjid_name" example:"Masjid An-Noor" default:""`  // Name of the location
	Address   string `json:"masjid_address" example:"12 Hill Road" default:""` // Street address
	City      string `json:"masjid_city" example:"Chennai" default:""`         // City the location is in
	CreatedBy string `json:"created_by" example:"admin" default:""`            // User who created the resource
	Archived  bool   `json:"archived" example:"true" default:"false"`          // Is the location archived?
}

func (editable LocationEditable) model() models.Location {
	return models.Location{
		Name:      editable.Name,
		Address:   editable.Address,
		City:      editable.City,
		CreatedBy: editable.CreatedBy,
		Archived:  editable.Archived,
	}
}

type Location struct {
	models.DefaultModel
	LocationEditable
}

func newLocation(model models.Location) Location {
	return Location{
		DefaultModel: model.DefaultModel,
		LocationEditable: LocationEditable{
			Name:      model.Name,
			Address:   model.Address,
			City:      model.City,
			CreatedBy: model.CreatedBy,
			Archived:  model.Archived,
		},
	}
}

type LocationListResponse struct {
	Data       []Location  `json:"data"`                                                          // List of Locations
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type LocationCreateResponse struct {
	Data  []LocationResponse `json:"data"`                                                          // List of the created Locations or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *LocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, LocationResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LocationResponse struct {
	Data  *Location `json:"data"`                                                          // Data for the Location
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LocationQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	City     string `form:"city" filterField:"false"`   // By city
	Archived bool   `form:"archived"`                   // Is the Location archived?
	Search   string `form:"search" filterField:"false"` // By string in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Location returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Locations to return. Defaults to 50.
}

func (f LocationQueryFilter) model() models.Location {
	return models.Location{
		Archived: f.Archived,
	}
}
