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
)

// RegisterDeliveryRoutes registers the routes for deliveries with
// the RouterGroup that is passed.
func RegisterDeliveryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDeliveryList)
		r.GET("", GetDeliveries)
		r.POST("", CreateDeliveries)
		r.GET("/open", GetOpenDeliveries)
	}

	// Delivery with ID
	{
		r.OPTIONS("/:id", OptionsDeliveryDetail)
		r.GET("/:id", GetDelivery)
		r.PATCH("/:id", UpdateDelivery)
		r.DELETE("/:id", DeleteDelivery)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deliveries
// @Success		204
// @Router			/v1/deliveries [options]
func OptionsDeliveryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deliveries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deliveries/{id} [options]
func OptionsDeliveryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Delivery{})
}

// @Summary		Create deliveries
// @Description	Creates new deliveries
// @Tags			Deliveries
// @Accept			json
// @Produce		json
// @Success		201			{object}	DeliveryCreateResponse
// @Failure		400			{object}	DeliveryCreateResponse
// @Failure		404			{object}	DeliveryCreateResponse
// @Failure		500			{object}	DeliveryCreateResponse
// @Param			deliveries	body		[]DeliveryEditable	true	"Deliveries"
// @Router			/v1/deliveries [post]
func CreateDeliveries(c *gin.Context) {
	var editables []DeliveryEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeliveryCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := DeliveryCreateResponse{}

	for _, editable := range editables {
		delivery := editable.model()

		dbErr := models.DB.Create(&delivery).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newDelivery(delivery)
		r.Data = append(r.Data, DeliveryResponse{Data: &data})
	}

	c.JSON(status, r)
}

func (r *DeliveryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, DeliveryResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// @Summary		Get open deliveries
// @Description	Returns the allocations for a date that do not have a delivery recorded yet
// @Tags			Deliveries
// @Produce		json
// @Success		200		{object}	OpenDeliveryListResponse
// @Failure		400		{object}	OpenDeliveryListResponse
// @Failure		500		{object}	OpenDeliveryListResponse
// @Param			date	query		string	true	"Date to check"
// @Router			/v1/deliveries/open [get]
func GetOpenDeliveries(c *gin.Context) {
	var query OpenQuery
	_ = c.Bind(&query)

	if query.Date.IsZero() {
		s := errDateNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, OpenDeliveryListResponse{
			Error: &s,
		})
		return
	}

	var allocations []models.Allocation
	err := models.DB.
		Where("date = ?", query.Date).
		Order("created_at ASC").
		Find(&allocations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OpenDeliveryListResponse{
			Error: &s,
		})
		return
	}

	delivered, err := models.DeliveredLocationIDs(models.DB, query.Date)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OpenDeliveryListResponse{
			Error: &s,
		})
		return
	}

	data := make([]OpenDelivery, 0)
	for _, allocation := range allocations {
		if slices.Contains(delivered, allocation.LocationID) {
			continue
		}

		var location models.Location
		err = models.DB.First(&location, allocation.LocationID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), OpenDeliveryListResponse{
				Error: &s,
			})
			return
		}

		data = append(data, OpenDelivery{
			LocationID:   allocation.LocationID,
			LocationName: location.Name,
			Allocated:    allocation.Quantity,
		})
	}

	c.JSON(http.StatusOK, OpenDeliveryListResponse{Data: data})
}

// @Summary		Get deliveries
// @Description	Returns a list of deliveries
// @Tags			Deliveries
// @Produce		json
// @Success		200	{object}	DeliveryListResponse
// @Failure		400	{object}	DeliveryListResponse
// @Failure		500	{object}	DeliveryListResponse
// @Router			/v1/deliveries [get]
// @Param			date		query	string	false	"Filter by date"
// @Param			location	query	string	false	"Filter by location ID"
// @Param			offset		query	uint	false	"The offset of the first Delivery returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Deliveries to return. Defaults to 50."
func GetDeliveries(c *gin.Context) {
	var filter DeliveryQueryFilter

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

	var deliveries []models.Delivery
	err := q.Find(&deliveries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeliveryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Delivery, 0)
	for _, delivery := range deliveries {
		data = append(data, newDelivery(delivery))
	}

	c.JSON(http.StatusOK, DeliveryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get delivery
// @Description	Returns a specific delivery
// @Tags			Deliveries
// @Produce		json
// @Success		200	{object}	DeliveryResponse
// @Failure		400	{object}	DeliveryResponse
// @Failure		404	{object}	DeliveryResponse
// @Failure		500	{object}	DeliveryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deliveries/{id} [get]
func GetDelivery(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryResponse{
			Error: &s,
		})
		return
	}

	var delivery models.Delivery
	err = models.DB.First(&delivery, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryResponse{
			Error: &s,
		})
		return
	}

	data := newDelivery(delivery)
	c.JSON(http.StatusOK, DeliveryResponse{Data: &data})
}

// @Summary		Update delivery
// @Description	Updates an existing delivery. Only values to be updated need to be specified.
// @Tags			Deliveries
// @Accept			json
// @Produce		json
// @Success		200			{object}	DeliveryResponse
// @Failure		400			{object}	DeliveryResponse
// @Failure		404			{object}	DeliveryResponse
// @Failure		500			{object}	DeliveryResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			delivery	body		DeliveryEditable	true	"Delivery"
// @Router			/v1/deliveries/{id} [patch]
func UpdateDelivery(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryResponse{
			Error: &s,
		})
		return
	}

	var delivery models.Delivery
	err = models.DB.First(&delivery, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DeliveryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryResponse{
			Error: &s,
		})
		return
	}

	var data DeliveryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&delivery).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeliveryResponse{
			Error: &s,
		})
		return
	}

	apiResource := newDelivery(delivery)
	c.JSON(http.StatusOK, DeliveryResponse{Data: &apiResource})
}

// @Summary		Delete delivery
// @Description	Deletes a delivery
// @Tags			Deliveries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deliveries/{id} [delete]
func DeleteDelivery(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var delivery models.Delivery
	err = models.DB.First(&delivery, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&delivery).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// DeliveryEditable represents all user configurable parameters
type DeliveryEditable struct {
	Date        types.Day       `json:"delivery_date" example:"2024-03-01"`                         // Day the food was handed over
	LocationID  uuid.UUID       `json:"masjid_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the location
	Quantity    decimal.Decimal `json:"delivery_qty" example:"100" default:"0"`                     // Pockets handed over
	Time        string          `json:"delivery_time" example:"12:30" default:""`                   // Time of day of the handover
	DeliveredBy string          `json:"delivery_by" example:"driver1" default:""`                   // User who recorded the delivery
}

func (editable DeliveryEditable) model() models.Delivery {
	return models.Delivery{
		Date:        editable.Date,
		LocationID:  editable.LocationID,
		Quantity:    editable.Quantity,
		Time:        editable.Time,
		DeliveredBy: editable.DeliveredBy,
	}
}

type Delivery struct {
	models.DefaultModel
	DeliveryEditable
}

func newDelivery(model models.Delivery) Delivery {
	return Delivery{
		DefaultModel: model.DefaultModel,
		DeliveryEditable: DeliveryEditable{
			Date:        model.Date,
			LocationID:  model.LocationID,
			Quantity:    model.Quantity,
			Time:        model.Time,
			DeliveredBy: model.DeliveredBy,
		},
	}
}

type DeliveryListResponse struct {
	Data       []Delivery  `json:"data"`                                                          // List of Deliveries
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DeliveryCreateResponse struct {
	Data  []DeliveryResponse `json:"data"`                                                                                 // List of the created Deliveries
	Error *string            `json:"error" example:"a delivery for this location has already been recorded for this date"` // The error, if any occurred
}

type DeliveryResponse struct {
	Data  *Delivery `json:"data"`                                                          // Data for the Delivery
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// OpenDelivery is an allocation for a date that has no delivery
// recorded yet.
type OpenDelivery struct {
	LocationID   uuid.UUID       `json:"masjid_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the location
	LocationName string          `json:"masjid_name" example:"Masjid An-Noor"`                       // Name of the location
	Allocated    decimal.Decimal `json:"alloc_qty" example:"100"`                                    // Pockets allocated to the location
}

type OpenDeliveryListResponse struct {
	Data  []OpenDelivery `json:"data"`                                                 // Allocations without a delivery
	Error *string        `json:"error" example:"the date query parameter must be set"` // The error, if any occurred
}

type DeliveryQueryFilter struct {
	Date       types.Day    `form:"date"`                       // By date
	LocationID fp_uuid.UUID `form:"location"`                   // By ID of the Location
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Delivery returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of Deliveries to return. Defaults to 50.
}

func (f DeliveryQueryFilter) model() models.Delivery {
	return models.Delivery{
		Date:       f.Date,
		LocationID: f.LocationID.UUID,
	}
}
