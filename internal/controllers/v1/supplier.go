package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSupplierRoutes registers the routes for suppliers with
// the RouterGroup that is passed.
func RegisterSupplierRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSupplierList)
		r.GET("", GetSuppliers)
		r.POST("", CreateSuppliers)
	}

	// Supplier with ID
	{
		r.OPTIONS("/:id", OptionsSupplierDetail)
		r.GET("/:id", GetSupplier)
		r.PATCH("/:id", UpdateSupplier)
		r.DELETE("/:id", DeleteSupplier)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Suppliers
// @Success		204
// @Router			/v1/suppliers [options]
func OptionsSupplierList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Suppliers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/suppliers/{id} [options]
func OptionsSupplierDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Supplier{})
}

// @Summary		Create suppliers
// @Description	Creates new suppliers
// @Tags			Suppliers
// @Produce		json
// @Success		201			{object}	SupplierCreateResponse
// @Failure		400			{object}	SupplierCreateResponse
// @Failure		500			{object}	SupplierCreateResponse
// @Param			suppliers	body		[]SupplierEditable	true	"Suppliers"
// @Router			/v1/suppliers [post]
func CreateSuppliers(c *gin.Context) {
	var editables []SupplierEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SupplierCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := SupplierCreateResponse{}

	for _, editable := range editables {
		supplier := editable.model()

		err = models.DB.Create(&supplier).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSupplier(supplier)
		r.Data = append(r.Data, SupplierResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get suppliers
// @Description	Returns a list of suppliers
// @Tags			Suppliers
// @Produce		json
// @Success		200	{object}	SupplierListResponse
// @Failure		400	{object}	SupplierListResponse
// @Failure		500	{object}	SupplierListResponse
// @Router			/v1/suppliers [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			city		query	string	false	"Filter by city"
// @Param			archived	query	bool	false	"Is the supplier archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Supplier returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Suppliers to return. Defaults to 50."
func GetSuppliers(c *gin.Context) {
	var filter SupplierQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Search)
	q = likeFilter(q, "city", filter.City)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var suppliers []models.Supplier
	err := q.Find(&suppliers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SupplierListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Supplier, 0)
	for _, supplier := range suppliers {
		data = append(data, newSupplier(supplier))
	}

	c.JSON(http.StatusOK, SupplierListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get supplier
// @Description	Returns a specific supplier
// @Tags			Suppliers
// @Produce		json
// @Success		200	{object}	SupplierResponse
// @Failure		400	{object}	SupplierResponse
// @Failure		404	{object}	SupplierResponse
// @Failure		500	{object}	SupplierResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/suppliers/{id} [get]
func GetSupplier(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierResponse{
			Error: &s,
		})
		return
	}

	var supplier models.Supplier
	err = models.DB.First(&supplier, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierResponse{
			Error: &s,
		})
		return
	}

	data := newSupplier(supplier)
	c.JSON(http.StatusOK, SupplierResponse{Data: &data})
}

// @Summary		Update supplier
// @Description	Update an existing supplier. Only values to be updated need to be specified.
// @Tags			Suppliers
// @Accept			json
// @Produce		json
// @Success		200			{object}	SupplierResponse
// @Failure		400			{object}	SupplierResponse
// @Failure		404			{object}	SupplierResponse
// @Failure		500			{object}	SupplierResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			supplier	body		SupplierEditable	true	"Supplier"
// @Router			/v1/suppliers/{id} [patch]
func UpdateSupplier(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierResponse{
			Error: &s,
		})
		return
	}

	var supplier models.Supplier
	err = models.DB.First(&supplier, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SupplierEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierResponse{
			Error: &s,
		})
		return
	}

	var data SupplierEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&supplier).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SupplierResponse{
			Error: &s,
		})
		return
	}

	r := newSupplier(supplier)
	c.JSON(http.StatusOK, SupplierResponse{Data: &r})
}

// @Summary		Delete supplier
// @Description	Deletes a supplier
// @Tags			Suppliers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/suppliers/{id} [delete]
func DeleteSupplier(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var supplier models.Supplier
	err = models.DB.First(&supplier, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&supplier).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// SupplierEditable represents all user configurable parameters
type SupplierEditable struct {
	Name      string `json:"sup_name" example:"Noor Traders" default:""` // Name of the supplier
	Address   string `json:"sup_add" example:"4 Market Lane" default:""` // Street address
	City      string `json:"sup_city" example:"Chennai" default:""`      // City the supplier operates from
	Mobile    string `json:"sup_mobile" example:"9840012345" default:""` // Contact number
	CreatedBy string `json:"created_by" example:"admin" default:""`      // User who created the resource
	Archived  bool   `json:"archived" example:"true" default:"false"`    // Is the supplier archived?
}

func (editable SupplierEditable) model() models.Supplier {
	return models.Supplier{
		Name:      editable.Name,
		Address:   editable.Address,
		City:      editable.City,
		Mobile:    editable.Mobile,
		CreatedBy: editable.CreatedBy,
		Archived:  editable.Archived,
	}
}

type Supplier struct {
	models.DefaultModel
	SupplierEditable
}

func newSupplier(model models.Supplier) Supplier {
	return Supplier{
		DefaultModel: model.DefaultModel,
		SupplierEditable: SupplierEditable{
			Name:      model.Name,
			Address:   model.Address,
			City:      model.City,
			Mobile:    model.Mobile,
			CreatedBy: model.CreatedBy,
			Archived:  model.Archived,
		},
	}
}

type SupplierListResponse struct {
	Data       []Supplier  `json:"data"`                                                          // List of Suppliers
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SupplierCreateResponse struct {
	Data  []SupplierResponse `json:"data"`                                                          // List of the created Suppliers or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *SupplierCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, SupplierResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SupplierResponse struct {
	Data  *Supplier `json:"data"`                                                          // Data for the Supplier
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SupplierQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	City     string `form:"city" filterField:"false"`   // By city
	Archived bool   `form:"archived"`                   // Is the Supplier archived?
	Search   string `form:"search" filterField:"false"` // By string in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Supplier returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Suppliers to return. Defaults to 50.
}

func (f SupplierQueryFilter) model() models.Supplier {
	return models.Supplier{
		Archived: f.Archived,
	}
}
