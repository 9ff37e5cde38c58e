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

// RegisterMaterialReceiptRoutes registers the routes for material
// receipts with the RouterGroup that is passed.
func RegisterMaterialReceiptRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMaterialReceiptList)
		r.GET("", GetMaterialReceipts)
		r.POST("", CreateMaterialReceipts)
	}

	// MaterialReceipt with ID
	{
		r.OPTIONS("/:id", OptionsMaterialReceiptDetail)
		r.GET("/:id", GetMaterialReceipt)
		r.PATCH("/:id", UpdateMaterialReceipt)
		r.DELETE("/:id", DeleteMaterialReceipt)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MaterialReceipts
// @Success		204
// @Router			/v1/material-receipts [options]
func OptionsMaterialReceiptList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MaterialReceipts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/material-receipts/{id} [options]
func OptionsMaterialReceiptDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MaterialReceipt{})
}

// @Summary		Create material receipts
// @Description	Creates new material receipts
// @Tags			MaterialReceipts
// @Accept			json
// @Produce		json
// @Success		201			{object}	MaterialReceiptCreateResponse
// @Failure		400			{object}	MaterialReceiptCreateResponse
// @Failure		404			{object}	MaterialReceiptCreateResponse
// @Failure		500			{object}	MaterialReceiptCreateResponse
// @Param			receipts	body		[]MaterialReceiptEditable	true	"MaterialReceipts"
// @Router			/v1/material-receipts [post]
func CreateMaterialReceipts(c *gin.Context) {
	var editables []MaterialReceiptEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MaterialReceiptCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := MaterialReceiptCreateResponse{}

	for _, editable := range editables {
		receipt := editable.model()

		dbErr := models.DB.Create(&receipt).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newMaterialReceipt(receipt)
		r.Data = append(r.Data, MaterialReceiptResponse{Data: &data})
	}

	c.JSON(status, r)
}

func (r *MaterialReceiptCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, MaterialReceiptResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// @Summary		Get material receipts
// @Description	Returns a list of material receipts
// @Tags			MaterialReceipts
// @Produce		json
// @Success		200	{object}	MaterialReceiptListResponse
// @Failure		400	{object}	MaterialReceiptListResponse
// @Failure		500	{object}	MaterialReceiptListResponse
// @Router			/v1/material-receipts [get]
// @Param			date			query	string	false	"Filter by receipt date"
// @Param			requirementDate	query	string	false	"Filter by day requirement date"
// @Param			supplier		query	string	false	"Filter by supplier ID"
// @Param			item			query	string	false	"Filter by item ID"
// @Param			offset			query	uint	false	"The offset of the first MaterialReceipt returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of MaterialReceipts to return. Defaults to 50."
func GetMaterialReceipts(c *gin.Context) {
	var filter MaterialReceiptQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("receipt_date DESC, created_at ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var receipts []models.MaterialReceipt
	err := q.Find(&receipts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MaterialReceiptListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MaterialReceipt, 0)
	for _, receipt := range receipts {
		data = append(data, newMaterialReceipt(receipt))
	}

	c.JSON(http.StatusOK, MaterialReceiptListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get material receipt
// @Description	Returns a specific material receipt
// @Tags			MaterialReceipts
// @Produce		json
// @Success		200	{object}	MaterialReceiptResponse
// @Failure		400	{object}	MaterialReceiptResponse
// @Failure		404	{object}	MaterialReceiptResponse
// @Failure		500	{object}	MaterialReceiptResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/material-receipts/{id} [get]
func GetMaterialReceipt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptResponse{
			Error: &s,
		})
		return
	}

	var receipt models.MaterialReceipt
	err = models.DB.First(&receipt, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptResponse{
			Error: &s,
		})
		return
	}

	data := newMaterialReceipt(receipt)
	c.JSON(http.StatusOK, MaterialReceiptResponse{Data: &data})
}

// @Summary		Update material receipt
// @Description	Updates an existing material receipt. Only values to be updated need to be specified.
// @Tags			MaterialReceipts
// @Accept			json
// @Produce		json
// @Success		200		{object}	MaterialReceiptResponse
// @Failure		400		{object}	MaterialReceiptResponse
// @Failure		404		{object}	MaterialReceiptResponse
// @Failure		500		{object}	MaterialReceiptResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			receipt	body		MaterialReceiptEditable	true	"MaterialReceipt"
// @Router			/v1/material-receipts/{id} [patch]
func UpdateMaterialReceipt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptResponse{
			Error: &s,
		})
		return
	}

	var receipt models.MaterialReceipt
	err = models.DB.First(&receipt, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MaterialReceiptEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptResponse{
			Error: &s,
		})
		return
	}

	var data MaterialReceiptEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&receipt).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MaterialReceiptResponse{
			Error: &s,
		})
		return
	}

	apiResource := newMaterialReceipt(receipt)
	c.JSON(http.StatusOK, MaterialReceiptResponse{Data: &apiResource})
}

// @Summary		Delete material receipt
// @Description	Deletes a material receipt
// @Tags			MaterialReceipts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/material-receipts/{id} [delete]
func DeleteMaterialReceipt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var receipt models.MaterialReceipt
	err = models.DB.First(&receipt, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&receipt).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// MaterialReceiptEditable represents all user configurable parameters
type MaterialReceiptEditable struct {
	ReceiptDate     types.Day       `json:"receipt_date" example:"2024-03-01"`                        // Day the material was received
	RequirementDate types.Day       `json:"req_date" example:"2024-03-01"`                            // The day requirement the receipt settles
	SupplierID      uuid.UUID       `json:"sup_code" example:"677bbdcf-fd71-4a7c-b6d5-27d6ff367ab4"`  // ID of the supplier
	ItemID          uuid.UUID       `json:"item_code" example:"5415b6c9-a99b-4dfa-a25e-8178fbbc69e5"` // ID of the item
	Quantity        decimal.Decimal `json:"received_qty" example:"12.5" default:"0"`                  // Received quantity
	CreatedBy       string          `json:"created_by" example:"admin" default:""`                    // User who created the resource
}

func (editable MaterialReceiptEditable) model() models.MaterialReceipt {
	return models.MaterialReceipt{
		ReceiptDate:     editable.ReceiptDate,
		RequirementDate: editable.RequirementDate,
		SupplierID:      editable.SupplierID,
		ItemID:          editable.ItemID,
		Quantity:        editable.Quantity,
		CreatedBy:       editable.CreatedBy,
	}
}

type MaterialReceipt struct {
	models.DefaultModel
	MaterialReceiptEditable
}

func newMaterialReceipt(model models.MaterialReceipt) MaterialReceipt {
	return MaterialReceipt{
		DefaultModel: model.DefaultModel,
		MaterialReceiptEditable: MaterialReceiptEditable{
			ReceiptDate:     model.ReceiptDate,
			RequirementDate: model.RequirementDate,
			SupplierID:      model.SupplierID,
			ItemID:          model.ItemID,
			Quantity:        model.Quantity,
			CreatedBy:       model.CreatedBy,
		},
	}
}

type MaterialReceiptListResponse struct {
	Data       []MaterialReceipt `json:"data"`                                                          // List of MaterialReceipts
	Error      *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type MaterialReceiptCreateResponse struct {
	Data  []MaterialReceiptResponse `json:"data"`                                                           // List of the created MaterialReceipts
	Error *string                   `json:"error" example:"the received quantity must be larger than zero"` // The error, if any occurred
}

type MaterialReceiptResponse struct {
	Data  *MaterialReceipt `json:"data"`                                                          // Data for the MaterialReceipt
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MaterialReceiptQueryFilter struct {
	ReceiptDate     types.Day    `form:"date"`                       // By receipt date
	RequirementDate types.Day    `form:"requirementDate"`            // By day requirement date
	SupplierID      fp_uuid.UUID `form:"supplier"`                   // By ID of the Supplier
	ItemID          fp_uuid.UUID `form:"item"`                       // By ID of the Item
	Offset          uint         `form:"offset" filterField:"false"` // The offset of the first MaterialReceipt returned. Defaults to 0.
	Limit           int          `form:"limit" filterField:"false"`  // Maximum number of MaterialReceipts to return. Defaults to 50.
}

func (f MaterialReceiptQueryFilter) model() models.MaterialReceipt {
	return models.MaterialReceipt{
		ReceiptDate:     f.ReceiptDate,
		RequirementDate: f.RequirementDate,
		SupplierID:      f.SupplierID.UUID,
		ItemID:          f.ItemID.UUID,
	}
}
