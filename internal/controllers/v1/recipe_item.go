package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	fp_uuid "github.com/fpda/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterRecipeItemRoutes registers the routes for recipe ingredients with
// the RouterGroup that is passed.
func RegisterRecipeItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecipeItemList)
		r.GET("", GetRecipeItems)
		r.POST("", CreateRecipeItems)
	}

	// Recipe ingredient with ID
	{
		r.OPTIONS("/:id", OptionsRecipeItemDetail)
		r.GET("/:id", GetRecipeItem)
		r.PATCH("/:id", UpdateRecipeItem)
		r.DELETE("/:id", DeleteRecipeItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecipeItems
// @Success		204
// @Router			/v1/recipe-items [options]
func OptionsRecipeItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecipeItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recipe-items/{id} [options]
func OptionsRecipeItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecipeItem{})
}

// @Summary		Create recipe ingredients
// @Description	Creates new ingredient ratios for a recipe type
// @Tags			RecipeItems
// @Produce		json
// @Success		201			{object}	RecipeItemCreateResponse
// @Failure		400			{object}	RecipeItemCreateResponse
// @Failure		404			{object}	RecipeItemCreateResponse
// @Failure		500			{object}	RecipeItemCreateResponse
// @Param			ingredients	body		[]RecipeItemEditable	true	"RecipeItems"
// @Router			/v1/recipe-items [post]
func CreateRecipeItems(c *gin.Context) {
	var editables []RecipeItemEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipeItemCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := RecipeItemCreateResponse{}

	for _, editable := range editables {
		ingredient := editable.model()

		err = models.DB.Create(&ingredient).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecipeItem(ingredient)
		r.Data = append(r.Data, RecipeItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recipe ingredients
// @Description	Returns a list of recipe ingredients
// @Tags			RecipeItems
// @Produce		json
// @Success		200	{object}	RecipeItemListResponse
// @Failure		400	{object}	RecipeItemListResponse
// @Failure		500	{object}	RecipeItemListResponse
// @Router			/v1/recipe-items [get]
// @Param			recipeType	query	string	false	"Filter by recipe type ID"
// @Param			item		query	string	false	"Filter by item ID"
// @Param			offset		query	uint	false	"The offset of the first RecipeItem returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of RecipeItems to return. Defaults to 50."
func GetRecipeItems(c *gin.Context) {
	var filter RecipeItemQueryFilter

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

	var ingredients []models.RecipeItem
	err := q.Find(&ingredients).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipeItemListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecipeItem, 0)
	for _, ingredient := range ingredients {
		data = append(data, newRecipeItem(ingredient))
	}

	c.JSON(http.StatusOK, RecipeItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recipe ingredient
// @Description	Returns a specific recipe ingredient
// @Tags			RecipeItems
// @Produce		json
// @Success		200	{object}	RecipeItemResponse
// @Failure		400	{object}	RecipeItemResponse
// @Failure		404	{object}	RecipeItemResponse
// @Failure		500	{object}	RecipeItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recipe-items/{id} [get]
func GetRecipeItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemResponse{
			Error: &s,
		})
		return
	}

	var ingredient models.RecipeItem
	err = models.DB.First(&ingredient, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemResponse{
			Error: &s,
		})
		return
	}

	data := newRecipeItem(ingredient)
	c.JSON(http.StatusOK, RecipeItemResponse{Data: &data})
}

// @Summary		Update recipe ingredient
// @Description	Update an existing recipe ingredient. Only values to be updated need to be specified.
// @Tags			RecipeItems
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecipeItemResponse
// @Failure		400			{object}	RecipeItemResponse
// @Failure		404			{object}	RecipeItemResponse
// @Failure		500			{object}	RecipeItemResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			ingredient	body		RecipeItemEditable	true	"RecipeItem"
// @Router			/v1/recipe-items/{id} [patch]
func UpdateRecipeItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemResponse{
			Error: &s,
		})
		return
	}

	var ingredient models.RecipeItem
	err = models.DB.First(&ingredient, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecipeItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemResponse{
			Error: &s,
		})
		return
	}

	var data RecipeItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&ingredient).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeItemResponse{
			Error: &s,
		})
		return
	}

	r := newRecipeItem(ingredient)
	c.JSON(http.StatusOK, RecipeItemResponse{Data: &r})
}

// @Summary		Delete recipe ingredient
// @Description	Deletes a recipe ingredient
// @Tags			RecipeItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recipe-items/{id} [delete]
func DeleteRecipeItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var ingredient models.RecipeItem
	err = models.DB.First(&ingredient, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&ingredient).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// RecipeItemEditable represents all user configurable parameters
type RecipeItemEditable struct {
	RecipeTypeID uuid.UUID       `json:"recipe_code" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the recipe type
	ItemID       uuid.UUID       `json:"item_code" example:"a6e30478-b4a6-4f83-975b-1c43cbd90a22"`   // ID of the item
	Quantity     decimal.Decimal `json:"qty" example:"0.25" default:"0"`                             // Quantity of the item per batch
	CreatedBy    string          `json:"created_by" example:"admin" default:""`                      // User who created the resource
}

func (editable RecipeItemEditable) model() models.RecipeItem {
	return models.RecipeItem{
		RecipeTypeID: editable.RecipeTypeID,
		ItemID:       editable.ItemID,
		Quantity:     editable.Quantity,
		CreatedBy:    editable.CreatedBy,
	}
}

type RecipeItem struct {
	models.DefaultModel
	RecipeItemEditable
}

func newRecipeItem(model models.RecipeItem) RecipeItem {
	return RecipeItem{
		DefaultModel: model.DefaultModel,
		RecipeItemEditable: RecipeItemEditable{
			RecipeTypeID: model.RecipeTypeID,
			ItemID:       model.ItemID,
			Quantity:     model.Quantity,
			CreatedBy:    model.CreatedBy,
		},
	}
}

type RecipeItemListResponse struct {
	Data       []RecipeItem `json:"data"`                                                          // List of RecipeItems
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type RecipeItemCreateResponse struct {
	Data  []RecipeItemResponse `json:"data"`                                                          // List of the created RecipeItems or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecipeItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecipeItemResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecipeItemResponse struct {
	Data  *RecipeItem `json:"data"`                                                          // Data for the RecipeItem
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecipeItemQueryFilter struct {
	RecipeTypeID fp_uuid.UUID `form:"recipeType"`                 // By ID of the RecipeType
	ItemID       fp_uuid.UUID `form:"item"`                       // By ID of the Item
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first RecipeItem returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of RecipeItems to return. Defaults to 50.
}

func (f RecipeItemQueryFilter) model() models.RecipeItem {
	return models.RecipeItem{
		RecipeTypeID: f.RecipeTypeID.UUID,
		ItemID:       f.ItemID.UUID,
	}
}
