package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterItemCategoryRoutes registers the routes for item categories with
// the RouterGroup that is passed.
func RegisterItemCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsItemCategoryList)
		r.GET("", GetItemCategories)
		r.POST("", CreateItemCategories)
	}

	// Item category with ID
	{
		r.OPTIONS("/:id", OptionsItemCategoryDetail)
		r.GET("/:id", GetItemCategory)
		r.PATCH("/:id", UpdateItemCategory)
		r.DELETE("/:id", DeleteItemCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ItemCategories
// @Success		204
// @Router			/v1/item-categories [options]
func OptionsItemCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ItemCategories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/item-categories/{id} [options]
func OptionsItemCategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ItemCategory{})
}

// @Summary		Create item categories
// @Description	Creates new item categories
// @Tags			ItemCategories
// @Produce		json
// @Success		201			{object}	ItemCategoryCreateResponse
// @Failure		400			{object}	ItemCategoryCreateResponse
// @Failure		500			{object}	ItemCategoryCreateResponse
// @Param			categories	body		[]ItemCategoryEditable	true	"ItemCategories"
// @Router			/v1/item-categories [post]
func CreateItemCategories(c *gin.Context) {
	var editables []ItemCategoryEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemCategoryCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := ItemCategoryCreateResponse{}

	for _, editable := range editables {
		category := editable.model()

		err = models.DB.Create(&category).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newItemCategory(models.DB, category)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, ItemCategoryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get item categories
// @Description	Returns a list of item categories
// @Tags			ItemCategories
// @Produce		json
// @Success		200	{object}	ItemCategoryListResponse
// @Failure		400	{object}	ItemCategoryListResponse
// @Failure		500	{object}	ItemCategoryListResponse
// @Router			/v1/item-categories [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first ItemCategory returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of ItemCategories to return. Defaults to 50."
func GetItemCategories(c *gin.Context) {
	var filter ItemCategoryQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.ItemCategory
	err := q.Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemCategoryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]ItemCategory, 0)
	for _, category := range categories {
		apiResource, err := newItemCategory(models.DB, category)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ItemCategoryListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, ItemCategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get item category
// @Description	Returns a specific item category
// @Tags			ItemCategories
// @Produce		json
// @Success		200	{object}	ItemCategoryResponse
// @Failure		400	{object}	ItemCategoryResponse
// @Failure		404	{object}	ItemCategoryResponse
// @Failure		500	{object}	ItemCategoryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/item-categories/{id} [get]
func GetItemCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	var category models.ItemCategory
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	data, err := newItemCategory(models.DB, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ItemCategoryResponse{Data: &data})
}

// @Summary		Update item category
// @Description	Update an existing item category. Only values to be updated need to be specified.
// @Tags			ItemCategories
// @Accept			json
// @Produce		json
// @Success		200			{object}	ItemCategoryResponse
// @Failure		400			{object}	ItemCategoryResponse
// @Failure		404			{object}	ItemCategoryResponse
// @Failure		500			{object}	ItemCategoryResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		ItemCategoryEditable	true	"ItemCategory"
// @Router			/v1/item-categories/{id} [patch]
func UpdateItemCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	var category models.ItemCategory
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ItemCategoryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	var data ItemCategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	r, err := newItemCategory(models.DB, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemCategoryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ItemCategoryResponse{Data: &r})
}

// @Summary		Delete item category
// @Description	Deletes an item category
// @Tags			ItemCategories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/item-categories/{id} [delete]
func DeleteItemCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var category models.ItemCategory
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
