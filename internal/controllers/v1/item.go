package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterItemRoutes registers the routes for items with
// the RouterGroup that is passed.
func RegisterItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsItemList)
		r.GET("", GetItems)
		r.POST("", CreateItems)
	}

	// Item with ID
	{
		r.OPTIONS("/:id", OptionsItemDetail)
		r.GET("/:id", GetItem)
		r.PATCH("/:id", UpdateItem)
		r.DELETE("/:id", DeleteItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Router			/v1/items [options]
func OptionsItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [options]
func OptionsItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Item{})
}

// @Summary		Create items
// @Description	Creates new items
// @Tags			Items
// @Produce		json
// @Success		201		{object}	ItemCreateResponse
// @Failure		400		{object}	ItemCreateResponse
// @Failure		404		{object}	ItemCreateResponse
// @Failure		500		{object}	ItemCreateResponse
// @Param			items	body		[]ItemEditable	true	"Items"
// @Router			/v1/items [post]
func CreateItems(c *gin.Context) {
	var editables []ItemEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := ItemCreateResponse{}

	for _, editable := range editables {
		item := editable.model()

		err = models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newItem(item)
		r.Data = append(r.Data, ItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get items
// @Description	Returns a list of items
// @Tags			Items
// @Produce		json
// @Success		200	{object}	ItemListResponse
// @Failure		400	{object}	ItemListResponse
// @Failure		500	{object}	ItemListResponse
// @Router			/v1/items [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			unit		query	string	false	"Filter by unit ID"
// @Param			archived	query	bool	false	"Is the item archived?"
// @Param			search		query	string	false	"Search for this text in name and remark"
// @Param			offset		query	uint	false	"The offset of the first Item returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Items to return. Defaults to 50."
func GetItems(c *gin.Context) {
	var filter ItemQueryFilter

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

	var items []models.Item
	err := q.Find(&items).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Item, 0)
	for _, item := range items {
		data = append(data, newItem(item))
	}

	c.JSON(http.StatusOK, ItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get item
// @Description	Returns a specific item
// @Tags			Items
// @Produce		json
// @Success		200	{object}	ItemResponse
// @Failure		400	{object}	ItemResponse
// @Failure		404	{object}	ItemResponse
// @Failure		500	{object}	ItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [get]
func GetItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	var item models.Item
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	data := newItem(item)
	c.JSON(http.StatusOK, ItemResponse{Data: &data})
}

// @Summary		Update item
// @Description	Update an existing item. Only values to be updated need to be specified.
// @Tags			Items
// @Accept			json
// @Produce		json
// @Success		200		{object}	ItemResponse
// @Failure		400		{object}	ItemResponse
// @Failure		404		{object}	ItemResponse
// @Failure		500		{object}	ItemResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		ItemEditable	true	"Item"
// @Router			/v1/items/{id} [patch]
func UpdateItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	var item models.Item
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	var data ItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&item).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	r := newItem(item)
	c.JSON(http.StatusOK, ItemResponse{Data: &r})
}

// @Summary		Delete item
// @Description	Deletes an item
// @Tags			Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [delete]
func DeleteItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var item models.Item
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
