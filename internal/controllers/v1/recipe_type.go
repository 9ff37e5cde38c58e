package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterRecipeTypeRoutes registers the routes for recipe types with
// the RouterGroup that is passed.
func RegisterRecipeTypeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecipeTypeList)
		r.GET("", GetRecipeTypes)
		r.POST("", CreateRecipeTypes)
	}

	// Recipe type with ID
	{
		r.OPTIONS("/:id", OptionsRecipeTypeDetail)
		r.GET("/:id", GetRecipeType)
		r.PATCH("/:id", UpdateRecipeType)
		r.DELETE("/:id", DeleteRecipeType)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecipeTypes
// @Success		204
// @Router			/v1/recipe-types [options]
func OptionsRecipeTypeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecipeTypes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recipe-types/{id} [options]
func OptionsRecipeTypeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecipeType{})
}

// @Summary		Create recipe types
// @Description	Creates new recipe types
// @Tags			RecipeTypes
// @Produce		json
// @Success		201		{object}	RecipeTypeCreateResponse
// @Failure		400		{object}	RecipeTypeCreateResponse
// @Failure		500		{object}	RecipeTypeCreateResponse
// @Param			types	body		[]RecipeTypeEditable	true	"RecipeTypes"
// @Router			/v1/recipe-types [post]
func CreateRecipeTypes(c *gin.Context) {
	var editables []RecipeTypeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipeTypeCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := RecipeTypeCreateResponse{}

	for _, editable := range editables {
		recipeType := editable.model()

		err = models.DB.Create(&recipeType).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newRecipeType(models.DB, recipeType)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, RecipeTypeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recipe types
// @Description	Returns a list of recipe types
// @Tags			RecipeTypes
// @Produce		json
// @Success		200	{object}	RecipeTypeListResponse
// @Failure		400	{object}	RecipeTypeListResponse
// @Failure		500	{object}	RecipeTypeListResponse
// @Router			/v1/recipe-types [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			archived	query	bool	false	"Is the recipe type archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first RecipeType returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of RecipeTypes to return. Defaults to 50."
func GetRecipeTypes(c *gin.Context) {
	var filter RecipeTypeQueryFilter

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

	var recipeTypes []models.RecipeType
	err := q.Find(&recipeTypes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipeTypeListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecipeType, 0)
	for _, recipeType := range recipeTypes {
		apiResource, err := newRecipeType(models.DB, recipeType)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), RecipeTypeListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, RecipeTypeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recipe type
// @Description	Returns a specific recipe type
// @Tags			RecipeTypes
// @Produce		json
// @Success		200	{object}	RecipeTypeResponse
// @Failure		400	{object}	RecipeTypeResponse
// @Failure		404	{object}	RecipeTypeResponse
// @Failure		500	{object}	RecipeTypeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recipe-types/{id} [get]
func GetRecipeType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	var recipeType models.RecipeType
	err = models.DB.First(&recipeType, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	data, err := newRecipeType(models.DB, recipeType)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, RecipeTypeResponse{Data: &data})
}

// @Summary		Update recipe type
// @Description	Update an existing recipe type. Only values to be updated need to be specified.
// @Tags			RecipeTypes
// @Accept			json
// @Produce		json
// @Success		200		{object}	RecipeTypeResponse
// @Failure		400		{object}	RecipeTypeResponse
// @Failure		404		{object}	RecipeTypeResponse
// @Failure		500		{object}	RecipeTypeResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			type	body		RecipeTypeEditable	true	"RecipeType"
// @Router			/v1/recipe-types/{id} [patch]
func UpdateRecipeType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	var recipeType models.RecipeType
	err = models.DB.First(&recipeType, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecipeTypeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	var data RecipeTypeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&recipeType).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	r, err := newRecipeType(models.DB, recipeType)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipeTypeResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, RecipeTypeResponse{Data: &r})
}

// @Summary		Delete recipe type
// @Description	Deletes a recipe type
// @Tags			RecipeTypes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recipe-types/{id} [delete]
func DeleteRecipeType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var recipeType models.RecipeType
	err = models.DB.First(&recipeType, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&recipeType).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
