package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAppModuleRoutes registers the routes for application
// modules with the RouterGroup that is passed.
func RegisterAppModuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAppModuleList)
		r.GET("", GetAppModules)
		r.POST("", CreateAppModules)
	}

	// AppModule with ID
	{
		r.OPTIONS("/:id", OptionsAppModuleDetail)
		r.GET("/:id", GetAppModule)
		r.PATCH("/:id", UpdateAppModule)
		r.DELETE("/:id", DeleteAppModule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			AppModules
// @Success		204
// @Router			/v1/modules [options]
func OptionsAppModuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			AppModules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/modules/{id} [options]
func OptionsAppModuleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.AppModule{})
}

// @Summary		Create modules
// @Description	Creates new application modules
// @Tags			AppModules
// @Accept			json
// @Produce		json
// @Success		201		{object}	AppModuleCreateResponse
// @Failure		400		{object}	AppModuleCreateResponse
// @Failure		500		{object}	AppModuleCreateResponse
// @Param			modules	body		[]AppModuleEditable	true	"AppModules"
// @Router			/v1/modules [post]
func CreateAppModules(c *gin.Context) {
	var editables []AppModuleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AppModuleCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := AppModuleCreateResponse{}

	for _, editable := range editables {
		module := editable.model()

		dbErr := models.DB.Create(&module).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newAppModule(module)
		r.Data = append(r.Data, AppModuleResponse{Data: &data})
	}

	c.JSON(status, r)
}

func (r *AppModuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AppModuleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// @Summary		Get modules
// @Description	Returns a list of application modules
// @Tags			AppModules
// @Produce		json
// @Success		200	{object}	AppModuleListResponse
// @Failure		400	{object}	AppModuleListResponse
// @Failure		500	{object}	AppModuleListResponse
// @Router			/v1/modules [get]
// @Param			name	query	string	false	"Filter by module name"
// @Param			offset	query	uint	false	"The offset of the first AppModule returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of AppModules to return. Defaults to 50."
func GetAppModules(c *gin.Context) {
	var filter AppModuleQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC, sub_module_name ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var modules []models.AppModule
	err := q.Find(&modules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AppModuleListResponse{
			Error: &e,
		})
		return
	}

	data := make([]AppModule, 0)
	for _, module := range modules {
		data = append(data, newAppModule(module))
	}

	c.JSON(http.StatusOK, AppModuleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get module
// @Description	Returns a specific application module
// @Tags			AppModules
// @Produce		json
// @Success		200	{object}	AppModuleResponse
// @Failure		400	{object}	AppModuleResponse
// @Failure		404	{object}	AppModuleResponse
// @Failure		500	{object}	AppModuleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/modules/{id} [get]
func GetAppModule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleResponse{
			Error: &s,
		})
		return
	}

	var module models.AppModule
	err = models.DB.First(&module, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleResponse{
			Error: &s,
		})
		return
	}

	data := newAppModule(module)
	c.JSON(http.StatusOK, AppModuleResponse{Data: &data})
}

// @Summary		Update module
// @Description	Updates an existing application module. Only values to be updated need to be specified.
// @Tags			AppModules
// @Accept			json
// @Produce		json
// @Success		200		{object}	AppModuleResponse
// @Failure		400		{object}	AppModuleResponse
// @Failure		404		{object}	AppModuleResponse
// @Failure		500		{object}	AppModuleResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			module	body		AppModuleEditable	true	"AppModule"
// @Router			/v1/modules/{id} [patch]
func UpdateAppModule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleResponse{
			Error: &s,
		})
		return
	}

	var module models.AppModule
	err = models.DB.First(&module, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AppModuleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleResponse{
			Error: &s,
		})
		return
	}

	var data AppModuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&module).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AppModuleResponse{
			Error: &s,
		})
		return
	}

	apiResource := newAppModule(module)
	c.JSON(http.StatusOK, AppModuleResponse{Data: &apiResource})
}

// @Summary		Delete module
// @Description	Deletes an application module
// @Tags			AppModules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/modules/{id} [delete]
func DeleteAppModule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var module models.AppModule
	err = models.DB.First(&module, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&module).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// AppModuleEditable represents all user configurable parameters
type AppModuleEditable struct {
	Name          string `json:"mod_name" example:"master"`             // Name of the module
	SubModuleName string `json:"sub_mod_name" example:"item"`           // Name of the sub-module
	CreatedBy     string `json:"created_by" example:"admin" default:""` // User who created the resource
}

func (editable AppModuleEditable) model() models.AppModule {
	return models.AppModule{
		Name:          editable.Name,
		SubModuleName: editable.SubModuleName,
		CreatedBy:     editable.CreatedBy,
	}
}

type AppModule struct {
	models.DefaultModel
	AppModuleEditable
}

func newAppModule(model models.AppModule) AppModule {
	return AppModule{
		DefaultModel: model.DefaultModel,
		AppModuleEditable: AppModuleEditable{
			Name:          model.Name,
			SubModuleName: model.SubModuleName,
			CreatedBy:     model.CreatedBy,
		},
	}
}

type AppModuleListResponse struct {
	Data       []AppModule `json:"data"`                                                          // List of AppModules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AppModuleCreateResponse struct {
	Data  []AppModuleResponse `json:"data"`                                                                  // List of the created AppModules
	Error *string             `json:"error" example:"this module and sub-module combination already exists"` // The error, if any occurred
}

type AppModuleResponse struct {
	Data  *AppModule `json:"data"`                                                          // Data for the AppModule
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AppModuleQueryFilter struct {
	Name   string `form:"name"`                       // By module name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first AppModule returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of AppModules to return. Defaults to 50.
}

func (f AppModuleQueryFilter) model() models.AppModule {
	return models.AppModule{
		Name: f.Name,
	}
}
