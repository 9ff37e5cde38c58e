package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	fp_uuid "github.com/fpda/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// RegisterPermissionRoutes registers the routes for permissions with
// the RouterGroup that is passed.
func RegisterPermissionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPermissionList)
		r.GET("", GetPermissions)
		r.POST("", CreatePermissions)
	}

	// Permission with ID
	{
		r.OPTIONS("/:id", OptionsPermissionDetail)
		r.GET("/:id", GetPermission)
		r.DELETE("/:id", DeletePermission)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Permissions
// @Success		204
// @Router			/v1/permissions [options]
func OptionsPermissionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Permissions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/permissions/{id} [options]
func OptionsPermissionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Permission{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create permissions
// @Description	Grants modules to users
// @Tags			Permissions
// @Accept			json
// @Produce		json
// @Success		201			{object}	PermissionCreateResponse
// @Failure		400			{object}	PermissionCreateResponse
// @Failure		404			{object}	PermissionCreateResponse
// @Failure		500			{object}	PermissionCreateResponse
// @Param			permissions	body		[]PermissionEditable	true	"Permissions"
// @Router			/v1/permissions [post]
func CreatePermissions(c *gin.Context) {
	var editables []PermissionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PermissionCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := PermissionCreateResponse{}

	for _, editable := range editables {
		permission := editable.model()

		dbErr := models.DB.Create(&permission).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newPermission(permission)
		r.Data = append(r.Data, PermissionResponse{Data: &data})
	}

	c.JSON(status, r)
}

func (r *PermissionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, PermissionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// @Summary		Get permissions
// @Description	Returns a list of permissions
// @Tags			Permissions
// @Produce		json
// @Success		200	{object}	PermissionListResponse
// @Failure		400	{object}	PermissionListResponse
// @Failure		500	{object}	PermissionListResponse
// @Router			/v1/permissions [get]
// @Param			user	query	string	false	"Filter by user ID"
// @Param			module	query	string	false	"Filter by module ID"
// @Param			offset	query	uint	false	"The offset of the first Permission returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Permissions to return. Defaults to 50."
func GetPermissions(c *gin.Context) {
	var filter PermissionQueryFilter

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

	var permissions []models.Permission
	err := q.Find(&permissions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PermissionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PermissionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Permission, 0)
	for _, permission := range permissions {
		data = append(data, newPermission(permission))
	}

	c.JSON(http.StatusOK, PermissionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get permission
// @Description	Returns a specific permission
// @Tags			Permissions
// @Produce		json
// @Success		200	{object}	PermissionResponse
// @Failure		400	{object}	PermissionResponse
// @Failure		404	{object}	PermissionResponse
// @Failure		500	{object}	PermissionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/permissions/{id} [get]
func GetPermission(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PermissionResponse{
			Error: &s,
		})
		return
	}

	var permission models.Permission
	err = models.DB.First(&permission, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PermissionResponse{
			Error: &s,
		})
		return
	}

	data := newPermission(permission)
	c.JSON(http.StatusOK, PermissionResponse{Data: &data})
}

// @Summary		Delete permission
// @Description	Revokes a permission
// @Tags			Permissions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/permissions/{id} [delete]
func DeletePermission(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var permission models.Permission
	err = models.DB.First(&permission, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&permission).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// PermissionEditable represents all user configurable parameters
type PermissionEditable struct {
	UserID   uuid.UUID `json:"user_code" example:"0f5e56ab-c33c-4a8f-bbde-5c6a127dd356"` // ID of the user
	ModuleID uuid.UUID `json:"module_id" example:"7e0a40af-1f0e-4b8a-b17c-09c02f1cb626"` // ID of the module
}

func (editable PermissionEditable) model() models.Permission {
	return models.Permission{
		UserID:   editable.UserID,
		ModuleID: editable.ModuleID,
	}
}

type Permission struct {
	models.DefaultModel
	PermissionEditable
}

func newPermission(model models.Permission) Permission {
	return Permission{
		DefaultModel: model.DefaultModel,
		PermissionEditable: PermissionEditable{
			UserID:   model.UserID,
			ModuleID: model.ModuleID,
		},
	}
}

type PermissionListResponse struct {
	Data       []Permission `json:"data"`                                                          // List of Permissions
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type PermissionCreateResponse struct {
	Data  []PermissionResponse `json:"data"`                                                     // List of the created Permissions
	Error *string              `json:"error" example:"this permission has already been granted"` // The error, if any occurred
}

type PermissionResponse struct {
	Data  *Permission `json:"data"`                                                          // Data for the Permission
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PermissionQueryFilter struct {
	UserID   fp_uuid.UUID `form:"user"`                       // By ID of the User
	ModuleID fp_uuid.UUID `form:"module"`                     // By ID of the AppModule
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first Permission returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of Permissions to return. Defaults to 50.
}

func (f PermissionQueryFilter) model() models.Permission {
	return models.Permission{
		UserID:   f.UserID.UUID,
		ModuleID: f.ModuleID.UUID,
	}
}
