package v1

import (
	"net/http"
	"os"

	"github.com/fpda/backend/internal/auth"
	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterUserRoutes registers the routes for users with the
// RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsUserList)
		r.GET("", GetUsers)
		r.POST("", CreateUsers)
	}

	// User with ID
	{
		r.OPTIONS("/:id", OptionsUserDetail)
		r.GET("/:id", GetUser)
		r.GET("/:id/permissions", GetUserPermissions)
		r.PATCH("/:id", UpdateUser)
		r.DELETE("/:id", DeleteUser)
	}
}

// RegisterLoginRoutes registers the login route with the RouterGroup
// that is passed. Login stays outside the authenticated group.
func RegisterLoginRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsLogin)
	r.POST("", Login)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [options]
func OptionsUserDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.User{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/login [options]
func OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Login
// @Description	Verifies the credentials and returns a signed token plus the user's permissions
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	LoginResponse
// @Failure		401			{object}	LoginResponse
// @Failure		500			{object}	LoginResponse
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/login [post]
func Login(c *gin.Context) {
	var editable LoginEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.Where("name = ? AND archived = false", editable.Name).First(&user).Error
	if err != nil {
		// Same error as a wrong password, existence of accounts
		// is not disclosed
		s := models.ErrUserLoginFailed.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &s,
		})
		return
	}

	err = user.CheckPassword(editable.Password)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &s,
		})
		return
	}

	token, err := auth.SignToken(user.ID, user.Name, []byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Error: &s,
		})
		return
	}

	permissions, err := userPermissions(models.DB, user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token:       token,
			User:        newUser(user),
			Permissions: *permissions,
		},
	})
}

// @Summary		Create users
// @Description	Creates new user accounts
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserCreateResponse
// @Failure		400		{object}	UserCreateResponse
// @Failure		500		{object}	UserCreateResponse
// @Param			users	body		[]UserEditable	true	"Users"
// @Router			/v1/users [post]
func CreateUsers(c *gin.Context) {
	var editables []UserEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := UserCreateResponse{}

	for _, editable := range editables {
		user := editable.model()

		dbErr := user.SetPassword(editable.Password)
		if dbErr == nil {
			dbErr = models.DB.Create(&user).Error
		}
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newUser(user)
		r.Data = append(r.Data, UserResponse{Data: &data})
	}

	c.JSON(status, r)
}

func (r *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, UserResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// @Summary		Get users
// @Description	Returns a list of users. Password hashes are never returned.
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserListResponse
// @Failure		400	{object}	UserListResponse
// @Failure		500	{object}	UserListResponse
// @Router			/v1/users [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			role		query	string	false	"Filter by role"
// @Param			archived	query	bool	false	"Is the user archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first User returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Users to return. Defaults to 50."
func GetUsers(c *gin.Context) {
	var filter UserQueryFilter

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

	var users []models.User
	err := q.Find(&users).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &e,
		})
		return
	}

	data := make([]User, 0)
	for _, user := range users {
		data = append(data, newUser(user))
	}

	c.JSON(http.StatusOK, UserListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get user
// @Description	Returns a specific user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [get]
func GetUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Get user permissions
// @Description	Returns the user's permissions and the client routes they allow
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserPermissionsResponse
// @Failure		400	{object}	UserPermissionsResponse
// @Failure		404	{object}	UserPermissionsResponse
// @Failure		500	{object}	UserPermissionsResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/permissions [get]
func GetUserPermissions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserPermissionsResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserPermissionsResponse{
			Error: &s,
		})
		return
	}

	data, err := userPermissions(models.DB, user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserPermissionsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UserPermissionsResponse{Data: data})
}

// userPermissions collects the user's granted modules and derives the
// client routes they unlock.
func userPermissions(db *gorm.DB, user models.User) (*UserPermissions, error) {
	permissions, err := user.Permissions(db)
	if err != nil {
		return nil, err
	}

	modules := make([]models.AppModule, 0)
	apiPermissions := make([]Permission, 0)
	for _, permission := range permissions {
		var module models.AppModule
		err = db.First(&module, permission.ModuleID).Error
		if err != nil {
			return nil, err
		}

		modules = append(modules, module)
		apiPermissions = append(apiPermissions, newPermission(permission))
	}

	return &UserPermissions{
		Permissions:   apiPermissions,
		AllowedRoutes: auth.AllowedRoutes(modules),
	}, nil
}

// @Summary		Update user
// @Description	Updates an existing user. Only values to be updated need to be specified, a set password is re-hashed.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		404		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, UserEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var data UserEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	// The password is hashed, never written through as a field
	model := data.model()
	fields := make([]interface{}, 0, len(updateFields))
	for _, field := range updateFields {
		if field == "Password" {
			if err := user.SetPassword(data.Password); err != nil {
				s := err.Error()
				c.JSON(status(err), UserResponse{
					Error: &s,
				})
				return
			}
			model.PasswordHash = user.PasswordHash
			fields = append(fields, "PasswordHash")
			continue
		}
		fields = append(fields, field)
	}

	err = models.DB.Model(&user).Select("", fields...).Updates(model).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	apiResource := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &apiResource})
}

// @Summary		Delete user
// @Description	Deletes a user
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [delete]
func DeleteUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// UserEditable represents all user configurable parameters. The
// password is accepted on writes and never echoed back.
type UserEditable struct {
	Name     string `json:"user_name" example:"admin"`               // Unique account name
	Password string `json:"user_pwd" example:"hunter2"`              // Cleartext password, only ever read from the request
	Role     string `json:"role" example:"manager" default:""`       // Free-form role label
	Archived bool   `json:"archived" example:"true" default:"false"` // Is the user archived?
}

func (editable UserEditable) model() models.User {
	return models.User{
		Name:     editable.Name,
		Role:     editable.Role,
		Archived: editable.Archived,
	}
}

type User struct {
	models.DefaultModel
	Name     string `json:"user_name" example:"admin"` // Unique account name
	Role     string `json:"role" example:"manager"`    // Free-form role label
	Archived bool   `json:"archived" example:"true"`   // Is the user archived?
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Role:         model.Role,
		Archived:     model.Archived,
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of Users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                             // List of the created Users
	Error *string        `json:"error" example:"this user name is already in use"` // The error, if any occurred
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the User
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// UserPermissions is a user's granted modules plus the client routes
// they unlock.
type UserPermissions struct {
	Permissions   []Permission `json:"permissions"`                         // The granted permissions
	AllowedRoutes []string     `json:"allowed_routes" example:"/dashboard"` // Client routes the permissions unlock
}

type UserPermissionsResponse struct {
	Data  *UserPermissions `json:"data"`                                                          // The user's permissions
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// LoginEditable are the credentials of a login request.
type LoginEditable struct {
	Name     string `json:"user_name" example:"admin"`  // Account name
	Password string `json:"user_pwd" example:"hunter2"` // Cleartext password
}

// LoginData is returned after a successful login.
type LoginData struct {
	Token       string          `json:"token"`       // Signed bearer token
	User        User            `json:"user"`        // The authenticated user
	Permissions UserPermissions `json:"permissions"` // The user's permissions
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`                                               // Data for the login
	Error *string    `json:"error" example:"user name or password is incorrect"` // The error, if any occurred
}

type UserQueryFilter struct {
	Name     string `json:"user_name" form:"name" filterField:"false"` // By name
	Role     string `json:"role" form:"role"`                          // By role
	Archived bool   `json:"archived" form:"archived"`                  // Is the user archived?
	Search   string `json:"search" form:"search" filterField:"false"`  // By string in name
	Offset   uint   `json:"offset" form:"offset" filterField:"false"`  // The offset of the first User returned. Defaults to 0.
	Limit    int    `json:"limit" form:"limit" filterField:"false"`    // Maximum number of Users to return. Defaults to 50.
}

func (f UserQueryFilter) model() models.User {
	return models.User{
		Role:     f.Role,
		Archived: f.Archived,
	}
}
