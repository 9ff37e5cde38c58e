package v1

import (
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/quantify"
	"github.com/fpda/backend/internal/types"
	fp_uuid "github.com/fpda/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterDayRequirementRoutes registers the routes for day requirements with
// the RouterGroup that is passed.
func RegisterDayRequirementRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDayRequirementList)
		r.GET("", GetDayRequirements)
		r.POST("", CreateDayRequirement)
		r.GET("/derive", DeriveDayRequirement)
		r.POST("/bulk", CreateDayRequirementsBulk)
	}

	// Day requirement with ID
	{
		r.OPTIONS("/:id", OptionsDayRequirementDetail)
		r.GET("/:id", GetDayRequirement)
		r.DELETE("/:id", DeleteDayRequirement)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			DayRequirements
// @Success		204
// @Router			/v1/day-requirements [options]
func OptionsDayRequirementList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			DayRequirements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/day-requirements/{id} [options]
func OptionsDayRequirementDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.DayRequirement{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Derive a day requirement
// @Description	Computes the purchase quantities for a date and recipe type from the ordered pockets and the recipe's ingredient ratios without saving anything.
// @Tags			DayRequirements
// @Produce		json
// @Success		200			{object}	DayRequirementDeriveResponse
// @Failure		400			{object}	DayRequirementDeriveResponse
// @Failure		404			{object}	DayRequirementDeriveResponse
// @Failure		500			{object}	DayRequirementDeriveResponse
// @Param			date		query		string	true	"Date to derive for"
// @Param			recipeType	query		string	true	"Recipe type ID"
// @Router			/v1/day-requirements/derive [get]
func DeriveDayRequirement(c *gin.Context) {
	var query DayRequirementDeriveQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DayRequirementDeriveResponse{
			Error: &s,
		})
		return
	}

	if query.Date.IsZero() {
		s := errDateNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, DayRequirementDeriveResponse{
			Error: &s,
		})
		return
	}

	if query.RecipeTypeID == fp_uuid.Nil {
		s := errRecipeTypeNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, DayRequirementDeriveResponse{
			Error: &s,
		})
		return
	}

	derived, err := deriveForDay(models.DB, query.Date, query.RecipeTypeID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DayRequirementDeriveResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DayRequirementDeriveResponse{Data: &derived})
}

// @Summary		Create day requirement
// @Description	Creates a day requirement with its purchase lines. The header and all lines are written in one transaction, a failing line rolls back everything.
// @Tags			DayRequirements
// @Accept			json
// @Produce		json
// @Success		201			{object}	DayRequirementResponse
// @Failure		400			{object}	DayRequirementResponse
// @Failure		404			{object}	DayRequirementResponse
// @Failure		500			{object}	DayRequirementResponse
// @Param			requirement	body		DayRequirementEditable	true	"DayRequirement"
// @Router			/v1/day-requirements [post]
func CreateDayRequirement(c *gin.Context) {
	var editable DayRequirementEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DayRequirementResponse{
			Error: &e,
		})
		return
	}

	if len(editable.Lines) == 0 {
		e := errNoLines.Error()
		c.JSON(http.StatusBadRequest, DayRequirementResponse{
			Error: &e,
		})
		return
	}

	requirement := editable.model()

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&requirement).Error; err != nil {
			return err
		}

		for _, line := range editable.Lines {
			model := line.model(requirement.ID)

			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DayRequirementResponse{
			Error: &e,
		})
		return
	}

	data, err := newDayRequirement(models.DB, requirement)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DayRequirementResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, DayRequirementResponse{Data: &data})
}

// @Summary		Create day requirements for a date range
// @Description	Derives and saves a day requirement for every day in the inclusive date range. Days that already have one for the recipe type and purchase type are skipped and counted.
// @Tags			DayRequirements
// @Accept			json
// @Produce		json
// @Success		201		{object}	BulkExpandResponse
// @Failure		400		{object}	BulkExpandResponse
// @Failure		404		{object}	BulkExpandResponse
// @Failure		500		{object}	BulkExpandResponse
// @Param			range	body		DayRequirementBulkEditable	true	"Date range"
// @Router			/v1/day-requirements/bulk [post]
func CreateDayRequirementsBulk(c *gin.Context) {
	var editable DayRequirementBulkEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BulkExpandResponse{
			Error: &e,
		})
		return
	}

	if editable.To.Before(editable.From) {
		e := errBulkRangeReversed.Error()
		c.JSON(http.StatusBadRequest, BulkExpandResponse{
			Error: &e,
		})
		return
	}

	purchaseType := editable.PurchaseType
	if purchaseType == "" {
		purchaseType = models.PurchaseTypeRetail
	}

	var existing []models.DayRequirement
	err = models.DB.
		Where("date >= ? AND date <= ? AND recipe_type_id = ? AND purchase_type = ?",
			editable.From, editable.To, editable.RecipeTypeID, purchaseType).
		Find(&existing).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BulkExpandResponse{
			Error: &e,
		})
		return
	}

	taken := make(map[string]struct{}, len(existing))
	for _, requirement := range existing {
		taken[requirement.Date.String()] = struct{}{}
	}

	// A single entry per day: the recipe type the range is expanded for
	expansion := quantify.Expand(editable.From, editable.To, []string{editable.RecipeTypeID.String()},
		func(key string) string { return key },
		func(day types.Day, _ string) bool {
			_, ok := taken[day.String()]
			return ok
		})

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range expansion.Rows {
			derived, err := deriveForDay(tx, row.Day, editable.RecipeTypeID)
			if err != nil {
				return err
			}

			requirement := models.DayRequirement{
				Date:          row.Day,
				RecipeTypeID:  editable.RecipeTypeID,
				PurchaseType:  purchaseType,
				TotalRequired: derived.TotalRequired,
				Multiplier:    derived.Multiplier,
				CreatedBy:     editable.CreatedBy,
			}

			if err := tx.Create(&requirement).Error; err != nil {
				return err
			}

			for _, line := range derived.Lines {
				model := line.model(requirement.ID)

				if err := tx.Create(&model).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BulkExpandResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, BulkExpandResponse{
		Data: &BulkExpandResult{
			Created:           len(expansion.Rows),
			SkippedDuplicates: expansion.SkippedDuplicates,
		},
	})
}

// @Summary		Get day requirements
// @Description	Returns a list of day requirements
// @Tags			DayRequirements
// @Produce		json
// @Success		200	{object}	DayRequirementListResponse
// @Failure		400	{object}	DayRequirementListResponse
// @Failure		500	{object}	DayRequirementListResponse
// @Router			/v1/day-requirements [get]
// @Param			date			query	string	false	"Filter by date"
// @Param			recipeType		query	string	false	"Filter by recipe type ID"
// @Param			purchaseType	query	string	false	"Filter by purchase type (RETAIL or BULK)"
// @Param			offset			query	uint	false	"The offset of the first DayRequirement returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of DayRequirements to return. Defaults to 50."
func GetDayRequirements(c *gin.Context) {
	var filter DayRequirementQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("date ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var requirements []models.DayRequirement
	err := q.Find(&requirements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DayRequirementListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DayRequirementListResponse{
			Error: &e,
		})
		return
	}

	data := make([]DayRequirement, 0)
	for _, requirement := range requirements {
		apiResource, err := newDayRequirement(models.DB, requirement)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DayRequirementListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, DayRequirementListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get day requirement
// @Description	Returns a specific day requirement with its purchase lines
// @Tags			DayRequirements
// @Produce		json
// @Success		200	{object}	DayRequirementResponse
// @Failure		400	{object}	DayRequirementResponse
// @Failure		404	{object}	DayRequirementResponse
// @Failure		500	{object}	DayRequirementResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/day-requirements/{id} [get]
func GetDayRequirement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DayRequirementResponse{
			Error: &s,
		})
		return
	}

	var requirement models.DayRequirement
	err = models.DB.First(&requirement, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DayRequirementResponse{
			Error: &s,
		})
		return
	}

	data, err := newDayRequirement(models.DB, requirement)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DayRequirementResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DayRequirementResponse{Data: &data})
}

// @Summary		Delete day requirement
// @Description	Deletes a day requirement and its purchase lines
// @Tags			DayRequirements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/day-requirements/{id} [delete]
func DeleteDayRequirement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var requirement models.DayRequirement
	err = models.DB.First(&requirement, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&requirement).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
