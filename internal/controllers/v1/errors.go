package v1

import (
	"errors"
	"net/http"

	"github.com/fpda/backend/internal/models"
	"gorm.io/gorm"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errDateNotSetInQuery       = errors.New("the date query parameter must be set")
	errRecipeTypeNotSetInQuery = errors.New("the recipeType query parameter must be set")
	errCategoryNotSetInQuery   = errors.New("the category query parameter must be set")
	errBulkRangeReversed       = errors.New("the to date must not be before the from date")
	errBulkNoEntries           = errors.New("at least one entry is required")
	errNoStockForDate          = errors.New("no stock has been recorded for this date")
	errMixedAllocationDates    = errors.New("all allocations of one batch must use the same date")
	errNoLines                 = errors.New("at least one line is required")
)
