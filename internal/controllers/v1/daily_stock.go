package v1

import (
	"errors"
	"net/http"

	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterDailyStockRoutes registers the routes for daily stock with
// the RouterGroup that is passed.
func RegisterDailyStockRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDailyStockList)
	r.GET("", GetDailyStocks)

	r.OPTIONS("/:date", OptionsDailyStockDetail)
	r.GET("/:date", GetDailyStock)
	r.PUT("/:date", PutDailyStock)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			DailyStock
// @Success		204
// @Router			/v1/daily-stocks [options]
func OptionsDailyStockList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			DailyStock
// @Success		204
// @Router			/v1/daily-stocks/{date} [options]
func OptionsDailyStockDetail(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get daily stock records
// @Description	Returns a list of daily stock records
// @Tags			DailyStock
// @Produce		json
// @Success		200	{object}	DailyStockListResponse
// @Failure		400	{object}	DailyStockListResponse
// @Failure		500	{object}	DailyStockListResponse
// @Router			/v1/daily-stocks [get]
// @Param			date	query	string	false	"Filter by date"
// @Param			offset	query	uint	false	"The offset of the first record returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of records to return. Defaults to 50."
func GetDailyStocks(c *gin.Context) {
	var filter DailyStockQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("date DESC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var stocks []models.DailyStock
	err := q.Find(&stocks).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DailyStockListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DailyStockListResponse{
			Error: &e,
		})
		return
	}

	data := make([]DailyStock, 0)
	for _, stock := range stocks {
		data = append(data, newDailyStock(stock))
	}

	c.JSON(http.StatusOK, DailyStockListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get daily stock
// @Description	Returns the stock record for a date
// @Tags			DailyStock
// @Produce		json
// @Success		200		{object}	DailyStockResponse
// @Failure		400		{object}	DailyStockResponse
// @Failure		404		{object}	DailyStockResponse
// @Failure		500		{object}	DailyStockResponse
// @Param			date	path		string	true	"Date of the record"
// @Router			/v1/daily-stocks/{date} [get]
func GetDailyStock(c *gin.Context) {
	day, err := types.ParseDay(c.Param("date"))
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DailyStockResponse{
			Error: &s,
		})
		return
	}

	stock, err := models.StockForDay(models.DB, day)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DailyStockResponse{
			Error: &s,
		})
		return
	}

	data := newDailyStock(stock)
	c.JSON(http.StatusOK, DailyStockResponse{Data: &data})
}

// @Summary		Set daily stock
// @Description	Creates or replaces the stock record for a date. The remaining balance is recomputed against the allocations already committed for that date, a quantity below the committed total is rejected.
// @Tags			DailyStock
// @Accept			json
// @Produce		json
// @Success		200		{object}	DailyStockResponse
// @Failure		400		{object}	DailyStockResponse
// @Failure		500		{object}	DailyStockResponse
// @Param			date	path		string				true	"Date of the record"
// @Param			stock	body		DailyStockEditable	true	"Stock"
// @Router			/v1/daily-stocks/{date} [put]
func PutDailyStock(c *gin.Context) {
	day, err := types.ParseDay(c.Param("date"))
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DailyStockResponse{
			Error: &s,
		})
		return
	}

	var editable DailyStockEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DailyStockResponse{
			Error: &e,
		})
		return
	}

	var stock models.DailyStock
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// The new remaining balance accounts for allocations that
		// were already committed against the old stock record
		var allocated decimal.NullDecimal
		err := tx.Table("allocations").
			Where("date = ? AND deleted_at IS NULL", day).
			Select("SUM(quantity)").
			Row().
			Scan(&allocated)
		if err != nil {
			return err
		}

		remaining := editable.Quantity.Sub(allocated.Decimal)
		if remaining.IsNegative() {
			return models.ErrDailyStockQuantityNegative
		}

		err = tx.Where("date = ?", day).First(&stock).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, models.ErrResourceNotFound) {
			return err
		}

		stock.Date = day
		stock.Quantity = editable.Quantity
		stock.Remaining = remaining
		stock.CreatedBy = editable.CreatedBy

		return tx.Save(&stock).Error
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DailyStockResponse{
			Error: &e,
		})
		return
	}

	data := newDailyStock(stock)
	c.JSON(http.StatusOK, DailyStockResponse{Data: &data})
}

// DailyStockEditable represents all user configurable parameters
type DailyStockEditable struct {
	Quantity  decimal.Decimal `json:"avbl_qty" example:"500" default:"0"`    // Prepared quantity available for the day
	CreatedBy string          `json:"created_by" example:"admin" default:""` // User who created the resource
}

type DailyStock struct {
	models.DefaultModel
	Date      types.Day       `json:"stock_date" example:"2024-03-01"`
	Quantity  decimal.Decimal `json:"avbl_qty" example:"500"`      // Prepared quantity available for the day
	Remaining decimal.Decimal `json:"remaining_qty" example:"120"` // Balance after all committed allocations
	CreatedBy string          `json:"created_by" example:"admin"`
}

func newDailyStock(model models.DailyStock) DailyStock {
	return DailyStock{
		DefaultModel: model.DefaultModel,
		Date:         model.Date,
		Quantity:     model.Quantity,
		Remaining:    model.Remaining,
		CreatedBy:    model.CreatedBy,
	}
}

type DailyStockListResponse struct {
	Data       []DailyStock `json:"data"`                                                 // List of stock records
	Error      *string      `json:"error" example:"the date query parameter must be set"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                           // Pagination information
}

type DailyStockResponse struct {
	Data  *DailyStock `json:"data"`                                                 // Data for the stock record
	Error *string     `json:"error" example:"the date query parameter must be set"` // The error, if any occurred
}

type DailyStockQueryFilter struct {
	Date   types.Day `form:"date"`                       // By date
	Offset uint      `form:"offset" filterField:"false"` // The offset of the first record returned. Defaults to 0.
	Limit  int       `form:"limit" filterField:"false"`  // Maximum number of records to return. Defaults to 50.
}

func (f DailyStockQueryFilter) model() models.DailyStock {
	return models.DailyStock{
		Date: f.Date,
	}
}
