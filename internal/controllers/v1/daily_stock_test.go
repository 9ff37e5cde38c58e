package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/test"
	"github.com/fpda/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDailyStock(t *testing.T, date types.Day, quantity decimal.Decimal, expectedStatus ...int) v1.DailyStockResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodPut, fmt.Sprintf("http://example.com/v1/daily-stocks/%s", date), v1.DailyStockEditable{
		Quantity: quantity,
	})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.DailyStockResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// A fresh record opens with the full quantity remaining.
func (suite *TestSuiteStandard) TestDailyStocksPut() {
	stock := createTestDailyStock(suite.T(), day(suite.T(), "2024-03-01"), decimal.NewFromInt(500))

	require.NotNil(suite.T(), stock.Data)
	assert.True(suite.T(), stock.Data.Quantity.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), stock.Data.Remaining.Equal(decimal.NewFromInt(500)))
}

// PUT replaces the record for the date, it does not add a second one.
func (suite *TestSuiteStandard) TestDailyStocksPutReplaces() {
	date := day(suite.T(), "2024-03-01")
	createTestDailyStock(suite.T(), date, decimal.NewFromInt(500))
	createTestDailyStock(suite.T(), date, decimal.NewFromInt(300))

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/daily-stocks", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DailyStockListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.True(suite.T(), response.Data[0].Quantity.Equal(decimal.NewFromInt(300)))
}

// Lowering the quantity keeps the committed allocations accounted for.
func (suite *TestSuiteStandard) TestDailyStocksPutRecomputesRemaining() {
	date := day(suite.T(), "2024-03-01")
	createTestDailyStock(suite.T(), date, decimal.NewFromInt(500))
	createTestAllocation(suite.T(), v1.AllocationEditable{
		Date:     date,
		Quantity: decimal.NewFromInt(120),
	})

	stock := createTestDailyStock(suite.T(), date, decimal.NewFromInt(200))

	require.NotNil(suite.T(), stock.Data)
	assert.True(suite.T(), stock.Data.Remaining.Equal(decimal.NewFromInt(80)))
}

// The stock can not be set below what is already allocated.
func (suite *TestSuiteStandard) TestDailyStocksPutBelowAllocated() {
	date := day(suite.T(), "2024-03-01")
	createTestDailyStock(suite.T(), date, decimal.NewFromInt(500))
	createTestAllocation(suite.T(), v1.AllocationEditable{
		Date:     date,
		Quantity: decimal.NewFromInt(120),
	})

	createTestDailyStock(suite.T(), date, decimal.NewFromInt(100), http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDailyStocksGetSingle() {
	date := day(suite.T(), "2024-03-01")
	createTestDailyStock(suite.T(), date, decimal.NewFromInt(500))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/daily-stocks/%s", date), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/daily-stocks/2024-03-09", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/daily-stocks/notadate", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDailyStocksFilterByDate() {
	createTestDailyStock(suite.T(), day(suite.T(), "2024-03-01"), decimal.NewFromInt(500))
	createTestDailyStock(suite.T(), day(suite.T(), "2024-03-02"), decimal.NewFromInt(400))

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/daily-stocks?date=2024-03-02", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DailyStockListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}
