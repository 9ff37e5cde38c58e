package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSupplierRequest(t *testing.T, c v1.SupplierRequestEditable, expectedStatus ...int) v1.SupplierRequestResponse {
	if c.SupplierID == uuid.Nil {
		c.SupplierID = createTestSupplier(t, v1.SupplierEditable{}).Data.ID
	}

	if c.CategoryID == uuid.Nil {
		c.CategoryID = createTestItemCategory(t, v1.ItemCategoryEditable{}).Data.ID
	}

	if c.RecipeTypeID == uuid.Nil {
		c.RecipeTypeID = createTestRecipeType(t, v1.RecipeTypeEditable{}).Data.ID
	}

	if c.Date.IsZero() {
		c.Date = day(t, "2024-03-01")
	}

	if len(c.Lines) == 0 {
		item := createTestItem(t, v1.ItemEditable{CategoryID: c.CategoryID})
		c.Lines = []v1.SupplierRequestLineEditable{
			{ItemID: item.Data.ID, Quantity: decimal.NewFromInt(30)},
		}
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/supplier-requests", c)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.SupplierRequestResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestSupplierRequestsCreate() {
	request := createTestSupplierRequest(suite.T(), v1.SupplierRequestEditable{})

	require.NotNil(suite.T(), request.Data)
	require.Len(suite.T(), request.Data.Lines, 1)
	assert.True(suite.T(), request.Data.Lines[0].Quantity.Equal(decimal.NewFromInt(30)))
}

func (suite *TestSuiteStandard) TestSupplierRequestsCreateNoLines() {
	supplier := createTestSupplier(suite.T(), v1.SupplierEditable{})
	category := createTestItemCategory(suite.T(), v1.ItemCategoryEditable{})
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/supplier-requests", v1.SupplierRequestEditable{
		Date:         day(suite.T(), "2024-03-01"),
		SupplierID:   supplier.Data.ID,
		CategoryID:   category.Data.ID,
		RecipeTypeID: recipeType.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// The derived request sums the day-requirement lines of the date,
// keeping only items of the requested category.
func (suite *TestSuiteStandard) TestSupplierRequestsDerive() {
	date := day(suite.T(), "2024-03-05")

	groceries := createTestItemCategory(suite.T(), v1.ItemCategoryEditable{})
	vegetables := createTestItemCategory(suite.T(), v1.ItemCategoryEditable{})

	rice := createTestItem(suite.T(), v1.ItemEditable{CategoryID: groceries.Data.ID})
	oil := createTestItem(suite.T(), v1.ItemEditable{CategoryID: groceries.Data.ID})
	onion := createTestItem(suite.T(), v1.ItemEditable{CategoryID: vegetables.Data.ID})

	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})
	createTestDayRequirement(suite.T(), v1.DayRequirementEditable{
		Date:         date,
		RecipeTypeID: recipeType.Data.ID,
		Lines: []v1.DayRequirementLineEditable{
			{ItemID: rice.Data.ID, Quantity: decimal.NewFromInt(30)},
			{ItemID: oil.Data.ID, Quantity: decimal.NewFromFloat(0.75)},
			{ItemID: onion.Data.ID, Quantity: decimal.NewFromInt(5)},
		},
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/supplier-requests/derive?date=%s&category=%s", date, groceries.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SupplierRequestDeriveResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	require.Len(suite.T(), response.Data.Lines, 2)

	quantities := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range response.Data.Lines {
		quantities[line.ItemID] = line.Quantity
	}

	assert.True(suite.T(), quantities[rice.Data.ID].Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), quantities[oil.Data.ID].Equal(decimal.NewFromFloat(0.75)))
}

// Quantities of the same item accumulate over multiple day
// requirements of the date.
func (suite *TestSuiteStandard) TestSupplierRequestsDeriveSums() {
	date := day(suite.T(), "2024-03-05")

	category := createTestItemCategory(suite.T(), v1.ItemCategoryEditable{})
	rice := createTestItem(suite.T(), v1.ItemEditable{CategoryID: category.Data.ID})

	first := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})
	second := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	createTestDayRequirement(suite.T(), v1.DayRequirementEditable{
		Date:         date,
		RecipeTypeID: first.Data.ID,
		Lines:        []v1.DayRequirementLineEditable{{ItemID: rice.Data.ID, Quantity: decimal.NewFromInt(30)}},
	})
	createTestDayRequirement(suite.T(), v1.DayRequirementEditable{
		Date:         date,
		RecipeTypeID: second.Data.ID,
		Lines:        []v1.DayRequirementLineEditable{{ItemID: rice.Data.ID, Quantity: decimal.NewFromInt(20)}},
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/supplier-requests/derive?date=%s&category=%s", date, category.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SupplierRequestDeriveResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	require.Len(suite.T(), response.Data.Lines, 1)
	assert.True(suite.T(), response.Data.Lines[0].Quantity.Equal(decimal.NewFromInt(50)))
}

func (suite *TestSuiteStandard) TestSupplierRequestsDeriveMissingParams() {
	category := createTestItemCategory(suite.T(), v1.ItemCategoryEditable{})

	tests := []struct {
		name  string
		query string
	}{
		{"No date", fmt.Sprintf("category=%s", category.Data.ID)},
		{"No category", "date=2024-03-05"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/supplier-requests/derive?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestSupplierRequestsFilterBySupplier() {
	supplier := createTestSupplier(suite.T(), v1.SupplierEditable{})

	createTestSupplierRequest(suite.T(), v1.SupplierRequestEditable{SupplierID: supplier.Data.ID})
	createTestSupplierRequest(suite.T(), v1.SupplierRequestEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/supplier-requests?supplier=%s", supplier.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SupplierRequestListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

// Lines never outlive their header.
func (suite *TestSuiteStandard) TestSupplierRequestsDelete() {
	request := createTestSupplierRequest(suite.T(), v1.SupplierRequestEditable{})
	path := fmt.Sprintf("http://example.com/v1/supplier-requests/%s", request.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
