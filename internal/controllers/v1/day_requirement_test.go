package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/test"
	"github.com/fpda/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDayRequirement(t *testing.T, c v1.DayRequirementEditable, expectedStatus ...int) v1.DayRequirementResponse {
	if c.RecipeTypeID == uuid.Nil {
		c.RecipeTypeID = createTestRecipeType(t, v1.RecipeTypeEditable{}).Data.ID
	}

	if c.Date.IsZero() {
		c.Date = day(t, "2024-03-01")
	}

	if len(c.Lines) == 0 {
		item := createTestItem(t, v1.ItemEditable{})
		c.Lines = []v1.DayRequirementLineEditable{
			{ItemID: item.Data.ID, Quantity: decimal.NewFromFloat(0.75)},
		}
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/day-requirements", c)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.DayRequirementResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// seedDeriveFixture sets up a recipe type with two ingredients and
// location orders totalling 100 pockets on the given day. With 40
// pockets per batch that needs 3 batches.
func seedDeriveFixture(t *testing.T, date types.Day) (v1.RecipeTypeResponse, v1.ItemResponse, v1.ItemResponse) {
	recipeType := createTestRecipeType(t, v1.RecipeTypeEditable{TotalPackets: decimal.NewFromInt(40)})

	rice := createTestItem(t, v1.ItemEditable{})
	oil := createTestItem(t, v1.ItemEditable{})

	createTestRecipeItem(t, v1.RecipeItemEditable{
		RecipeTypeID: recipeType.Data.ID,
		ItemID:       rice.Data.ID,
		Quantity:     decimal.NewFromFloat(10),
	})
	createTestRecipeItem(t, v1.RecipeItemEditable{
		RecipeTypeID: recipeType.Data.ID,
		ItemID:       oil.Data.ID,
		Quantity:     decimal.NewFromFloat(0.25),
	})

	createTestRequirement(t, v1.RequirementEditable{Date: date, Quantity: decimal.NewFromInt(60)})
	createTestRequirement(t, v1.RequirementEditable{Date: date, Quantity: decimal.NewFromInt(40)})

	return recipeType, rice, oil
}

// 100 ordered pockets at 40 per batch round up to 3 batches, every
// ingredient ratio is multiplied by 3.
func (suite *TestSuiteStandard) TestDayRequirementsDerive() {
	date := day(suite.T(), "2024-03-05")
	recipeType, rice, oil := seedDeriveFixture(suite.T(), date)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/day-requirements/derive?date=%s&recipeType=%s", date, recipeType.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DayRequirementDeriveResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.TotalRequired.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), int64(3), response.Data.Multiplier)

	require.Len(suite.T(), response.Data.Lines, 2)

	quantities := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range response.Data.Lines {
		quantities[line.ItemID] = line.Quantity
	}

	assert.True(suite.T(), quantities[rice.Data.ID].Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), quantities[oil.Data.ID].Equal(decimal.NewFromFloat(0.75)))
}

// A day without orders derives a zero plan, not an error.
func (suite *TestSuiteStandard) TestDayRequirementsDeriveNoOrders() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/day-requirements/derive?date=2024-03-05&recipeType=%s", recipeType.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DayRequirementDeriveResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.TotalRequired.IsZero())
	assert.Equal(suite.T(), int64(0), response.Data.Multiplier)
}

func (suite *TestSuiteStandard) TestDayRequirementsDeriveMissingParams() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	tests := []struct {
		name  string
		query string
	}{
		{"No date", fmt.Sprintf("recipeType=%s", recipeType.Data.ID)},
		{"No recipe type", "date=2024-03-05"},
		{"Unknown recipe type", fmt.Sprintf("date=2024-03-05&recipeType=%s", uuid.New())},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/day-requirements/derive?%s", tt.query), "")

			expected := http.StatusBadRequest
			if tt.name == "Unknown recipe type" {
				expected = http.StatusNotFound
			}
			test.AssertHTTPStatus(t, &r, expected)
		})
	}
}

func (suite *TestSuiteStandard) TestDayRequirementsCreate() {
	requirement := createTestDayRequirement(suite.T(), v1.DayRequirementEditable{
		TotalRequired: decimal.NewFromInt(100),
		Multiplier:    3,
	})

	require.NotNil(suite.T(), requirement.Data)
	assert.Equal(suite.T(), int64(3), requirement.Data.Multiplier)
	assert.Equal(suite.T(), "RETAIL", requirement.Data.PurchaseType)
	assert.Len(suite.T(), requirement.Data.Lines, 1)
}

func (suite *TestSuiteStandard) TestDayRequirementsCreateNoLines() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/day-requirements", v1.DayRequirementEditable{
		Date:         day(suite.T(), "2024-03-01"),
		RecipeTypeID: recipeType.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// A failing line must roll back the header.
func (suite *TestSuiteStandard) TestDayRequirementsCreateRollsBack() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/day-requirements", v1.DayRequirementEditable{
		Date:         day(suite.T(), "2024-03-01"),
		RecipeTypeID: recipeType.Data.ID,
		Lines: []v1.DayRequirementLineEditable{
			{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1)}, // unknown item
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	list := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/day-requirements", "")
	var response v1.DayRequirementListResponse
	test.DecodeResponse(suite.T(), &list, &response)
	assert.Len(suite.T(), response.Data, 0)
}

// One row per day of the range, already planned days are skipped.
func (suite *TestSuiteStandard) TestDayRequirementsCreateBulk() {
	from := day(suite.T(), "2024-03-01")
	recipeType, _, _ := seedDeriveFixture(suite.T(), from)

	createTestDayRequirement(suite.T(), v1.DayRequirementEditable{
		Date:         day(suite.T(), "2024-03-02"),
		RecipeTypeID: recipeType.Data.ID,
	})

	body := v1.DayRequirementBulkEditable{
		From:         from,
		To:           day(suite.T(), "2024-03-03"),
		RecipeTypeID: recipeType.Data.ID,
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/day-requirements/bulk", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BulkExpandResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 2, response.Data.Created)
	assert.Equal(suite.T(), 1, response.Data.SkippedDuplicates)
}

func (suite *TestSuiteStandard) TestDayRequirementsFilterByPurchaseType() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	createTestDayRequirement(suite.T(), v1.DayRequirementEditable{
		Date:         day(suite.T(), "2024-03-01"),
		RecipeTypeID: recipeType.Data.ID,
		PurchaseType: "RETAIL",
	})
	createTestDayRequirement(suite.T(), v1.DayRequirementEditable{
		Date:         day(suite.T(), "2024-03-01"),
		RecipeTypeID: recipeType.Data.ID,
		PurchaseType: "BULK",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/day-requirements?purchaseType=BULK", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DayRequirementListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestDayRequirementsDelete() {
	requirement := createTestDayRequirement(suite.T(), v1.DayRequirementEditable{})
	path := fmt.Sprintf("http://example.com/v1/day-requirements/%s", requirement.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
