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
)

func createTestRecipeType(t *testing.T, c v1.RecipeTypeEditable, expectedStatus ...int) v1.RecipeTypeResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if c.TotalPackets.IsZero() {
		c.TotalPackets = decimal.NewFromInt(40)
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.RecipeTypeEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/recipe-types", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RecipeTypeCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.RecipeTypeResponse{}
}

func createTestRecipeItem(t *testing.T, c v1.RecipeItemEditable, expectedStatus ...int) v1.RecipeItemResponse {
	if c.RecipeTypeID == uuid.Nil {
		c.RecipeTypeID = createTestRecipeType(t, v1.RecipeTypeEditable{}).Data.ID
	}

	if c.ItemID == uuid.Nil {
		c.ItemID = createTestItem(t, v1.ItemEditable{}).Data.ID
	}

	if c.Quantity.IsZero() {
		c.Quantity = decimal.NewFromFloat(0.25)
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.RecipeItemEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/recipe-items", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RecipeItemCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.RecipeItemResponse{}
}

// The recipe type response lists its ingredients.
func (suite *TestSuiteStandard) TestRecipeTypesIncludeIngredients() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{Name: "Chicken Biryani"})
	createTestRecipeItem(suite.T(), v1.RecipeItemEditable{RecipeTypeID: recipeType.Data.ID})
	createTestRecipeItem(suite.T(), v1.RecipeItemEditable{RecipeTypeID: recipeType.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/recipe-types/%s", recipeType.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecipeTypeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data.Ingredients, 2)
}

// The same item can only appear once per recipe type.
func (suite *TestSuiteStandard) TestRecipeItemsCreateDuplicate() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})
	item := createTestItem(suite.T(), v1.ItemEditable{})

	createTestRecipeItem(suite.T(), v1.RecipeItemEditable{RecipeTypeID: recipeType.Data.ID, ItemID: item.Data.ID})
	createTestRecipeItem(suite.T(), v1.RecipeItemEditable{RecipeTypeID: recipeType.Data.ID, ItemID: item.Data.ID}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRecipeItemsFilterByRecipeType() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})
	createTestRecipeItem(suite.T(), v1.RecipeItemEditable{RecipeTypeID: recipeType.Data.ID})
	createTestRecipeItem(suite.T(), v1.RecipeItemEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/recipe-items?recipeType=%s", recipeType.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecipeItemListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}
