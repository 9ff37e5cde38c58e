package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestItemCategory(t *testing.T, c v1.ItemCategoryEditable, expectedStatus ...int) v1.ItemCategoryResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.ItemCategoryEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/item-categories", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.ItemCategoryCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.ItemCategoryResponse{}
}

func (suite *TestSuiteStandard) TestItemCategoriesCreateDuplicate() {
	createTestItemCategory(suite.T(), v1.ItemCategoryEditable{Name: "Grains"})

	body := []v1.ItemCategoryEditable{{Name: "Grains"}}
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/item-categories", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ItemCategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCategoryNameNotUnique.Error(), *response.Data[0].Error)
}

// The category response lists the items that belong to it.
func (suite *TestSuiteStandard) TestItemCategoriesIncludeItems() {
	category := createTestItemCategory(suite.T(), v1.ItemCategoryEditable{Name: "Grains"})
	createTestItem(suite.T(), v1.ItemEditable{Name: "Basmati Rice", CategoryID: category.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/item-categories/%s", category.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ItemCategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data.Items, 1)
	assert.Equal(suite.T(), "Basmati Rice", response.Data.Items[0].Name)
}

func (suite *TestSuiteStandard) TestItemCategoriesDelete() {
	category := createTestItemCategory(suite.T(), v1.ItemCategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/item-categories/%s", category.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
