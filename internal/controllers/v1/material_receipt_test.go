package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestMaterialReceipt(t *testing.T, c v1.MaterialReceiptEditable, expectedStatus ...int) v1.MaterialReceiptResponse {
	if c.SupplierID == uuid.Nil {
		c.SupplierID = createTestSupplier(t, v1.SupplierEditable{}).Data.ID
	}

	if c.ItemID == uuid.Nil {
		c.ItemID = createTestItem(t, v1.ItemEditable{}).Data.ID
	}

	if c.ReceiptDate.IsZero() {
		c.ReceiptDate = day(t, "2024-03-01")
	}

	if c.RequirementDate.IsZero() {
		c.RequirementDate = c.ReceiptDate
	}

	if c.Quantity.IsZero() {
		c.Quantity = decimal.NewFromInt(10)
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.MaterialReceiptEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/material-receipts", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.MaterialReceiptCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.MaterialReceiptResponse{}
}

func (suite *TestSuiteStandard) TestMaterialReceiptsCreate() {
	receipt := createTestMaterialReceipt(suite.T(), v1.MaterialReceiptEditable{
		Quantity: decimal.NewFromFloat(12.5),
	})

	assert.True(suite.T(), receipt.Data.Quantity.Equal(decimal.NewFromFloat(12.5)))
}

// Receipts record goods that arrived, a zero or negative quantity is
// meaningless.
func (suite *TestSuiteStandard) TestMaterialReceiptsCreateNotPositive() {
	supplier := createTestSupplier(suite.T(), v1.SupplierEditable{})
	item := createTestItem(suite.T(), v1.ItemEditable{})

	for _, quantity := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/material-receipts", []v1.MaterialReceiptEditable{
			{
				ReceiptDate:     day(suite.T(), "2024-03-01"),
				RequirementDate: day(suite.T(), "2024-03-01"),
				SupplierID:      supplier.Data.ID,
				ItemID:          item.Data.ID,
				Quantity:        quantity,
			},
		})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

		var response v1.MaterialReceiptCreateResponse
		test.DecodeResponse(suite.T(), &r, &response)
		assert.Equal(suite.T(), models.ErrReceiptQuantityNotPositive.Error(), *response.Data[0].Error)
	}
}

func (suite *TestSuiteStandard) TestMaterialReceiptsCreateUnknownSupplier() {
	createTestMaterialReceipt(suite.T(), v1.MaterialReceiptEditable{
		SupplierID: uuid.New(),
	}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMaterialReceiptsFilterByItem() {
	item := createTestItem(suite.T(), v1.ItemEditable{})

	createTestMaterialReceipt(suite.T(), v1.MaterialReceiptEditable{ItemID: item.Data.ID})
	createTestMaterialReceipt(suite.T(), v1.MaterialReceiptEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/material-receipts?item=%s", item.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MaterialReceiptListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestMaterialReceiptsDelete() {
	receipt := createTestMaterialReceipt(suite.T(), v1.MaterialReceiptEditable{})
	path := fmt.Sprintf("http://example.com/v1/material-receipts/%s", receipt.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
