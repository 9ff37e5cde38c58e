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

func createTestRequirement(t *testing.T, c v1.RequirementEditable, expectedStatus ...int) v1.RequirementResponse {
	if c.LocationID == uuid.Nil {
		c.LocationID = createTestLocation(t, v1.LocationEditable{}).Data.ID
	}

	if c.Date.IsZero() {
		c.Date = day(t, "2024-03-01")
	}

	if c.Quantity.IsZero() {
		c.Quantity = decimal.NewFromInt(100)
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.RequirementEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/requirements", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RequirementCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.RequirementResponse{}
}

func (suite *TestSuiteStandard) TestRequirementsCreate() {
	requirement := createTestRequirement(suite.T(), v1.RequirementEditable{
		Quantity: decimal.NewFromInt(120),
	})

	assert.True(suite.T(), requirement.Data.Quantity.Equal(decimal.NewFromInt(120)))
}

// A location orders at most once per day.
func (suite *TestSuiteStandard) TestRequirementsCreateDuplicate() {
	requirement := createTestRequirement(suite.T(), v1.RequirementEditable{})

	createTestRequirement(suite.T(), v1.RequirementEditable{
		LocationID: requirement.Data.LocationID,
		Date:       requirement.Data.Date,
	}, http.StatusBadRequest)
}

// The bulk expansion writes one row per day and location.
func (suite *TestSuiteStandard) TestRequirementsCreateBulk() {
	first := createTestLocation(suite.T(), v1.LocationEditable{})
	second := createTestLocation(suite.T(), v1.LocationEditable{})

	body := v1.RequirementBulkEditable{
		From: day(suite.T(), "2024-03-01"),
		To:   day(suite.T(), "2024-03-04"),
		Entries: []v1.RequirementBulkEntry{
			{LocationID: first.Data.ID, Quantity: decimal.NewFromInt(80)},
			{LocationID: second.Data.ID, Quantity: decimal.NewFromInt(40)},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/requirements/bulk", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BulkExpandResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 8, response.Data.Created)
	assert.Equal(suite.T(), 0, response.Data.SkippedDuplicates)
}

// Days a location already ordered for are skipped, not overwritten.
func (suite *TestSuiteStandard) TestRequirementsCreateBulkDuplicates() {
	location := createTestLocation(suite.T(), v1.LocationEditable{})
	createTestRequirement(suite.T(), v1.RequirementEditable{
		LocationID: location.Data.ID,
		Date:       day(suite.T(), "2024-03-02"),
		Quantity:   decimal.NewFromInt(999),
	})

	body := v1.RequirementBulkEditable{
		From:    day(suite.T(), "2024-03-01"),
		To:      day(suite.T(), "2024-03-03"),
		Entries: []v1.RequirementBulkEntry{{LocationID: location.Data.ID, Quantity: decimal.NewFromInt(50)}},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/requirements/bulk", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BulkExpandResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 2, response.Data.Created)
	assert.Equal(suite.T(), 1, response.Data.SkippedDuplicates)
}

func (suite *TestSuiteStandard) TestRequirementsCreateBulkReversedRange() {
	location := createTestLocation(suite.T(), v1.LocationEditable{})

	body := v1.RequirementBulkEditable{
		From:    day(suite.T(), "2024-03-07"),
		To:      day(suite.T(), "2024-03-01"),
		Entries: []v1.RequirementBulkEntry{{LocationID: location.Data.ID, Quantity: decimal.NewFromInt(50)}},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/requirements/bulk", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRequirementsFilterByDate() {
	location := createTestLocation(suite.T(), v1.LocationEditable{})

	createTestRequirement(suite.T(), v1.RequirementEditable{LocationID: location.Data.ID, Date: day(suite.T(), "2024-03-01")})
	createTestRequirement(suite.T(), v1.RequirementEditable{LocationID: location.Data.ID, Date: day(suite.T(), "2024-03-02")})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/requirements?date=2024-03-02", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RequirementListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestRequirementsUpdate() {
	requirement := createTestRequirement(suite.T(), v1.RequirementEditable{})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/requirements/%s", requirement.Data.ID), map[string]any{
		"req_qty": "150",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.RequirementResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Quantity.Equal(decimal.NewFromInt(150)))
}

func (suite *TestSuiteStandard) TestRequirementsDelete() {
	requirement := createTestRequirement(suite.T(), v1.RequirementEditable{})
	path := fmt.Sprintf("http://example.com/v1/requirements/%s", requirement.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
