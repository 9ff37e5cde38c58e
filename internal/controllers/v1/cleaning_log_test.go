package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/test"
	"github.com/stretchr/testify/assert"
)

func createTestCleaningLog(t *testing.T, c v1.CleaningLogEditable, expectedStatus ...int) v1.CleaningLogResponse {
	if c.Area == "" {
		c.Area = models.CleaningAreaVessel
	}

	if c.Date.IsZero() {
		c.Date = day(t, "2024-03-01")
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.CleaningLogEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/cleaning-logs", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CleaningLogCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.CleaningLogResponse{}
}

func (suite *TestSuiteStandard) TestCleaningLogsCreate() {
	for _, area := range []string{
		models.CleaningAreaMaterial,
		models.CleaningAreaVessel,
		models.CleaningAreaPrep,
		models.CleaningAreaPacking,
		models.CleaningAreaCooking,
	} {
		log := createTestCleaningLog(suite.T(), v1.CleaningLogEditable{Area: area})
		assert.Equal(suite.T(), area, log.Data.Area)
	}
}

// Area names are normalized before validation.
func (suite *TestSuiteStandard) TestCleaningLogsCreateNormalizesArea() {
	log := createTestCleaningLog(suite.T(), v1.CleaningLogEditable{Area: " vessel "})
	assert.Equal(suite.T(), models.CleaningAreaVessel, log.Data.Area)
}

func (suite *TestSuiteStandard) TestCleaningLogsCreateInvalidArea() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/cleaning-logs", []v1.CleaningLogEditable{
		{Date: day(suite.T(), "2024-03-01"), Area: "GARAGE"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CleaningLogCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCleaningAreaInvalid.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestCleaningLogsFilterByArea() {
	createTestCleaningLog(suite.T(), v1.CleaningLogEditable{Area: models.CleaningAreaVessel})
	createTestCleaningLog(suite.T(), v1.CleaningLogEditable{Area: models.CleaningAreaPrep})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/cleaning-logs?area=PREP", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CleaningLogListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestCleaningLogsUpdate() {
	log := createTestCleaningLog(suite.T(), v1.CleaningLogEditable{})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/cleaning-logs/%s", log.Data.ID), map[string]any{
		"remarks":   "Deep cleaned after lunch prep",
		"media_url": "https://cdn.example.com/v.mp4",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.CleaningLogResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Deep cleaned after lunch prep", updated.Data.Remarks)
	assert.Equal(suite.T(), "https://cdn.example.com/v.mp4", updated.Data.MediaURL)
}

func (suite *TestSuiteStandard) TestCleaningLogsDelete() {
	log := createTestCleaningLog(suite.T(), v1.CleaningLogEditable{})
	path := fmt.Sprintf("http://example.com/v1/cleaning-logs/%s", log.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
