package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestSchedule(t *testing.T, c v1.ScheduleEditable, expectedStatus ...int) v1.ScheduleResponse {
	if c.RecipeTypeID == uuid.Nil {
		c.RecipeTypeID = createTestRecipeType(t, v1.RecipeTypeEditable{}).Data.ID
	}

	if c.Date.IsZero() {
		c.Date = day(t, "2024-03-01")
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.ScheduleEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/schedules", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.ScheduleCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.ScheduleResponse{}
}

// A date range with two recipe types expands to one row per day and
// recipe type.
func (suite *TestSuiteStandard) TestSchedulesCreateBulk() {
	first := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})
	second := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	body := v1.ScheduleBulkEditable{
		From: day(suite.T(), "2024-03-01"),
		To:   day(suite.T(), "2024-03-03"),
		Entries: []v1.ScheduleBulkEntry{
			{RecipeTypeID: first.Data.ID},
			{RecipeTypeID: second.Data.ID},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schedules/bulk", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BulkExpandResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 6, response.Data.Created)
	assert.Equal(suite.T(), 0, response.Data.SkippedDuplicates)
}

// Re-running the same expansion only reports skipped duplicates.
func (suite *TestSuiteStandard) TestSchedulesCreateBulkDuplicates() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})
	createTestSchedule(suite.T(), v1.ScheduleEditable{RecipeTypeID: recipeType.Data.ID, Date: day(suite.T(), "2024-03-02")})

	body := v1.ScheduleBulkEditable{
		From:    day(suite.T(), "2024-03-01"),
		To:      day(suite.T(), "2024-03-03"),
		Entries: []v1.ScheduleBulkEntry{{RecipeTypeID: recipeType.Data.ID}},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schedules/bulk", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BulkExpandResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 2, response.Data.Created)
	assert.Equal(suite.T(), 1, response.Data.SkippedDuplicates)
}

func (suite *TestSuiteStandard) TestSchedulesCreateBulkInvalid() {
	recipeType := createTestRecipeType(suite.T(), v1.RecipeTypeEditable{})

	tests := []struct {
		name string
		body v1.ScheduleBulkEditable
	}{
		{
			"Reversed range",
			v1.ScheduleBulkEditable{
				From:    day(suite.T(), "2024-03-05"),
				To:      day(suite.T(), "2024-03-01"),
				Entries: []v1.ScheduleBulkEntry{{RecipeTypeID: recipeType.Data.ID}},
			},
		},
		{
			"No entries",
			v1.ScheduleBulkEditable{
				From: day(suite.T(), "2024-03-01"),
				To:   day(suite.T(), "2024-03-03"),
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/schedules/bulk", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// A (day, recipe type) pair can only be scheduled once.
func (suite *TestSuiteStandard) TestSchedulesCreateDuplicate() {
	schedule := createTestSchedule(suite.T(), v1.ScheduleEditable{})

	createTestSchedule(suite.T(), v1.ScheduleEditable{
		RecipeTypeID: schedule.Data.RecipeTypeID,
		Date:         schedule.Data.Date,
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSchedulesFilterByDate() {
	createTestSchedule(suite.T(), v1.ScheduleEditable{Date: day(suite.T(), "2024-03-01")})
	createTestSchedule(suite.T(), v1.ScheduleEditable{Date: day(suite.T(), "2024-03-02")})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/schedules?date=2024-03-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ScheduleListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}
