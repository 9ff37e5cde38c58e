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

func createTestLocation(t *testing.T, c v1.LocationEditable, expectedStatus ...int) v1.LocationResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.LocationEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/locations", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.LocationCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.LocationResponse{}
}

func (suite *TestSuiteStandard) TestLocationsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Location with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Location exists", createTestLocation(suite.T(), v1.LocationEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/locations", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestLocationsCreate() {
	location := createTestLocation(suite.T(), v1.LocationEditable{
		Name:    "Masjid An-Noor",
		Address: "12 Hill Road",
		City:    "Chennai",
	})

	assert.Equal(suite.T(), "Masjid An-Noor", location.Data.Name)
	assert.Equal(suite.T(), "Chennai", location.Data.City)
	assert.NotEqual(suite.T(), uuid.Nil, location.Data.ID)
}

func (suite *TestSuiteStandard) TestLocationsCreateDuplicateName() {
	createTestLocation(suite.T(), v1.LocationEditable{Name: "Masjid An-Noor"})

	body := []v1.LocationEditable{{Name: "Masjid An-Noor"}}
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/locations", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.LocationCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrLocationNameNotUnique.Error(), *response.Data[0].Error)
}

// Valid and invalid elements of one batch are answered individually,
// the whole request gets the highest status.
func (suite *TestSuiteStandard) TestLocationsCreateMixed() {
	body := []v1.LocationEditable{{Name: "Masjid A"}, {Name: "Masjid A"}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/locations", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.LocationCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Nil(suite.T(), response.Data[0].Error)
	assert.NotNil(suite.T(), response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestLocationsGetSingle() {
	location := createTestLocation(suite.T(), v1.LocationEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing Location", location.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"Invalid UUID", "definitely-not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/locations/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestLocationsList() {
	createTestLocation(suite.T(), v1.LocationEditable{Name: "Masjid A", City: "Chennai"})
	createTestLocation(suite.T(), v1.LocationEditable{Name: "Masjid B", City: "Madurai"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 2},
		{"Filter by city", "city=Chennai", 1},
		{"Search", "search=masjid", 2},
		{"Search no match", "search=nothing", 0},
		{"Limit", "limit=1", 1},
		{"Offset past the end", "offset=5", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/locations?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.LocationListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestLocationsListPagination() {
	for i := 0; i < 3; i++ {
		createTestLocation(suite.T(), v1.LocationEditable{})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/locations?limit=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.LocationListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), 2, response.Pagination.Count)
	assert.Equal(suite.T(), int64(3), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestLocationsUpdate() {
	location := createTestLocation(suite.T(), v1.LocationEditable{Name: "Masjid An-Noor"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/locations/%s", location.Data.ID), map[string]any{
		"masjid_city": "Madurai",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.LocationResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Madurai", updated.Data.City)
	assert.Equal(suite.T(), "Masjid An-Noor", updated.Data.Name, "Fields not in the request must not change")
}

func (suite *TestSuiteStandard) TestLocationsUpdateInvalidBody() {
	location := createTestLocation(suite.T(), v1.LocationEditable{})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/locations/%s", location.Data.ID), `{ invalid json `)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestLocationsDelete() {
	location := createTestLocation(suite.T(), v1.LocationEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/locations/%s", location.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/locations/%s", location.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestLocationsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestLocationsDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestLocation(t, v1.LocationEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				r := test.Request(t, http.MethodGet, "http://example.com/v1/locations", "")
				test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)

				var response v1.LocationListResponse
				test.DecodeResponse(t, &r, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}
