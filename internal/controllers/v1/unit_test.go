package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/models"
	"github.com/fpda/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestUnit(t *testing.T, c v1.UnitEditable, expectedStatus ...int) v1.UnitResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if c.Short == "" {
		c.Short = uuid.NewString()[:8]
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.UnitEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/units", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.UnitCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.UnitResponse{}
}

func (suite *TestSuiteStandard) TestUnitsCreate() {
	unit := createTestUnit(suite.T(), v1.UnitEditable{Name: "Kilogram", Short: "kg"})

	assert.Equal(suite.T(), "Kilogram", unit.Data.Name)
	assert.Equal(suite.T(), "kg", unit.Data.Short)
}

func (suite *TestSuiteStandard) TestUnitsCreateDuplicateShort() {
	createTestUnit(suite.T(), v1.UnitEditable{Name: "Kilogram", Short: "kg"})

	body := []v1.UnitEditable{{Name: "Kilo", Short: "kg"}}
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/units", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UnitCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrUnitShortNotUnique.Error(), *response.Data[0].Error)
}
