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

func createTestPermission(t *testing.T, c v1.PermissionEditable, expectedStatus ...int) v1.PermissionResponse {
	if c.UserID == uuid.Nil {
		c.UserID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if c.ModuleID == uuid.Nil {
		c.ModuleID = createTestAppModule(t, v1.AppModuleEditable{}).Data.ID
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.PermissionEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/permissions", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.PermissionCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.PermissionResponse{}
}

func (suite *TestSuiteStandard) TestPermissionsCreate() {
	permission := createTestPermission(suite.T(), v1.PermissionEditable{})

	assert.NotEqual(suite.T(), uuid.Nil, permission.Data.UserID)
	assert.NotEqual(suite.T(), uuid.Nil, permission.Data.ModuleID)
}

// A permission can only be granted once per user and module.
func (suite *TestSuiteStandard) TestPermissionsCreateDuplicate() {
	permission := createTestPermission(suite.T(), v1.PermissionEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/permissions", []v1.PermissionEditable{
		{UserID: permission.Data.UserID, ModuleID: permission.Data.ModuleID},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.PermissionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrPermissionNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestPermissionsCreateUnknownUser() {
	module := createTestAppModule(suite.T(), v1.AppModuleEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/permissions", []v1.PermissionEditable{
		{UserID: uuid.New(), ModuleID: module.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPermissionsFilterByUser() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	createTestPermission(suite.T(), v1.PermissionEditable{UserID: user.Data.ID})
	createTestPermission(suite.T(), v1.PermissionEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/permissions?user=%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PermissionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

// Revoking the permission locks the dashboard route again.
func (suite *TestSuiteStandard) TestPermissionsDelete() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	module := createTestAppModule(suite.T(), v1.AppModuleEditable{Name: "master", SubModuleName: "unit"})
	permission := createTestPermission(suite.T(), v1.PermissionEditable{UserID: user.Data.ID, ModuleID: module.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/permissions/%s", permission.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s/permissions", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserPermissionsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), []string{"/dashboard"}, response.Data.AllowedRoutes)
}
