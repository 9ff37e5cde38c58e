package models_test

import (
	"github.com/fpda/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/not/a/directory/that/exists/db.sqlite")
	assert.Error(suite.T(), err)

	// Restore a working connection for TearDownTest
	suite.SetupTest()
}

// A query for a missing resource names the resource in the error.
func (suite *TestSuiteStandard) TestRecordNotFoundError() {
	err := models.DB.First(&models.Location{}, uuid.New()).Error

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no location matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestRecordNotFoundDepluralizes() {
	tests := []struct {
		model any
		want  string
	}{
		{&models.ItemCategory{}, "there is no item category matching your query"},
		{&models.Delivery{}, "there is no delivery matching your query"},
		{&models.DailyStock{}, "there is no daily stock matching your query"},
	}

	for _, tt := range tests {
		err := models.DB.First(tt.model, uuid.New()).Error

		suite.Require().Error(err)
		assert.Equal(suite.T(), tt.want, err.Error())
	}
}

func (suite *TestSuiteStandard) TestUniqueViolation() {
	suite.Require().NoError(models.DB.Create(&models.Location{Name: "Masjid An-Noor"}).Error)

	err := models.DB.Create(&models.Location{Name: "Masjid An-Noor"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrLocationNameNotUnique)
}

// All database errors after the connection is gone map to the general
// error so that no driver internals leak to clients.
func (suite *TestSuiteStandard) TestClosedDBGeneralError() {
	suite.CloseDB()

	err := models.DB.First(&models.Location{}, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
