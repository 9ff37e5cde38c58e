package models_test

import (
	"github.com/fpda/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleaningLogNormalizesArea() {
	log := models.CleaningLog{
		Date: day(suite.T(), "2024-03-01"),
		Area: " vessel ",
	}

	suite.Require().NoError(models.DB.Create(&log).Error)
	assert.Equal(suite.T(), models.CleaningAreaVessel, log.Area)
}

func (suite *TestSuiteStandard) TestCleaningLogInvalidArea() {
	err := models.DB.Create(&models.CleaningLog{
		Date: day(suite.T(), "2024-03-01"),
		Area: "GARAGE",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrCleaningAreaInvalid)
}
