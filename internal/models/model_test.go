package models_test

import (
	"time"

	"github.com/fpda/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateSetsID() {
	location := models.Location{Name: "Masjid An-Noor"}

	err := models.DB.Create(&location).Error
	suite.Require().NoError(err)

	assert.NotEqual(suite.T(), uuid.Nil, location.ID)
	assert.False(suite.T(), location.CreatedAt.IsZero())
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	location := models.Location{Name: "Masjid An-Noor"}
	suite.Require().NoError(models.DB.Create(&location).Error)

	var read models.Location
	suite.Require().NoError(models.DB.First(&read, location.ID).Error)

	assert.Equal(suite.T(), time.UTC, read.CreatedAt.Location())
	assert.Equal(suite.T(), time.UTC, read.UpdatedAt.Location())
}
