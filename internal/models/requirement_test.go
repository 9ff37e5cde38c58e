package models_test

import (
	"github.com/fpda/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestLocation(name string) models.Location {
	location := models.Location{Name: name}
	suite.Require().NoError(models.DB.Create(&location).Error)

	return location
}

// The total sums over all locations of the day and ignores other days.
func (suite *TestSuiteStandard) TestRequirementTotal() {
	date := day(suite.T(), "2024-03-01")

	first := suite.createTestLocation("Masjid An-Noor")
	second := suite.createTestLocation("Masjid Al-Falah")

	suite.Require().NoError(models.DB.Create(&models.Requirement{
		Date: date, LocationID: first.ID, Quantity: decimal.NewFromInt(60),
	}).Error)
	suite.Require().NoError(models.DB.Create(&models.Requirement{
		Date: date, LocationID: second.ID, Quantity: decimal.NewFromInt(40),
	}).Error)
	suite.Require().NoError(models.DB.Create(&models.Requirement{
		Date: day(suite.T(), "2024-03-02"), LocationID: first.ID, Quantity: decimal.NewFromInt(75),
	}).Error)

	total, err := models.RequirementTotal(models.DB, date)
	suite.Require().NoError(err)
	assert.True(suite.T(), total.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestRequirementTotalEmpty() {
	total, err := models.RequirementTotal(models.DB, day(suite.T(), "2024-03-01"))

	suite.Require().NoError(err)
	assert.True(suite.T(), total.IsZero())
}

// Deleted requirements no longer count towards the day's total.
func (suite *TestSuiteStandard) TestRequirementTotalSkipsDeleted() {
	date := day(suite.T(), "2024-03-01")
	location := suite.createTestLocation("Masjid An-Noor")

	requirement := models.Requirement{Date: date, LocationID: location.ID, Quantity: decimal.NewFromInt(60)}
	suite.Require().NoError(models.DB.Create(&requirement).Error)
	suite.Require().NoError(models.DB.Delete(&requirement).Error)

	total, err := models.RequirementTotal(models.DB, date)
	suite.Require().NoError(err)
	assert.True(suite.T(), total.IsZero())
}

func (suite *TestSuiteStandard) TestRequirementUnknownLocation() {
	err := models.DB.Create(&models.Requirement{
		Date:     day(suite.T(), "2024-03-01"),
		Quantity: decimal.NewFromInt(60),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRequirementNegativeQuantity() {
	location := suite.createTestLocation("Masjid An-Noor")

	err := models.DB.Create(&models.Requirement{
		Date:       day(suite.T(), "2024-03-01"),
		LocationID: location.ID,
		Quantity:   decimal.NewFromInt(-10),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrRequirementQuantityNegative)
}
