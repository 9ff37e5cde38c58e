package models_test

import (
	"github.com/fpda/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestAllocatedLocationIDs() {
	date := day(suite.T(), "2024-03-01")

	recipeType := suite.createTestRecipeType("Chicken Biryani")
	served := suite.createTestLocation("Masjid An-Noor")
	suite.createTestLocation("Masjid Al-Falah")

	suite.Require().NoError(models.DB.Create(&models.Allocation{
		Date:         date,
		LocationID:   served.ID,
		RecipeTypeID: recipeType.ID,
		Quantity:     decimal.NewFromInt(60),
	}).Error)

	ids, err := models.AllocatedLocationIDs(models.DB, date)
	suite.Require().NoError(err)

	suite.Require().Len(ids, 1)
	assert.Equal(suite.T(), served.ID, ids[0])
}

// One allocation per location and day.
func (suite *TestSuiteStandard) TestAllocationDuplicate() {
	date := day(suite.T(), "2024-03-01")
	recipeType := suite.createTestRecipeType("Chicken Biryani")
	location := suite.createTestLocation("Masjid An-Noor")

	allocation := models.Allocation{
		Date:         date,
		LocationID:   location.ID,
		RecipeTypeID: recipeType.ID,
		Quantity:     decimal.NewFromInt(60),
	}
	suite.Require().NoError(models.DB.Create(&allocation).Error)

	err := models.DB.Create(&models.Allocation{
		Date:         date,
		LocationID:   location.ID,
		RecipeTypeID: recipeType.ID,
		Quantity:     decimal.NewFromInt(10),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAllocationNotUnique)
}

func (suite *TestSuiteStandard) TestDeliveredLocationIDs() {
	date := day(suite.T(), "2024-03-01")

	served := suite.createTestLocation("Masjid An-Noor")
	suite.createTestLocation("Masjid Al-Falah")

	suite.Require().NoError(models.DB.Create(&models.Delivery{
		Date:       date,
		LocationID: served.ID,
		Quantity:   decimal.NewFromInt(60),
	}).Error)

	ids, err := models.DeliveredLocationIDs(models.DB, date)
	suite.Require().NoError(err)

	suite.Require().Len(ids, 1)
	assert.Equal(suite.T(), served.ID, ids[0])
}

func (suite *TestSuiteStandard) TestStockForDay() {
	date := day(suite.T(), "2024-03-01")

	suite.Require().NoError(models.DB.Create(&models.DailyStock{
		Date:      date,
		Quantity:  decimal.NewFromInt(500),
		Remaining: decimal.NewFromInt(500),
	}).Error)

	stock, err := models.StockForDay(models.DB, date)
	suite.Require().NoError(err)
	assert.True(suite.T(), stock.Remaining.Equal(decimal.NewFromInt(500)))

	_, err = models.StockForDay(models.DB, day(suite.T(), "2024-03-02"))
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestLockStockForDay() {
	date := day(suite.T(), "2024-03-01")

	suite.Require().NoError(models.DB.Create(&models.DailyStock{
		Date:      date,
		Quantity:  decimal.NewFromInt(500),
		Remaining: decimal.NewFromInt(500),
	}).Error)

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		stock, err := models.LockStockForDay(tx, date)
		suite.Require().NoError(err)
		assert.True(suite.T(), stock.Remaining.Equal(decimal.NewFromInt(500)))

		_, err = models.LockStockForDay(tx, day(suite.T(), "2024-03-02"))
		assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *TestSuiteStandard) TestDailyStockNegative() {
	err := models.DB.Create(&models.DailyStock{
		Date:      day(suite.T(), "2024-03-01"),
		Quantity:  decimal.NewFromInt(-1),
		Remaining: decimal.NewFromInt(-1),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrDailyStockQuantityNegative)
}
