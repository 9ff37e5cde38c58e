package models_test

import (
	"github.com/fpda/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestRecipeType(name string) models.RecipeType {
	recipeType := models.RecipeType{Name: name, TotalPackets: decimal.NewFromInt(40)}
	suite.Require().NoError(models.DB.Create(&recipeType).Error)

	return recipeType
}

func (suite *TestSuiteStandard) createTestItem(name string) models.Item {
	category := models.ItemCategory{Name: name + " category"}
	suite.Require().NoError(models.DB.Create(&category).Error)

	unit := models.Unit{Name: name + " unit", Short: name[:2]}
	suite.Require().NoError(models.DB.Create(&unit).Error)

	item := models.Item{Name: name, CategoryID: category.ID, UnitID: unit.ID}
	suite.Require().NoError(models.DB.Create(&item).Error)

	return item
}

func (suite *TestSuiteStandard) TestDayRequirementLines() {
	recipeType := suite.createTestRecipeType("Chicken Biryani")
	item := suite.createTestItem("Rice")

	requirement := models.DayRequirement{
		Date:         day(suite.T(), "2024-03-01"),
		RecipeTypeID: recipeType.ID,
		PurchaseType: models.PurchaseTypeRetail,
	}
	suite.Require().NoError(models.DB.Create(&requirement).Error)

	line := models.DayRequirementLine{
		DayRequirementID: requirement.ID,
		ItemID:           item.ID,
		Quantity:         decimal.NewFromInt(30),
	}
	suite.Require().NoError(models.DB.Create(&line).Error)

	lines, err := requirement.Lines(models.DB)
	suite.Require().NoError(err)

	suite.Require().Len(lines, 1)
	assert.Equal(suite.T(), item.ID, lines[0].ItemID)
}

// Lines never outlive their header.
func (suite *TestSuiteStandard) TestDayRequirementDeleteCascades() {
	recipeType := suite.createTestRecipeType("Chicken Biryani")
	item := suite.createTestItem("Rice")

	requirement := models.DayRequirement{
		Date:         day(suite.T(), "2024-03-01"),
		RecipeTypeID: recipeType.ID,
		PurchaseType: models.PurchaseTypeRetail,
	}
	suite.Require().NoError(models.DB.Create(&requirement).Error)
	suite.Require().NoError(models.DB.Create(&models.DayRequirementLine{
		DayRequirementID: requirement.ID,
		ItemID:           item.ID,
		Quantity:         decimal.NewFromInt(30),
	}).Error)

	suite.Require().NoError(models.DB.Delete(&requirement).Error)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.DayRequirementLine{}).
		Where("day_requirement_id = ?", requirement.ID).
		Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDayRequirementDuplicate() {
	recipeType := suite.createTestRecipeType("Chicken Biryani")

	requirement := models.DayRequirement{
		Date:         day(suite.T(), "2024-03-01"),
		RecipeTypeID: recipeType.ID,
		PurchaseType: models.PurchaseTypeRetail,
	}
	suite.Require().NoError(models.DB.Create(&requirement).Error)

	err := models.DB.Create(&models.DayRequirement{
		Date:         requirement.Date,
		RecipeTypeID: requirement.RecipeTypeID,
		PurchaseType: requirement.PurchaseType,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDayRequirementNotUnique)

	// The same plan for bulk purchases is a different record
	assert.NoError(suite.T(), models.DB.Create(&models.DayRequirement{
		Date:         requirement.Date,
		RecipeTypeID: requirement.RecipeTypeID,
		PurchaseType: models.PurchaseTypeBulk,
	}).Error)
}

func (suite *TestSuiteStandard) TestRecipeTypeIngredients() {
	recipeType := suite.createTestRecipeType("Chicken Biryani")
	rice := suite.createTestItem("Rice")
	oil := suite.createTestItem("Oil")

	for _, item := range []models.Item{rice, oil} {
		suite.Require().NoError(models.DB.Create(&models.RecipeItem{
			RecipeTypeID: recipeType.ID,
			ItemID:       item.ID,
			Quantity:     decimal.NewFromFloat(0.25),
		}).Error)
	}

	ingredients, err := recipeType.Ingredients(models.DB)
	suite.Require().NoError(err)
	assert.Len(suite.T(), ingredients, 2)
}
