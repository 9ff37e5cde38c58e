package v1

import (
	"github.com/fpda/backend/internal/httputil"
	"github.com/fpda/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
//
// Note: This function only works for resources with an ID, not for derived endpoints (like /day-requirements/derive)
func resourceOptionsDetail[R models.Location | models.ItemCategory | models.Unit | models.Item | models.Supplier | models.RecipeType | models.RecipeItem | models.Schedule | models.Requirement | models.DayRequirement | models.Allocation | models.Delivery | models.MaterialReceipt | models.SupplierRequest | models.CleaningLog | models.User | models.AppModule | models.Permission](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
