package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) CategoryFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	categories, err := a.Store.ListCategories()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list categories", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CategoryFilters returns categories that have at least one video,
// each with its video count, to drive the gallery filter bar.
func (a *API) CategoryFilters(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	filters, err := a.Uploader.ListCategoryFilters()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list category filters", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, filters)
}
