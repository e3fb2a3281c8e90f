package api

import (
	"errors"
	"net/http"

	"clipvault/video-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type categoryBody struct {
	Name string `json:"name"`
}

// CategoryCreate creates a category from a display name. If another
// category already owns the derived slug that one is returned instead
// of a duplicate.
func (a *API) CategoryCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data categoryBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	category, err := service.CreateCategory(a.Store, data.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryName) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create category", zap.Error(err), zap.String("name", data.Name))
		return
	}

	c.JSON(http.StatusOK, category)
}
