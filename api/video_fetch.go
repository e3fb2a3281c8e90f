package api

import (
	"errors"
	"net/http"

	"clipvault/video-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoFetch returns a single video row together with a presigned GET
// URL the player streams from directly.
func (a *API) VideoFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("id")
	if videoID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No video ID provided",
			"requestID": requestID,
		})
		return
	}

	res, err := a.Query.GetVideoWithStreamURL(c.Request.Context(), videoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Video not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch video", zap.Error(err), zap.String("id", videoID))
		return
	}

	c.JSON(http.StatusOK, res)
}
