package api

import (
	"errors"
	"net/http"

	"clipvault/video-api/internal/service"
	"clipvault/video-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type confirmBody struct {
	DurationSeconds *int64 `json:"durationSeconds"`
	SizeBytes       *int64 `json:"sizeBytes"`
}

// VideoConfirm promotes a pending upload to ready once the client is
// done PUTting the file to storage.
func (a *API) VideoConfirm(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("id")
	if videoID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No video ID provided",
			"requestID": requestID,
		})
		return
	}

	var data confirmBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	err := a.Uploader.ConfirmUpload(c.Request.Context(), videoID, &service.ConfirmMetadata{
		DurationSeconds: data.DurationSeconds,
		SizeBytes:       data.SizeBytes,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Video not found",
				"requestID": requestID,
			})
			return
		}

		if errors.Is(err, service.ErrObjectMissing) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "Uploaded object not found in storage",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to confirm upload", zap.Error(err), zap.String("id", videoID))
		return
	}

	c.Status(http.StatusNoContent)
}
