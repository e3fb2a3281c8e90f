package api

import (
	"net/http"

	"clipvault/video-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type uploadURLBody struct {
	StoredFilename string `json:"storedFilename" binding:"required"`
	MimeType       string `json:"mimeType"`
}

// UploadURL presigns a PUT URL for an already allocated storage key.
// The uploadId field is kept null until multipart uploads are wired up,
// the shape matches what the upload flow already expects.
func (a *API) UploadURL(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data uploadURLBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.MimeType == "" {
		data.MimeType = "video/mp4"
	}

	url, err := a.S3.PresignPut(c.Request.Context(), data.StoredFilename, data.MimeType, service.PresignTTL())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to generate upload URL",
			"requestID": requestID,
		})

		zap.L().Error("Failed to presign upload URL", zap.Error(err), zap.String("key", data.StoredFilename))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadId":      nil,
		"presignedUrls": url,
	})
}
