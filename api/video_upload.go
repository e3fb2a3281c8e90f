package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type uploadBody struct {
	Filename   string  `json:"filename" binding:"required"`
	SizeBytes  int64   `json:"sizeBytes"`
	UploadedBy *string `json:"uploadedBy"`
	CategoryID *string `json:"categoryId"`
}

// VideoUpload allocates an ID and storage key for a new video, writes a
// pending catalog row and hands the client a presigned PUT URL. The
// file body itself never transits this server.
func (a *API) VideoUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data uploadBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	res, err := a.Uploader.InitUpload(c.Request.Context(), data.Filename, data.SizeBytes, data.UploadedBy, data.CategoryID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to initialize upload", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             res.ID,
		"storedFilename": res.StorageKey,
		"uploadUrl":      res.UploadURL,
		"uploadId":       nil,
	})
}
