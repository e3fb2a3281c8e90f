package api

import (
	"net/http"
	"strconv"

	"clipvault/video-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// filterFromQuery builds the conjunctive list filter from the request
// query. Absent parameters impose no constraint.
func filterFromQuery(c *gin.Context) *store.VideoFilter {
	filter := &store.VideoFilter{}

	if v, ok := c.GetQuery("category"); ok {
		filter.CategoryID = &v
	}

	if v, ok := c.GetQuery("uploadedBy"); ok {
		filter.UploadedBy = &v
	}

	if v, ok := c.GetQuery("compressed"); ok {
		if compressed, err := strconv.ParseBool(v); err == nil {
			filter.Compressed = &compressed
		}
	}

	return filter
}

// VideoList returns plain video rows, newest first.
func (a *API) VideoList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videos, err := a.Query.ListVideos(filterFromQuery(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list videos", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, videos)
}

// VideoGallery returns videos with their category and uploader
// resolved, for the gallery view.
func (a *API) VideoGallery(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videos, err := a.Query.ListVideosWithRelations(filterFromQuery(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list gallery videos", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, videos)
}
