package api

import (
	"net/http"
	"time"

	"clipvault/video-api/internal/model"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

type upsertUserBody struct {
	ID          string `json:"id"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// UserUpsert registers identity data for an uploader. Inserting the
// same ID twice is a no-op re-read, the payload is idempotent.
func (a *API) UserUpsert(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data upsertUserBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.ID == "" {
		id, err := gonanoid.New(11)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to generate user ID", zap.Error(err))
			return
		}

		data.ID = id
	}

	if data.Role != model.RoleAdmin {
		data.Role = model.RoleUser
	}

	user, err := a.Store.UpsertUser(&model.User{
		ID:          data.ID,
		Email:       data.Email,
		DisplayName: data.DisplayName,
		Role:        data.Role,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upsert user", zap.Error(err), zap.String("id", data.ID))
		return
	}

	c.JSON(http.StatusOK, user)
}
