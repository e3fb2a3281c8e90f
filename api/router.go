// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"clipvault/video-api/aws"
	"clipvault/video-api/db"
	"clipvault/video-api/internal/service"
	"clipvault/video-api/internal/store"
	"clipvault/video-api/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Store    *store.Store
	S3       *aws.S3Client
	Uploader *service.Uploader
	Query    *service.Query
}

func NewRouter() (*API, error) {
	a := &API{}

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = conn
	a.Store = store.New(conn)

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jsonLimit := middleware.BodySizeLimiter(1 << 20)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// POST /api/upload-url		-> Presigns a PUT URL for a storage key
		main.POST("/upload-url", jsonLimit, a.UploadURL)
	}

	videos := main.Group("/videos")
	{
		// GET /api/videos/list		-> Returns all videos, newest first
		videos.GET("/list", cacheFor(10), a.VideoList)

		// GET /api/videos/gallery	-> Same but with category/uploader resolved
		videos.GET("/gallery", cacheFor(10), a.VideoGallery)

		// GET /api/videos/:id		-> Returns a video and a presigned stream URL
		videos.GET("/:id", a.VideoFetch)

		// POST /api/videos/upload	-> Allocates an upload and presigns its PUT URL
		videos.POST("/upload", jsonLimit, a.VideoUpload)

		// POST /api/videos/:id/confirm	-> Marks an upload as completed
		videos.POST("/:id/confirm", jsonLimit, a.VideoConfirm)
	}

	categories := main.Group("/categories")
	{
		// GET /api/categories		-> Returns all categories, alphabetical
		categories.GET("", cacheFor(30), a.CategoryFetchBulk)

		// GET /api/categories/filters	-> Categories with video counts for the filter bar
		categories.GET("/filters", cacheFor(10), a.CategoryFilters)

		// POST /api/categories 	-> Creates a category (or returns the slug match)
		categories.POST("", jsonLimit, a.CategoryCreate)
	}

	users := main.Group("/users", jsonLimit)
	{
		// GET /api/users/:id		-> Returns a user
		users.GET("/:id", cacheFor(30), a.UserFetch)

		// POST /api/users 		-> Upserts a user
		users.POST("", a.UserUpsert)
	}

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}

	a.S3 = s3
	a.Uploader = service.NewUploader(a.Store, s3)
	a.Query = service.NewQuery(a.Store, s3)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
