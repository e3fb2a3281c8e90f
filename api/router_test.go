package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clipvault/video-api/internal/model"
	"clipvault/video-api/internal/service"
	"clipvault/video-api/internal/store"
	"clipvault/video-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeStorage fulfils the gateway contract without a bucket. Keys PUT
// through it are considered uploaded once markUploaded is called.
type fakeStorage struct {
	uploaded map[string]int64
}

func (f *fakeStorage) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://storage.example/put/" + key, nil
}

func (f *fakeStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.example/get/" + key, nil
}

func (f *fakeStorage) StatObject(_ context.Context, key string) (bool, int64, error) {
	size, ok := f.uploaded[key]
	return ok, size, nil
}

func (f *fakeStorage) markUploaded(key string, size int64) {
	f.uploaded[key] = size
}

func newTestAPI(t *testing.T) (*API, *fakeStorage) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(model.User{}, model.Category{}, model.Video{}))

	storage := &fakeStorage{uploaded: map[string]int64{}}

	a := &API{
		DB:    conn,
		Store: store.New(conn),
	}
	a.Uploader = service.NewUploader(a.Store, storage)
	a.Query = service.NewQuery(a.Store, storage)

	router := gin.New()
	router.Use(middleware.NewRequestIDMiddleware())
	a.Router = router

	main := router.Group("/api")
	main.POST("/videos/upload", a.VideoUpload)
	main.POST("/videos/:id/confirm", a.VideoConfirm)
	main.GET("/videos/list", a.VideoList)
	main.GET("/videos/gallery", a.VideoGallery)
	main.GET("/videos/:id", a.VideoFetch)
	main.POST("/categories", a.CategoryCreate)
	main.GET("/categories/filters", a.CategoryFilters)

	return a, storage
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadLifecycle(t *testing.T) {
	a, storage := newTestAPI(t)

	w := doJSON(t, a.Router, http.MethodPost, "/api/videos/upload", `{"filename":"clip.mp4","sizeBytes":1000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var init struct {
		ID             string `json:"id"`
		StoredFilename string `json:"storedFilename"`
		UploadURL      string `json:"uploadUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &init))

	assert.True(t, strings.HasSuffix(init.StoredFilename, ".mp4"))
	assert.Equal(t, "https://storage.example/put/"+init.StoredFilename, init.UploadURL)

	// Confirming before the object exists is rejected
	w = doJSON(t, a.Router, http.MethodPost, "/api/videos/"+init.ID+"/confirm", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	storage.markUploaded(init.StoredFilename, 1000)

	w = doJSON(t, a.Router, http.MethodPost, "/api/videos/"+init.ID+"/confirm", `{"durationSeconds":42}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, a.Router, http.MethodGet, "/api/videos/list", "")
	require.Equal(t, http.StatusOK, w.Code)

	var videos []model.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &videos))
	require.Len(t, videos, 1)

	assert.Equal(t, model.StatusReady, videos[0].Status)
	assert.EqualValues(t, 42, videos[0].DurationSeconds)
	require.NotNil(t, videos[0].UploadedBy)
	assert.Equal(t, model.AnonymousUploader, *videos[0].UploadedBy)
}

func TestVideoFetchNotFound(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a.Router, http.MethodGet, "/api/videos/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideoFetchStreamURL(t *testing.T) {
	a, storage := newTestAPI(t)

	w := doJSON(t, a.Router, http.MethodPost, "/api/videos/upload", `{"filename":"clip.mp4","sizeBytes":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var init struct {
		ID             string `json:"id"`
		StoredFilename string `json:"storedFilename"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &init))

	storage.markUploaded(init.StoredFilename, 5)

	w = doJSON(t, a.Router, http.MethodGet, "/api/videos/"+init.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Video model.Video `json:"video"`
		URL   string      `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	assert.Equal(t, init.ID, res.Video.ID)
	assert.Equal(t, "https://storage.example/get/"+init.StoredFilename, res.URL)
}

func TestCategoryEndpoints(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a.Router, http.MethodPost, "/api/categories", `{"name":"R.E.P.O"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var category model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	assert.Equal(t, "repo", category.Slug)

	// Same slug resolves to the same category
	w = doJSON(t, a.Router, http.MethodPost, "/api/categories", `{"name":"REPO"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var dup model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dup))
	assert.Equal(t, category.ID, dup.ID)

	w = doJSON(t, a.Router, http.MethodPost, "/api/categories", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Filter bar only shows categories that have videos
	w = doJSON(t, a.Router, http.MethodGet, "/api/categories/filters", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	body := `{"filename":"clip.mp4","sizeBytes":5,"categoryId":"` + category.ID + `"}`
	w = doJSON(t, a.Router, http.MethodPost, "/api/videos/upload", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a.Router, http.MethodGet, "/api/categories/filters", "")
	require.Equal(t, http.StatusOK, w.Code)

	var filters []model.CategoryFilter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filters))
	require.Len(t, filters, 1)
	assert.EqualValues(t, 1, filters[0].Count)
}
