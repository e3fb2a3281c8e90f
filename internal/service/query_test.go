package service

import (
	"context"
	"testing"
	"time"

	"clipvault/video-api/internal/model"
	"clipvault/video-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVideoWithStreamURL(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a stream URL for the storage key", func(t *testing.T) {
		s := newTestStore(t)
		storage := new(MockStorage)
		query := NewQuery(s, storage)

		require.NoError(t, s.InsertVideo(&model.Video{
			ID:               "vid-1",
			OriginalFilename: "clip.mp4",
			StorageKey:       "vid-1.mp4",
			SizeBytes:        1000,
			Status:           model.StatusReady,
			CreatedAt:        time.Now(),
		}))

		storage.On("PresignGet", ctx, "vid-1.mp4", time.Hour).
			Return("https://storage.example/get/vid-1.mp4", nil)

		res, err := query.GetVideoWithStreamURL(ctx, "vid-1")
		require.NoError(t, err)

		assert.Equal(t, "vid-1", res.Video.ID)
		assert.Equal(t, "https://storage.example/get/vid-1.mp4", res.URL)

		storage.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		s := newTestStore(t)
		storage := new(MockStorage)
		query := NewQuery(s, storage)

		_, err := query.GetVideoWithStreamURL(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
