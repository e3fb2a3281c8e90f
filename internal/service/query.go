package service

import (
	"context"
	"fmt"

	"clipvault/video-api/internal/model"
	"clipvault/video-api/internal/store"
)

// Query is the read side of the catalog: gallery listings and playback
// URL minting.
type Query struct {
	Store   *store.Store
	Storage Storage
}

func NewQuery(s *store.Store, storage Storage) *Query {
	return &Query{
		Store:   s,
		Storage: storage,
	}
}

type VideoWithStreamURL struct {
	Video model.Video `json:"video"`
	URL   string      `json:"url"`
}

// GetVideoWithStreamURL fetches a video and mints a short lived GET URL
// for its storage key so the player can stream straight from the
// bucket.
func (q *Query) GetVideoWithStreamURL(ctx context.Context, id string) (*VideoWithStreamURL, error) {
	video, err := q.Store.GetVideoByID(id)
	if err != nil {
		return nil, err
	}

	url, err := q.Storage.PresignGet(ctx, video.StorageKey, PresignTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to presign stream URL, %w", err)
	}

	return &VideoWithStreamURL{
		Video: *video,
		URL:   url,
	}, nil
}

func (q *Query) ListVideos(filter *store.VideoFilter) ([]model.Video, error) {
	return q.Store.ListVideos(filter)
}

func (q *Query) ListVideosWithRelations(filter *store.VideoFilter) ([]model.VideoWithRelations, error) {
	return q.Store.ListVideosWithRelations(filter)
}
