package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipvault/video-api/internal/model"
	"clipvault/video-api/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrObjectMissing is returned by ConfirmUpload when the client claims
// an upload finished but the object never showed up in the bucket.
var ErrObjectMissing = errors.New("uploaded object not found in storage")

// Uploader is the server side half of the upload lifecycle. The client
// holds the other half: it PUTs the file body straight to storage with
// the URL minted here and reports back when it's done.
type Uploader struct {
	Store   *store.Store
	Storage Storage
}

func NewUploader(s *store.Store, storage Storage) *Uploader {
	return &Uploader{
		Store:   s,
		Storage: storage,
	}
}

type InitUploadResult struct {
	ID         string `json:"id"`
	StorageKey string `json:"storageKey"`
	UploadURL  string `json:"uploadUrl"`
}

// InitUpload allocates an identity and storage key for a new video,
// mints an upload URL for the key and writes a pending catalog row.
// The row exists before the object does. If the client never confirms,
// it stays pending forever, there is no sweeper.
func (u *Uploader) InitUpload(ctx context.Context, filename string, sizeBytes int64, uploadedBy, categoryID *string) (*InitUploadResult, error) {
	id := uuid.NewString()
	storageKey := id + ".mp4"

	uploadURL, err := u.Storage.PresignPut(ctx, storageKey, "video/mp4", PresignTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload, %w", err)
	}

	if uploadedBy == nil || *uploadedBy == "" {
		anon := model.AnonymousUploader
		uploadedBy = &anon
	}

	err = u.Store.InsertVideo(&model.Video{
		ID:               id,
		OriginalFilename: filename,
		StorageKey:       storageKey,
		SizeBytes:        sizeBytes,
		DurationSeconds:  0,
		CategoryID:       categoryID,
		UploadedBy:       uploadedBy,
		Status:           model.StatusPending,
		CreatedAt:        time.Now(),
	})
	if err != nil {
		return nil, err
	}

	zap.L().Debug("Upload initialized",
		zap.String("id", id),
		zap.String("storageKey", storageKey),
		zap.Int64("sizeBytes", sizeBytes),
	)

	return &InitUploadResult{
		ID:         id,
		StorageKey: storageKey,
		UploadURL:  uploadURL,
	}, nil
}

// ConfirmMetadata carries the optional fields a client may report when
// confirming. Nil fields leave the row untouched.
type ConfirmMetadata struct {
	DurationSeconds *int64
	SizeBytes       *int64
}

// ConfirmUpload promotes a pending video to ready. The client's word
// alone isn't trusted: the object has to actually exist in the bucket,
// and the size the bucket reports wins over whatever the caller sent.
// The caller's size is only used when the bucket doesn't report one.
// A missing object leaves the row pending.
func (u *Uploader) ConfirmUpload(ctx context.Context, videoID string, meta *ConfirmMetadata) error {
	video, err := u.Store.GetVideoByID(videoID)
	if err != nil {
		return err
	}

	exists, size, err := u.Storage.StatObject(ctx, video.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to verify upload, %w", err)
	}

	if !exists {
		return ErrObjectMissing
	}

	updates := &store.CompletedUpdates{SizeBytes: &size}
	if meta != nil {
		updates.DurationSeconds = meta.DurationSeconds

		if size == 0 && meta.SizeBytes != nil {
			updates.SizeBytes = meta.SizeBytes
		}
	}

	err = u.Store.MarkVideoCompleted(videoID, updates)
	if err != nil {
		return err
	}

	zap.L().Debug("Upload confirmed", zap.String("id", videoID), zap.Int64("sizeBytes", size))
	return nil
}

// ListCategoryFilters joins the category list with per-category video
// counts for the gallery filter bar. Categories without videos are
// dropped, the order follows ListCategories (alphabetical).
func (u *Uploader) ListCategoryFilters() ([]model.CategoryFilter, error) {
	categories, err := u.Store.ListCategories()
	if err != nil {
		return nil, err
	}

	counts, err := u.Store.CountVideosByCategory()
	if err != nil {
		return nil, err
	}

	countByID := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByID[c.CategoryID] = c.Count
	}

	filters := make([]model.CategoryFilter, 0, len(categories))

	for _, c := range categories {
		count := countByID[c.ID]
		if count == 0 {
			continue
		}

		filters = append(filters, model.CategoryFilter{
			ID:    c.ID,
			Name:  c.Name,
			Count: count,
		})
	}

	return filters, nil
}
