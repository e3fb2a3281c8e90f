package store

import (
	"errors"
	"fmt"
	"time"

	"clipvault/video-api/internal/model"

	"gorm.io/gorm"
)

// VideoFilter narrows ListVideos results. Nil fields impose no
// constraint, set fields are combined with AND.
type VideoFilter struct {
	CategoryID *string
	UploadedBy *string
	Compressed *bool
}

func (f *VideoFilter) apply(q *gorm.DB) *gorm.DB {
	if f == nil {
		return q
	}

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}

	if f.UploadedBy != nil {
		q = q.Where("uploaded_by = ?", *f.UploadedBy)
	}

	if f.Compressed != nil {
		q = q.Where("compressed = ?", *f.Compressed)
	}

	return q
}

func (s *Store) InsertVideo(video *model.Video) error {
	err := s.DB.Create(video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConstraint
		}

		return fmt.Errorf("failed to insert video, %w", err)
	}

	return nil
}

// ListVideos returns videos newest first, optionally filtered.
func (s *Store) ListVideos(filter *VideoFilter) ([]model.Video, error) {
	var videos []model.Video

	err := filter.apply(s.DB.Model(model.Video{})).
		Order("created_at desc").
		Find(&videos).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list videos, %w", err)
	}

	return videos, nil
}

// ListVideosWithRelations resolves each video's category and uploader
// with two batched lookups instead of a join. Videos whose optional FK
// is unset (or points at a deleted row, nothing enforces integrity
// here) get nil nested objects.
func (s *Store) ListVideosWithRelations(filter *VideoFilter) ([]model.VideoWithRelations, error) {
	videos, err := s.ListVideos(filter)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]string, 0, len(videos))
	userIDs := make([]string, 0, len(videos))

	for _, v := range videos {
		if v.CategoryID != nil {
			categoryIDs = append(categoryIDs, *v.CategoryID)
		}

		if v.UploadedBy != nil {
			userIDs = append(userIDs, *v.UploadedBy)
		}
	}

	categories := map[string]model.Category{}
	if len(categoryIDs) > 0 {
		var rows []model.Category

		err = s.DB.Where("id IN ?", categoryIDs).Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve categories, %w", err)
		}

		for _, c := range rows {
			categories[c.ID] = c
		}
	}

	users := map[string]model.User{}
	if len(userIDs) > 0 {
		var rows []model.User

		err = s.DB.Where("id IN ?", userIDs).Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve uploaders, %w", err)
		}

		for _, u := range rows {
			users[u.ID] = u
		}
	}

	result := make([]model.VideoWithRelations, 0, len(videos))

	for _, v := range videos {
		row := model.VideoWithRelations{Video: v}

		if v.CategoryID != nil {
			if c, ok := categories[*v.CategoryID]; ok {
				row.Category = &c
			}
		}

		if v.UploadedBy != nil {
			if u, ok := users[*v.UploadedBy]; ok {
				row.Uploader = &u
			}
		}

		result = append(result, row)
	}

	return result, nil
}

func (s *Store) GetVideoByID(id string) (*model.Video, error) {
	var video model.Video

	err := s.DB.Where("id = ?", id).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch video, %w", err)
	}

	return &video, nil
}

// CompletedUpdates are the fields ConfirmUpload may overwrite. Nil
// fields are left untouched, CompletedAt defaults to the current time.
type CompletedUpdates struct {
	DurationSeconds *int64
	SizeBytes       *int64
	CompletedAt     *time.Time
}

// MarkVideoCompleted transitions a video to ready.
func (s *Store) MarkVideoCompleted(id string, updates *CompletedUpdates) error {
	completedAt := time.Now()
	fields := map[string]any{
		"status":       model.StatusReady,
		"completed_at": completedAt,
	}

	if updates != nil {
		if updates.CompletedAt != nil {
			fields["completed_at"] = *updates.CompletedAt
		}

		if updates.DurationSeconds != nil {
			fields["duration_seconds"] = *updates.DurationSeconds
		}

		if updates.SizeBytes != nil {
			fields["size_bytes"] = *updates.SizeBytes
		}
	}

	res := s.DB.
		Model(model.Video{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to mark video completed, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountVideosByCategory returns per-category video counts, grouped by
// the raw FK value. Videos without a category are not counted.
func (s *Store) CountVideosByCategory() ([]model.CategoryCount, error) {
	var counts []model.CategoryCount

	err := s.DB.
		Model(model.Video{}).
		Select("category_id as category_id, count(*) as count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Find(&counts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to count videos by category, %w", err)
	}

	return counts, nil
}
