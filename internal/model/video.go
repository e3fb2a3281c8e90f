// Package model defines database models
package model

import "time"

// Video lifecycle states. Only StatusPending and StatusReady are
// reachable right now, processing/failed are reserved for a future
// compression pipeline.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// AnonymousUploader is used when no uploader is attached to an upload.
const AnonymousUploader = "anonymous"

type Video struct {
	ID string `gorm:"primaryKey" json:"id"`

	// User supplied name, display only. The object lives in the bucket
	// under StorageKey so names can collide freely and never end up in
	// an S3 path
	OriginalFilename string `gorm:"not null" json:"originalFilename"`

	// Immutable once assigned, derived from the video ID
	StorageKey string `gorm:"not null;uniqueIndex" json:"storageKey"`

	SizeBytes int64 `gorm:"not null" json:"sizeBytes"`

	// Stays 0 until a client reports it on confirm
	DurationSeconds int64 `gorm:"not null;default:0" json:"durationSeconds"`

	CategoryID *string `gorm:"index" json:"categoryId"`
	UploadedBy *string `gorm:"index" json:"uploadedBy"`

	Compressed   bool    `gorm:"not null;default:false" json:"compressed"`
	ThumbnailURL *string `json:"thumbnailUrl"`

	Status string `gorm:"not null;default:pending;index" json:"status"`

	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// VideoWithRelations is the read model for the gallery view. Category
// and Uploader stay nil when the row's optional FK is unset or dangling.
type VideoWithRelations struct {
	Video
	Category *Category `json:"category"`
	Uploader *User     `json:"uploader"`
}
