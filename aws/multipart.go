package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Multipart primitives. Every upload today is a single presigned PUT
// regardless of size, but storage providers recommend multipart above
// ~100 MB and require it above 5 GB, so the capability is kept ready
// for the upload controller to adopt.

// InitMultipart opens a multipart upload session for a key and returns
// its upload ID.
func (s *S3Client) InitMultipart(ctx context.Context, key, mimeType string) (string, error) {
	out, err := s.C.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      s.Bucket,
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to init multipart upload for '%s', %w", key, err)
	}

	return *out.UploadId, nil
}

// PresignPart mints a URL for uploading one numbered part of an open
// multipart session.
func (s *S3Client) PresignPart(ctx context.Context, key, uploadID string, partNumber int32, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	req, err := s.Presign.PresignUploadPart(ctx, &s3.UploadPartInput{
		Bucket:     s.Bucket,
		Key:        aws.String(key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(partNumber),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign part %d for '%s', %w", partNumber, key, err)
	}

	return req.URL, nil
}

// CompletedPart pairs an uploaded part's number with the ETag the
// storage service returned for it.
type CompletedPart struct {
	ETag       string
	PartNumber int32
}

// CompleteMultipart assembles the uploaded parts into the final object.
func (s *S3Client) CompleteMultipart(ctx context.Context, key, uploadID string, parts []CompletedPart) error {
	completed := make([]types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, types.CompletedPart{
			ETag:       aws.String(p.ETag),
			PartNumber: aws.Int32(p.PartNumber),
		})
	}

	_, err := s.C.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          s.Bucket,
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload for '%s', %w", key, err)
	}

	return nil
}
