package uploadqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the ClipVault API and to the presigned storage URLs
// it hands out.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Minute},
	}
}

type InitResult struct {
	ID         string `json:"id"`
	StorageKey string `json:"storedFilename"`
	UploadURL  string `json:"uploadUrl"`
}

// InitUpload asks the server to allocate a video and presign its
// upload URL.
func (c *Client) InitUpload(ctx context.Context, filename string, sizeBytes int64, meta Metadata) (*InitResult, error) {
	body := map[string]any{
		"filename":  filename,
		"sizeBytes": sizeBytes,
	}

	if meta.UploadedBy != "" {
		body["uploadedBy"] = meta.UploadedBy
	}

	if meta.CategoryID != "" {
		body["categoryId"] = meta.CategoryID
	}

	var result InitResult

	err := c.postJSON(ctx, "/api/videos/upload", body, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ConfirmUpload reports a finished PUT back to the server.
func (c *Client) ConfirmUpload(ctx context.Context, videoID string, durationSeconds *int64) error {
	body := map[string]any{}
	if durationSeconds != nil {
		body["durationSeconds"] = *durationSeconds
	}

	return c.postJSON(ctx, "/api/videos/"+videoID+"/confirm", body, nil)
}

// PutFile streams a file body to a presigned URL, reporting progress
// as a 0-100 percentage.
func (c *Client) PutFile(ctx context.Context, url string, f File, onProgress func(percent int)) error {
	body, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open file, %w", err)
	}
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, &progressReader{
		r:          body,
		total:      f.Size,
		onProgress: onProgress,
	})
	if err != nil {
		return err
	}

	req.ContentLength = f.Size

	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("network error during upload, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed: %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request to %s failed: %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// progressReader counts bytes as the transport consumes them.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)

	if p.total > 0 && p.onProgress != nil {
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		p.onProgress(percent)
	}

	return n, err
}
