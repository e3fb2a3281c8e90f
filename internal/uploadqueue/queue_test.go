package uploadqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFile(name, mimeType, content string) File {
	return File{
		Name:     name,
		Size:     int64(len(content)),
		MimeType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestAddFilesFiltersToMP4(t *testing.T) {
	q := NewQueue(NewClient("http://unused"))

	added := q.AddFiles([]File{memFile("notes.txt", "text/plain", "hi")})
	assert.Empty(t, added)
	assert.Empty(t, q.Items())

	added = q.AddFiles([]File{
		memFile("clip.mp4", "video/mp4", "data"),
		memFile("photo.png", "image/png", "data"),
	})
	require.Len(t, added, 1)

	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "clip.mp4", items[0].File.Name)
	assert.Equal(t, StatusPending, items[0].Status)
	assert.Len(t, items[0].ID, 11)
}

// fakeBackend stands in for both the API server and the storage bucket.
type fakeBackend struct {
	mu        sync.Mutex
	putBodies map[string][]byte
	confirmed []string
	failPut   bool

	api     *httptest.Server
	storage *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{putBodies: map[string][]byte{}}

	b.storage = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if b.failPut {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		body, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.putBodies[strings.TrimPrefix(r.URL.Path, "/")] = body
		b.mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(b.storage.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/videos/upload", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Filename string `json:"filename"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		json.NewEncoder(w).Encode(map[string]any{
			"id":             "vid-1",
			"storedFilename": "vid-1.mp4",
			"uploadUrl":      b.storage.URL + "/vid-1.mp4",
			"uploadId":       nil,
		})
	})
	mux.HandleFunc("POST /api/videos/{id}/confirm", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.confirmed = append(b.confirmed, r.PathValue("id"))
		b.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	})

	b.api = httptest.NewServer(mux)
	t.Cleanup(b.api.Close)

	return b
}

func TestStartUploadHappyPath(t *testing.T) {
	backend := newFakeBackend(t)
	q := NewQueue(NewClient(backend.api.URL))

	added := q.AddFiles([]File{memFile("clip.mp4", "video/mp4", "mp4 payload")})
	require.Len(t, added, 1)

	q.StartUpload(context.Background(), added[0].ID, Metadata{UploadedBy: "alice"})

	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, StatusCompleted, items[0].Status)
	assert.Equal(t, 100, items[0].Progress)
	assert.Empty(t, items[0].Error)

	assert.True(t, bytes.Equal([]byte("mp4 payload"), backend.putBodies["vid-1.mp4"]))
	assert.Equal(t, []string{"vid-1"}, backend.confirmed)
}

func TestStartUploadPutFailure(t *testing.T) {
	backend := newFakeBackend(t)
	backend.failPut = true

	q := NewQueue(NewClient(backend.api.URL))

	added := q.AddFiles([]File{memFile("clip.mp4", "video/mp4", "mp4 payload")})
	require.Len(t, added, 1)

	q.StartUpload(context.Background(), added[0].ID, Metadata{})

	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, StatusError, items[0].Status)
	assert.Contains(t, items[0].Error, "upload failed")

	// The failed upload was never confirmed, and nothing retried it
	assert.Empty(t, backend.confirmed)
}

func TestStartUploadUnknownItem(t *testing.T) {
	q := NewQueue(NewClient("http://unused"))

	q.StartUpload(context.Background(), "ghost", Metadata{})

	// Nothing to park the error on, the queue stays empty
	assert.Empty(t, q.Items())
}

func TestUploadAll(t *testing.T) {
	backend := newFakeBackend(t)
	q := NewQueue(NewClient(backend.api.URL))

	q.AddFiles([]File{
		memFile("one.mp4", "video/mp4", "aaa"),
		memFile("two.mp4", "video/mp4", "bbb"),
		memFile("three.mp4", "video/mp4", "ccc"),
	})

	q.UploadAll(context.Background(), Metadata{})

	for _, item := range q.Items() {
		assert.Equal(t, StatusCompleted, item.Status, item.File.Name)
	}
}

func TestRemove(t *testing.T) {
	q := NewQueue(NewClient("http://unused"))

	added := q.AddFiles([]File{
		memFile("one.mp4", "video/mp4", "aaa"),
		memFile("two.mp4", "video/mp4", "bbb"),
	})
	require.Len(t, added, 2)

	q.Remove(added[0].ID)

	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "two.mp4", items[0].File.Name)

	// Removing an unknown ID is a no-op
	q.Remove("ghost")
	assert.Len(t, q.Items(), 1)
}

func TestProgressReader(t *testing.T) {
	var percents []int

	r := &progressReader{
		r:     strings.NewReader(strings.Repeat("x", 100)),
		total: 100,
		onProgress: func(p int) {
			percents = append(percents, p)
		},
	}

	_, err := io.Copy(io.Discard, r)
	require.NoError(t, err)

	require.NotEmpty(t, percents)
	assert.Equal(t, 100, percents[len(percents)-1])

	for _, p := range percents {
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
	}
}
