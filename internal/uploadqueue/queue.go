// Package uploadqueue tracks a batch of in-flight direct-to-storage
// uploads. State lives in an explicit container and every change goes
// through a reducer as a dispatched action, so progress callbacks for
// one item can never touch another.
package uploadqueue

import (
	"context"
	"io"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// File is one candidate upload. Open is called once when the upload
// starts, the body is streamed straight to the presigned URL.
type File struct {
	Name     string
	Size     int64
	MimeType string
	Open     func() (io.ReadCloser, error)
}

type Item struct {
	ID       string
	File     File
	Status   Status
	Progress int
	Error    string
}

// Metadata is attached to every upload started from this queue.
type Metadata struct {
	UploadedBy string
	CategoryID string
}

// Action is a message applied to the queue state by the reducer.
type Action interface{ isAction() }

type addFiles struct{ items []Item }
type start struct{ id string }
type progress struct {
	id      string
	percent int
}
type complete struct{ id string }
type fail struct {
	id      string
	message string
}
type remove struct{ id string }

func (addFiles) isAction() {}
func (start) isAction()    {}
func (progress) isAction() {}
func (complete) isAction() {}
func (fail) isAction()     {}
func (remove) isAction()   {}

// reduce applies one action to the item list. Unknown IDs are ignored,
// an upload finishing after its item was removed must not resurrect it.
func reduce(items []Item, action Action) []Item {
	update := func(id string, fn func(*Item)) []Item {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
				break
			}
		}
		return items
	}

	switch a := action.(type) {
	case addFiles:
		return append(items, a.items...)
	case start:
		return update(a.id, func(it *Item) {
			it.Status = StatusUploading
			it.Progress = 0
		})
	case progress:
		return update(a.id, func(it *Item) {
			it.Progress = a.percent
		})
	case complete:
		return update(a.id, func(it *Item) {
			it.Status = StatusCompleted
			it.Progress = 100
		})
	case fail:
		return update(a.id, func(it *Item) {
			it.Status = StatusError
			it.Error = a.message
		})
	case remove:
		filtered := items[:0]
		for _, it := range items {
			if it.ID != a.id {
				filtered = append(filtered, it)
			}
		}
		return filtered
	}

	return items
}

// Queue is the upload state container. It is ephemeral, nothing
// survives a restart.
type Queue struct {
	mu     sync.Mutex
	items  []Item
	client *Client
}

func NewQueue(client *Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) dispatch(action Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = reduce(q.items, action)
}

// Items returns a snapshot of the queue.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Item(nil), q.items...)
}

func (q *Queue) item(id string) (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, it := range q.items {
		if it.ID == id {
			return it, true
		}
	}

	return Item{}, false
}

// AddFiles enqueues the given files as pending items, skipping
// anything that isn't an MP4. Returns the items actually added.
func (q *Queue) AddFiles(files []File) []Item {
	added := make([]Item, 0, len(files))

	for _, f := range files {
		if f.MimeType != "video/mp4" {
			continue
		}

		id, err := gonanoid.New(11)
		if err != nil {
			continue
		}

		added = append(added, Item{
			ID:     id,
			File:   f,
			Status: StatusPending,
		})
	}

	q.dispatch(addFiles{items: added})
	return added
}

// StartUpload runs one item through the whole flow: init against the
// server, PUT the body to the presigned URL with progress reporting,
// confirm. Any failure parks the item in the error state, there are no
// automatic retries.
func (q *Queue) StartUpload(ctx context.Context, id string, meta Metadata) {
	q.dispatch(start{id: id})

	item, ok := q.item(id)
	if !ok {
		q.dispatch(fail{id: id, message: "Item not found"})
		return
	}

	init, err := q.client.InitUpload(ctx, item.File.Name, item.File.Size, meta)
	if err != nil {
		q.dispatch(fail{id: id, message: err.Error()})
		return
	}

	if init.UploadURL == "" {
		q.dispatch(fail{id: id, message: "No upload URL returned"})
		return
	}

	err = q.client.PutFile(ctx, init.UploadURL, item.File, func(percent int) {
		q.dispatch(progress{id: id, percent: percent})
	})
	if err != nil {
		q.dispatch(fail{id: id, message: err.Error()})
		return
	}

	err = q.client.ConfirmUpload(ctx, init.ID, nil)
	if err != nil {
		q.dispatch(fail{id: id, message: err.Error()})
		return
	}

	q.dispatch(complete{id: id})
}

// UploadAll starts every pending item concurrently, with no cap, and
// waits until all of them have settled.
func (q *Queue) UploadAll(ctx context.Context, meta Metadata) {
	var wg sync.WaitGroup

	for _, it := range q.Items() {
		if it.Status != StatusPending {
			continue
		}

		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			q.StartUpload(ctx, id, meta)
		}(it.ID)
	}

	wg.Wait()
}

// Remove drops an item from the queue regardless of status. An
// in-flight PUT is not cancelled, it just has nowhere to report to
// anymore.
func (q *Queue) Remove(id string) {
	q.dispatch(remove{id: id})
}
