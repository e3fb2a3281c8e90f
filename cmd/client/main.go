// Command client uploads MP4 files to a running ClipVault server from
// the terminal, driving the same init/PUT/confirm flow the web UI uses.
package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"clipvault/video-api/internal/uploadqueue"

	"github.com/spf13/pflag"
)

var (
	server     = pflag.String("server", "http://localhost:8080", "ClipVault server base URL")
	uploadedBy = pflag.String("uploaded-by", "", "Uploader ID to attach to the videos")
	categoryID = pflag.String("category", "", "Category ID to attach to the videos")
)

func main() {
	pflag.Parse()

	paths := pflag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: client [flags] <file.mp4> [more files...]")
		os.Exit(1)
	}

	files := make([]uploadqueue.File, 0, len(paths))

	for _, p := range paths {
		stat, err := os.Stat(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", p, err)
			continue
		}

		path := p
		files = append(files, uploadqueue.File{
			Name:     filepath.Base(path),
			Size:     stat.Size(),
			MimeType: mime.TypeByExtension(filepath.Ext(path)),
			Open: func() (io.ReadCloser, error) {
				return os.Open(path)
			},
		})
	}

	queue := uploadqueue.NewQueue(uploadqueue.NewClient(*server))

	added := queue.AddFiles(files)
	if len(added) == 0 {
		fmt.Fprintln(os.Stderr, "nothing to upload, only MP4 files are accepted")
		os.Exit(1)
	}

	queue.UploadAll(context.Background(), uploadqueue.Metadata{
		UploadedBy: *uploadedBy,
		CategoryID: *categoryID,
	})

	failed := 0

	for _, item := range queue.Items() {
		if item.Status == uploadqueue.StatusError {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %s\n", item.File.Name, item.Error)
			continue
		}

		fmt.Printf("%s: %s\n", item.File.Name, item.Status)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
