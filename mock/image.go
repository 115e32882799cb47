package mock

import (
	"context"
	"io"

	"github.com/fwojciec/pipgrab"
)

var _ pipgrab.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of pipgrab.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url, dest string) (string, error)
}

func (d *Downloader) Download(ctx context.Context, url, dest string) (string, error) {
	return d.DownloadFn(ctx, url, dest)
}

var _ pipgrab.ImageWriter = (*ImageWriter)(nil)

// ImageWriter is a mock implementation of pipgrab.ImageWriter.
type ImageWriter struct {
	WriteImageFn func(path string, r io.Reader) error
}

func (w *ImageWriter) WriteImage(path string, r io.Reader) error {
	return w.WriteImageFn(path, r)
}
