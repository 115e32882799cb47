package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/pipgrab"
)

// Ensure Downloader implements pipgrab.Downloader at compile time.
var _ pipgrab.Downloader = (*Downloader)(nil)

// Downloader fetches images over HTTP and hands the payload to an
// ImageWriter, which validates and persists it.
type Downloader struct {
	client    *http.Client
	userAgent string
	writer    pipgrab.ImageWriter
}

// NewDownloader creates a Downloader that saves images with w.
func NewDownloader(w pipgrab.ImageWriter, opts ...Option) *Downloader {
	o := newOptions(opts)
	return &Downloader{
		client:    o.client,
		userAgent: o.userAgent,
		writer:    w,
	}
}

// Download fetches url and writes the decoded image to dest.
func (d *Downloader) Download(ctx context.Context, url, dest string) (string, error) {
	resp, err := get(ctx, d.client, url, d.userAgent)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := d.writer.WriteImage(dest, resp.Body); err != nil {
		return "", err
	}
	return dest, nil
}
