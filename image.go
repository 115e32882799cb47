package pipgrab

import (
	"context"
	"io"
)

// ImageType classifies an extracted image by the page region it came from.
type ImageType string

// ImageType constants.
const (
	ImageMain        ImageType = "main"
	ImageMeasurement ImageType = "measurement"
	ImageUnknown     ImageType = "unknown"
)

// Image is a product image discovered on a page.
type Image struct {
	ID   string    `json:"id"`
	URL  string    `json:"url"`
	Alt  string    `json:"alt"`
	Type ImageType `json:"type"`

	// Path is the local file the image was saved to.
	// Empty unless the image was downloaded successfully.
	Path string `json:"path,omitempty"`
}

// Downloader saves remote images to local files.
type Downloader interface {
	// Download fetches the image at url and saves it to dest.
	// Returns the path written on success. Callers treat any error as a
	// per-image failure that must not abort sibling downloads.
	Download(ctx context.Context, url, dest string) (path string, err error)
}

// ImageWriter persists image bytes to local files.
type ImageWriter interface {
	// WriteImage validates that r holds a decodable image and writes it
	// to path, creating parent directories as needed.
	WriteImage(path string, r io.Reader) error
}

// DomainLimiter provides per-domain rate limiting for image downloads.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
