package pipgrab

import (
	"context"
	"net/url"
	"sort"
	"strings"
)

// Result holds everything extracted from one product page.
type Result struct {
	RequestID    string            `json:"requestId"`
	Images       map[string]*Image `json:"images"`
	Measurements map[string]string `json:"measurements"`
	Materials    map[string]string `json:"materials"`

	// OutputDirectory is where images were saved. Empty unless a
	// download was requested.
	OutputDirectory string `json:"outputDirectory,omitempty"`
}

// NewResult returns an empty result for the given request ID.
func NewResult(requestID string) *Result {
	return &Result{
		RequestID:    requestID,
		Images:       make(map[string]*Image),
		Measurements: make(map[string]string),
		Materials:    make(map[string]string),
	}
}

// AddImage records img under its ID, replacing any previous image with the same ID.
func (r *Result) AddImage(img *Image) {
	r.Images[img.ID] = img
}

// ImageIDs returns the image IDs in sorted order.
func (r *Result) ImageIDs() []string {
	ids := make([]string, 0, len(r.Images))
	for id := range r.Images {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ImageID returns the ID for an image owned by this result.
func (r *Result) ImageID(suffix string) string {
	return r.RequestID + "-" + suffix
}

// Validate returns an error if the result breaks its identity invariants.
func (r *Result) Validate() error {
	if r.RequestID == "" {
		return Errorf(EINVALID, "result request ID required")
	}
	for id, img := range r.Images {
		if img == nil {
			return Errorf(EINVALID, "image %q is nil", id)
		}
		if img.ID != id {
			return Errorf(EINVALID, "image %q stored under key %q", img.ID, id)
		}
		if !strings.HasPrefix(id, r.RequestID+"-") {
			return Errorf(EINVALID, "image %q not prefixed by request ID", id)
		}
		if img.URL == "" {
			return Errorf(EINVALID, "image %q URL required", id)
		}
	}
	return nil
}

// ExtractRequest is a caller's request to extract one product page.
type ExtractRequest struct {
	URL string `json:"url"`

	// DownloadImages defaults to true when nil.
	DownloadImages *bool `json:"downloadImages,omitempty"`

	// CustomOutputDirectory overrides the per-request default directory.
	CustomOutputDirectory string `json:"customOutputDirectory,omitempty"`
}

// ShouldDownload reports whether images should be downloaded.
func (r *ExtractRequest) ShouldDownload() bool {
	return r.DownloadImages == nil || *r.DownloadImages
}

// Validate returns an error if the request URL is not an absolute http(s) URL.
func (r *ExtractRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.ParseRequestURI(r.URL)
	if err != nil {
		return Errorf(EINVALID, "invalid url %q", r.URL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "url must be an absolute http(s) URL: %q", r.URL)
	}
	return nil
}

// PageExtractor extracts product fields from page HTML.
type PageExtractor interface {
	// Extract parses html and fills a new Result owned by requestID.
	// Fields that cannot be found are left empty; only unparseable
	// input returns an error.
	Extract(html string, requestID string) (*Result, error)
}

// Service runs the extraction pipeline.
type Service interface {
	// Extract fetches url and returns its extracted fields without
	// downloading images.
	Extract(ctx context.Context, url string) (*Result, error)

	// ExtractAndDownload extracts url and downloads every image into
	// outputDir, or a per-request directory when outputDir is empty.
	// Images whose download fails are kept without a Path.
	ExtractAndDownload(ctx context.Context, url, outputDir string) (*Result, error)
}
