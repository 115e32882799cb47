// Package http provides HTTP implementations of pipgrab.Fetcher and
// pipgrab.Downloader, and the HTTP API server for the extraction service.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pipgrab"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the default timeout for page and image requests.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies requests as a desktop browser. Product pages
// block clients that do not look like one.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements pipgrab.Fetcher at compile time.
var _ pipgrab.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML using plain HTTP requests.
// It does not execute JavaScript; see rod.Fetcher for that.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher or a Downloader.
type Option func(*options)

type options struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithClient uses the given client instead of a new one.
// The client's Timeout is replaced by the configured timeout.
func WithClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := &http.Client{}
	if o.client != nil {
		c := *o.client
		client = &c
	}
	client.Timeout = o.timeout
	o.client = client

	return o
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(opts)
	return &Fetcher{
		client:    o.client,
		userAgent: o.userAgent,
	}
}

// Fetch retrieves the page at url and returns its body decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := get(ctx, f.client, url, f.userAgent)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pipgrab.Errorf(pipgrab.EFETCH, "reading %s: %v", url, err)
	}
	// An empty 2xx body is an empty document.
	if len(raw) == 0 {
		return "", nil
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", pipgrab.Errorf(pipgrab.EFETCH, "decoding %s: %v", url, err)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", pipgrab.Errorf(pipgrab.EFETCH, "decoding %s: %v", url, err)
	}

	return string(b), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// get issues a single GET and returns the response for any 2xx status.
// The caller must close the response body.
func get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pipgrab.Errorf(pipgrab.EINVALID, "invalid url %q: %v", url, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, pipgrab.Errorf(pipgrab.EFETCH, "GET %s: %v", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, pipgrab.Errorf(pipgrab.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}
