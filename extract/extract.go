// Package extract orchestrates product page extraction. It sequences the
// page fetch, the DOM field extractors, and the optional image downloads
// into one Result per call.
package extract

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/pipgrab"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultOutputRoot is the parent of per-request image directories.
const DefaultOutputRoot = "output"

// DefaultImageExt is used when an image URL has no file extension.
const DefaultImageExt = ".jpg"

// Ensure Service implements pipgrab.Service at compile time.
var _ pipgrab.Service = (*Service)(nil)

// Service runs the extraction pipeline. It holds no per-call state and is
// safe for concurrent use.
type Service struct {
	Fetcher    pipgrab.Fetcher
	Extractor  pipgrab.PageExtractor
	Downloader pipgrab.Downloader

	// RateLimiter, if set, paces image downloads per host.
	RateLimiter pipgrab.DomainLimiter

	// Logger receives per-image download failures. Defaults to discarding.
	Logger *slog.Logger

	// OutputRoot is where per-request directories are created when no
	// output directory is given. Defaults to DefaultOutputRoot.
	OutputRoot string

	// Concurrency bounds parallel image downloads. Defaults to 1.
	Concurrency int

	// NewID generates request IDs. Defaults to random UUIDs.
	NewID func() string
}

// Extract fetches url and runs the field extractors over it.
func (s *Service) Extract(ctx context.Context, url string) (*pipgrab.Result, error) {
	requestID := s.newID()

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	result, err := s.Extractor.Extract(html, requestID)
	if err != nil {
		return nil, err
	}

	if err := result.Validate(); err != nil {
		return nil, pipgrab.Errorf(pipgrab.EINTERNAL, "invalid extraction result: %s", pipgrab.ErrorMessage(err))
	}

	return result, nil
}

// download is one planned image download.
type download struct {
	id   string
	url  string
	dest string
}

// ExtractAndDownload extracts url and saves every image under outputDir.
// Failed downloads are logged and leave the image without a Path.
func (s *Service) ExtractAndDownload(ctx context.Context, url, outputDir string) (*pipgrab.Result, error) {
	result, err := s.Extract(ctx, url)
	if err != nil {
		return nil, err
	}

	if outputDir == "" {
		outputDir = filepath.Join(s.outputRoot(), result.RequestID)
	}
	result.OutputDirectory = outputDir

	downloads := planDownloads(result, outputDir)
	paths := make([]string, len(downloads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, d := range downloads {
		g.Go(func() error {
			paths[i] = s.download(gctx, d)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, d := range downloads {
		if paths[i] != "" {
			result.Images[d.id].Path = paths[i]
		}
	}

	return result, nil
}

func (s *Service) download(ctx context.Context, d download) string {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(d.url)); err != nil {
			s.logger().Warn("image download skipped", "id", d.id, "url", d.url, "err", err)
			return ""
		}
	}

	path, err := s.Downloader.Download(ctx, d.url, d.dest)
	if err != nil {
		s.logger().Warn("image download failed", "id", d.id, "url", d.url, "path", d.dest, "err", err)
		return ""
	}
	return path
}

// planDownloads assigns each image a destination in dir. Images are
// visited in document order; repeated filenames get a numeric suffix.
func planDownloads(result *pipgrab.Result, dir string) []download {
	ids := result.ImageIDs()
	slices.SortStableFunc(ids, compareImageIDs)
	downloads := make([]download, 0, len(ids))
	seen := make(map[string]int)

	for _, id := range ids {
		img := result.Images[id]
		base := string(img.Type)
		ext := ImageExt(img.URL)

		name := base + ext
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d%s", base, n, ext)
		}

		downloads = append(downloads, download{
			id:   id,
			url:  img.URL,
			dest: filepath.Join(dir, name),
		})
	}
	return downloads
}

// compareImageIDs orders IDs by their text, comparing a trailing
// positional index numerically so "x-2" sorts before "x-10".
func compareImageIDs(a, b string) int {
	aBase, aIdx := splitIndex(a)
	bBase, bIdx := splitIndex(b)
	if c := strings.Compare(aBase, bBase); c != 0 {
		return c
	}
	return cmp.Compare(aIdx, bIdx)
}

// splitIndex splits "req-unknown-12" into "req-unknown" and 12. IDs
// without a numeric suffix get index -1.
func splitIndex(id string) (string, int) {
	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return id, -1
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return id, -1
	}
	return id[:i], n
}

// ImageExt returns the file extension of an image URL's path, ignoring
// the query string, or DefaultImageExt if it has none.
func ImageExt(rawURL string) string {
	p, _, _ := strings.Cut(rawURL, "?")
	if ext := path.Ext(p); ext != "" {
		return ext
	}
	return DefaultImageExt
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) outputRoot() string {
	if s.OutputRoot != "" {
		return s.OutputRoot
	}
	return DefaultOutputRoot
}

func (s *Service) concurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return 1
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
