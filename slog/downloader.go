package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pipgrab"
)

// Ensure LoggingDownloader implements pipgrab.Downloader.
var _ pipgrab.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   pipgrab.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next pipgrab.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url, dest string) (path string, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("image download",
			"url", url,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, dest)
}
