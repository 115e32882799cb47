package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pipgrab"
)

// Ensure LoggingService implements pipgrab.Service.
var _ pipgrab.Service = (*LoggingService)(nil)

// LoggingService wraps a Service and logs one line per extraction.
type LoggingService struct {
	next   pipgrab.Service
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next pipgrab.Service, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

// Extract delegates to the wrapped service and logs the outcome.
func (s *LoggingService) Extract(ctx context.Context, url string) (result *pipgrab.Result, err error) {
	defer func(begin time.Time) {
		s.log("extract", url, result, time.Since(begin), err)
	}(time.Now())
	return s.next.Extract(ctx, url)
}

// ExtractAndDownload delegates to the wrapped service and logs the outcome.
func (s *LoggingService) ExtractAndDownload(ctx context.Context, url, outputDir string) (result *pipgrab.Result, err error) {
	defer func(begin time.Time) {
		s.log("extract and download", url, result, time.Since(begin), err)
	}(time.Now())
	return s.next.ExtractAndDownload(ctx, url, outputDir)
}

func (s *LoggingService) log(msg, url string, result *pipgrab.Result, d time.Duration, err error) {
	if err != nil {
		s.logger.Error(msg,
			"url", url,
			"code", pipgrab.ErrorCode(err),
			"duration", d,
			"err", err,
		)
		return
	}

	saved := 0
	for _, img := range result.Images {
		if img.Path != "" {
			saved++
		}
	}
	s.logger.Info(msg,
		"url", url,
		"request_id", result.RequestID,
		"images", len(result.Images),
		"saved", saved,
		"measurements", len(result.Measurements),
		"materials", len(result.Materials),
		"duration", d,
	)
}
