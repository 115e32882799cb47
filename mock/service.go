package mock

import (
	"context"

	"github.com/fwojciec/pipgrab"
)

var _ pipgrab.Service = (*Service)(nil)

// Service is a mock implementation of pipgrab.Service.
type Service struct {
	ExtractFn            func(ctx context.Context, url string) (*pipgrab.Result, error)
	ExtractAndDownloadFn func(ctx context.Context, url, outputDir string) (*pipgrab.Result, error)
}

func (s *Service) Extract(ctx context.Context, url string) (*pipgrab.Result, error) {
	return s.ExtractFn(ctx, url)
}

func (s *Service) ExtractAndDownload(ctx context.Context, url, outputDir string) (*pipgrab.Result, error) {
	return s.ExtractAndDownloadFn(ctx, url, outputDir)
}
