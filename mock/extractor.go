package mock

import "github.com/fwojciec/pipgrab"

var _ pipgrab.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of pipgrab.PageExtractor.
type PageExtractor struct {
	ExtractFn func(html string, requestID string) (*pipgrab.Result, error)
}

func (e *PageExtractor) Extract(html string, requestID string) (*pipgrab.Result, error) {
	return e.ExtractFn(html, requestID)
}
