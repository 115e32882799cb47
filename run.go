package pipgrab

import "context"

// Run validates req and dispatches it to s, downloading images unless
// the request opts out.
func Run(ctx context.Context, s Service, req *ExtractRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ShouldDownload() {
		return s.ExtractAndDownload(ctx, req.URL, req.CustomOutputDirectory)
	}
	return s.Extract(ctx, req.URL)
}
