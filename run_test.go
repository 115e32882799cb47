package pipgrab_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pipgrab"
	"github.com/fwojciec/pipgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	newService := func(calls *[]string) *mock.Service {
		return &mock.Service{
			ExtractFn: func(_ context.Context, url string) (*pipgrab.Result, error) {
				*calls = append(*calls, "extract "+url)
				return pipgrab.NewResult("req"), nil
			},
			ExtractAndDownloadFn: func(_ context.Context, url, outputDir string) (*pipgrab.Result, error) {
				*calls = append(*calls, "download "+url+" "+outputDir)
				return pipgrab.NewResult("req"), nil
			},
		}
	}

	t.Run("downloads by default", func(t *testing.T) {
		t.Parallel()

		var calls []string
		req := &pipgrab.ExtractRequest{URL: "https://www.ikea.com/p/x", CustomOutputDirectory: "imgs"}

		_, err := pipgrab.Run(context.Background(), newService(&calls), req)
		require.NoError(t, err)

		assert.Equal(t, []string{"download https://www.ikea.com/p/x imgs"}, calls)
	})

	t.Run("extracts only when downloads are disabled", func(t *testing.T) {
		t.Parallel()

		var calls []string
		no := false
		req := &pipgrab.ExtractRequest{URL: "https://www.ikea.com/p/x", DownloadImages: &no}

		_, err := pipgrab.Run(context.Background(), newService(&calls), req)
		require.NoError(t, err)

		assert.Equal(t, []string{"extract https://www.ikea.com/p/x"}, calls)
	})

	t.Run("rejects invalid requests before calling the service", func(t *testing.T) {
		t.Parallel()

		var calls []string

		_, err := pipgrab.Run(context.Background(), newService(&calls), &pipgrab.ExtractRequest{URL: "nope"})

		assert.Equal(t, pipgrab.EINVALID, pipgrab.ErrorCode(err))
		assert.Empty(t, calls)
	})
}
