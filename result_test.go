package pipgrab_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/pipgrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResult() *pipgrab.Result {
	r := pipgrab.NewResult("req-1")
	r.AddImage(&pipgrab.Image{
		ID:   r.ImageID("main"),
		URL:  "https://example.com/main.jpg?f=xl",
		Alt:  "Armchair",
		Type: pipgrab.ImageMain,
		Path: "output/req-1/main.jpg",
	})
	r.AddImage(&pipgrab.Image{
		ID:   r.ImageID("measurement"),
		URL:  "https://example.com/measure.png",
		Type: pipgrab.ImageMeasurement,
	})
	r.Measurements["width"] = "68 cm"
	r.Measurements["depth"] = "82 cm"
	r.Materials["materials"] = "Birch veneer, Polyester"
	return r
}

func TestResult_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := newTestResult()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded pipgrab.Result
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.RequestID, decoded.RequestID)
	assert.Equal(t, original.Images, decoded.Images)
	assert.Equal(t, original.Measurements, decoded.Measurements)
	assert.Equal(t, original.Materials, decoded.Materials)
}

func TestResult_WireFormat(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(newTestResult())
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, "req-1", wire["requestId"])
	assert.NotContains(t, wire, "outputDirectory")

	images := wire["images"].(map[string]any)
	main := images["req-1-main"].(map[string]any)
	assert.Equal(t, "output/req-1/main.jpg", main["path"])
	assert.Equal(t, "main", main["type"])

	measurement := images["req-1-measurement"].(map[string]any)
	assert.NotContains(t, measurement, "path")
	assert.Equal(t, "", measurement["alt"])
}

func TestResult_ImageIDs(t *testing.T) {
	t.Parallel()

	r := pipgrab.NewResult("req")
	r.AddImage(&pipgrab.Image{ID: "req-unknown-2", URL: "c"})
	r.AddImage(&pipgrab.Image{ID: "req-main-0", URL: "a"})
	r.AddImage(&pipgrab.Image{ID: "req-unknown-1", URL: "b"})

	assert.Equal(t, []string{"req-main-0", "req-unknown-1", "req-unknown-2"}, r.ImageIDs())
}

func TestResult_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid result", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, newTestResult().Validate())
	})

	t.Run("requires request ID", func(t *testing.T) {
		t.Parallel()

		err := pipgrab.NewResult("").Validate()

		assert.Equal(t, pipgrab.EINVALID, pipgrab.ErrorCode(err))
	})

	t.Run("rejects image without request ID prefix", func(t *testing.T) {
		t.Parallel()

		r := pipgrab.NewResult("req")
		r.AddImage(&pipgrab.Image{ID: "other-main", URL: "a"})

		err := r.Validate()

		assert.Equal(t, pipgrab.EINVALID, pipgrab.ErrorCode(err))
	})

	t.Run("rejects image stored under a different key", func(t *testing.T) {
		t.Parallel()

		r := pipgrab.NewResult("req")
		r.Images["req-a"] = &pipgrab.Image{ID: "req-b", URL: "a"}

		err := r.Validate()

		assert.Equal(t, pipgrab.EINVALID, pipgrab.ErrorCode(err))
	})
}

func TestExtractRequest(t *testing.T) {
	t.Parallel()

	t.Run("downloads by default", func(t *testing.T) {
		t.Parallel()

		var req pipgrab.ExtractRequest
		require.NoError(t, json.Unmarshal([]byte(`{"url":"https://www.ikea.com/p/x"}`), &req))

		assert.True(t, req.ShouldDownload())
		assert.NoError(t, req.Validate())
	})

	t.Run("honors explicit downloadImages false", func(t *testing.T) {
		t.Parallel()

		var req pipgrab.ExtractRequest
		body := `{"url":"https://www.ikea.com/p/x","downloadImages":false,"customOutputDirectory":"imgs"}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		assert.False(t, req.ShouldDownload())
		assert.Equal(t, "imgs", req.CustomOutputDirectory)
	})

	t.Run("rejects invalid URLs", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"", "not a url", "/relative/path", "ftp://example.com/x", "https://"} {
			req := pipgrab.ExtractRequest{URL: u}
			assert.Equal(t, pipgrab.EINVALID, pipgrab.ErrorCode(req.Validate()), "url %q", u)
		}
	})
}
