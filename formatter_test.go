package pipgrab_test

import (
	"testing"

	"github.com/fwojciec/pipgrab"
	"github.com/stretchr/testify/assert"
)

func TestFormatMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("formats images, measurements, and materials", func(t *testing.T) {
		t.Parallel()

		got := pipgrab.FormatMarkdown(newTestResult())

		want := `## Images

- https://example.com/main.jpg?f=xl (output/req-1/main.jpg)
- https://example.com/measure.png

## Measurements

- **Depth**: 82 cm
- **Width**: 68 cm

## Materials

- **Materials**: Birch veneer, Polyester
`
		assert.Equal(t, want, got)
	})

	t.Run("title-cases multi-word labels", func(t *testing.T) {
		t.Parallel()

		r := pipgrab.NewResult("req")
		r.Measurements["seat height"] = "45 cm"

		got := pipgrab.FormatMarkdown(r)

		assert.Contains(t, got, "- **Seat Height**: 45 cm")
	})

	t.Run("shows placeholders for empty sections", func(t *testing.T) {
		t.Parallel()

		got := pipgrab.FormatMarkdown(pipgrab.NewResult("req"))

		assert.Contains(t, got, pipgrab.NoImagesMessage)
		assert.Contains(t, got, pipgrab.NoMeasurementsMessage)
		assert.Contains(t, got, pipgrab.NoMaterialsMessage)
	})
}
