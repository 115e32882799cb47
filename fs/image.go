// Package fs provides file-based storage for downloaded images.
package fs

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pipgrab"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality matches the quality most imaging libraries default to.
const DefaultJPEGQuality = 75

// MaxImageBytes bounds how much of a response is read as one image.
const MaxImageBytes = 64 << 20

// Ensure ImageWriter implements pipgrab.ImageWriter at compile time.
var _ pipgrab.ImageWriter = (*ImageWriter)(nil)

// ImageWriter decodes image payloads and re-encodes them to disk in the
// format named by the destination extension. Payloads that do not decode
// as an image are rejected, so a saved file is always a genuine image.
type ImageWriter struct {
	JPEGQuality int
}

// NewImageWriter creates an ImageWriter with default settings.
func NewImageWriter() *ImageWriter {
	return &ImageWriter{JPEGQuality: DefaultJPEGQuality}
}

type encodeFunc func(w io.Writer, img image.Image) error

// formatForExt maps a file extension to the format name image.Decode reports.
var formatForExt = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

func (w *ImageWriter) encoder(format string) encodeFunc {
	switch format {
	case "jpeg":
		quality := w.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		return func(out io.Writer, img image.Image) error {
			return jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
		}
	case "png":
		return png.Encode
	case "gif":
		return func(out io.Writer, img image.Image) error {
			return gif.Encode(out, img, nil)
		}
	case "bmp":
		return bmp.Encode
	case "tiff":
		return func(out io.Writer, img image.Image) error {
			return tiff.Encode(out, img, nil)
		}
	}
	return nil
}

// WriteImage decodes r and writes the image to path.
// Formats that can be decoded but not encoded (webp) are written as the
// original bytes when the extension names the decoded format.
func (w *ImageWriter) WriteImage(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return err
	}
	if len(data) > MaxImageBytes {
		return pipgrab.Errorf(pipgrab.EINVALID, "image for %s exceeds %d bytes", path, MaxImageBytes)
	}

	img, decoded, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return pipgrab.Errorf(pipgrab.EINVALID, "decoding image for %s: %v", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	target, ok := formatForExt[ext]
	if !ok {
		return pipgrab.Errorf(pipgrab.EINVALID, "unsupported image extension %q", ext)
	}

	encode := w.encoder(target)
	if encode == nil {
		if target != decoded {
			return pipgrab.Errorf(pipgrab.EINVALID, "cannot convert %s image to %s", decoded, target)
		}
		encode = func(out io.Writer, _ image.Image) error {
			_, err := out.Write(data)
			return err
		}
	}

	return writeAtomic(dir, path, func(out io.Writer) error {
		return encode(out, img)
	})
}

// writeAtomic writes to a temporary file in dir and renames it to path,
// so readers never observe a partially written image.
func writeAtomic(dir, path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(dir, ".pipgrab-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
