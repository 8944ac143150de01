// Package encode serializes output frames to portable image buffers.
package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// MIME types of the supported output encodings.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
)

// DefaultJPEGQuality keeps lossy re-encodes visually lossless.
const DefaultJPEGQuality = 95

// PNG encodes the frame losslessly. Preferred for anything originating
// from medical imagery.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// JPEG encodes the frame lossily at the given quality. Quality below
// DefaultJPEGQuality is clamped up; generic raster re-encodes should not
// degrade below that.
func JPEG(img image.Image, quality int) ([]byte, error) {
	if quality < DefaultJPEGQuality {
		quality = DefaultJPEGQuality
	}
	if quality > 100 {
		quality = 100
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL wraps an encoded image buffer as a data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
