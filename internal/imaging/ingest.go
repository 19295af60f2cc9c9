// Package imaging converts uploaded image files into inline data URLs
// suitable for storage alongside catalog records.
package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"net/http"

	_ "image/gif"
	_ "image/png"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

const (
	// MaxDirectBytes is the size up to which files are encoded as-is.
	MaxDirectBytes = 200 * 1024

	// MaxWidth and MaxHeight bound the resized image dimensions.
	MaxWidth  = 1000
	MaxHeight = 1000

	// jpegQuality is the fixed re-encoding quality for oversized images.
	jpegQuality = 70
)

// FitRatio returns the scale factor that fits width x height inside
// MaxWidth x MaxHeight while preserving aspect ratio. The ratio never
// exceeds 1, so images are never upscaled.
func FitRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	ratio := 1.0
	if r := float64(MaxWidth) / float64(width); r < ratio {
		ratio = r
	}
	if r := float64(MaxHeight) / float64(height); r < ratio {
		ratio = r
	}
	return ratio
}

// Ingest produces a data URL for the given file contents. Files up to
// MaxDirectBytes are base64-encoded directly; larger files are decoded,
// scaled to fit MaxWidth x MaxHeight, and re-encoded as JPEG. Any failure in
// the resize path falls back to direct encoding; an empty input yields an
// empty string, which callers must treat as "no image", never as an error.
func Ingest(data []byte, mimeType string) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) <= MaxDirectBytes {
		return encodeDirect(data, mimeType)
	}

	encoded, err := resizeCompress(data)
	if err != nil {
		log.Warn().Err(err).Int("size", len(data)).Msg("Image resize failed, storing original")
		return encodeDirect(data, mimeType)
	}
	return encoded
}

// encodeDirect base64-encodes the raw bytes as a data URL, sniffing the
// content type when the caller did not provide one.
func encodeDirect(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// resizeCompress decodes the image, scales it down to fit the bounding box,
// and re-encodes it as JPEG at the fixed quality.
func resizeCompress(data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	bounds := src.Bounds()
	ratio := FitRatio(bounds.Dx(), bounds.Dy())

	dst := src
	if ratio < 1 {
		w := int(float64(bounds.Dx()) * ratio)
		h := int(float64(bounds.Dy()) * ratio)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		dst = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
