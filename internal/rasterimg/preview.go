package rasterimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"ticketd/internal/model"
)

// ToGray rebuilds a stdlib image from a raster artifact.
func ToGray(r model.RasterImage) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}

// EncodePreview renders the artifact as a PNG data URI for history
// listings.
func EncodePreview(r model.RasterImage) (string, error) {
	if r.Empty() {
		return "", &model.ImageError{Err: fmt.Errorf("empty artifact")}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, ToGray(r)); err != nil {
		return "", &model.ImageError{Err: fmt.Errorf("encode preview: %w", err)}
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
