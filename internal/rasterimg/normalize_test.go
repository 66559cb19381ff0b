package rasterimg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"ticketd/internal/model"
)

// grayPNG encodes a synthetic gradient so scaling and dithering have real
// content to chew on.
func grayPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, grayImage(width, height)); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func grayImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*7 + y*13) % 256)})
		}
	}
	return img
}

func TestNormalizeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
	}{
		{"corrupt bytes", func() error {
			_, err := Normalize([]byte("not an image at all"), Options{TargetWidth: 576})
			return err
		}},
		{"zero target width", func() error {
			_, err := Normalize(grayPNG(t, 100, 100), Options{TargetWidth: 0})
			return err
		}},
		{"negative target width", func() error {
			_, err := Normalize(grayPNG(t, 100, 100), Options{TargetWidth: -8})
			return err
		}},
		{"padding eats all width", func() error {
			_, err := Normalize(grayPNG(t, 100, 100), Options{TargetWidth: 8, PaddingRight: 8})
			return err
		}},
		{"zero-area image", func() error {
			_, err := NormalizeImage(image.NewGray(image.Rect(0, 0, 0, 0)), Options{TargetWidth: 576})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			var imgErr *model.ImageError
			if !errors.As(err, &imgErr) {
				t.Fatalf("want *model.ImageError, got %v", err)
			}
		})
	}
}

func TestNormalizeWidths(t *testing.T) {
	t.Run("already at target width is not rescaled", func(t *testing.T) {
		out, err := Normalize(grayPNG(t, 576, 100), Options{TargetWidth: 576, PaddingRight: 8})
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}
		if out.Width != 576 || out.Height != 100 {
			t.Fatalf("dimensions changed to %dx%d", out.Width, out.Height)
		}
	})

	t.Run("wide source scales down preserving aspect", func(t *testing.T) {
		out, err := Normalize(grayPNG(t, 1152, 400), Options{TargetWidth: 576})
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}
		if out.Width != 576 {
			t.Fatalf("width = %d, want 576", out.Width)
		}
		if out.Height != 200 {
			t.Fatalf("height = %d, want 200 (uniform scale)", out.Height)
		}
	})

	t.Run("narrow source pads instead of upsampling", func(t *testing.T) {
		out, err := Normalize(grayPNG(t, 100, 50), Options{TargetWidth: 576})
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}
		if out.Width != 576 || out.Height != 50 {
			t.Fatalf("got %dx%d, want 576x50 (no upsampling)", out.Width, out.Height)
		}
		// Right of the content everything must be white.
		for y := 0; y < out.Height; y++ {
			for x := 500; x < out.Width; x++ {
				if out.Pix[y*out.Width+x] != 0xFF {
					t.Fatalf("padding pixel (%d,%d) = %#x, want white", x, y, out.Pix[y*out.Width+x])
				}
			}
		}
	})

	t.Run("top padding adds white rows", func(t *testing.T) {
		out, err := Normalize(grayPNG(t, 576, 40), Options{TargetWidth: 576, PaddingTop: 12})
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}
		if out.Height != 52 {
			t.Fatalf("height = %d, want 52", out.Height)
		}
		for i := 0; i < 12*out.Width; i++ {
			if out.Pix[i] != 0xFF {
				t.Fatalf("top padding pixel %d = %#x, want white", i, out.Pix[i])
			}
		}
	})
}

func TestNormalizeDitherDeterministic(t *testing.T) {
	raw := grayPNG(t, 600, 120)
	opts := Options{TargetWidth: 576, PaddingTop: 4, PaddingRight: 8}

	first, err := Normalize(raw, opts)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	second, err := Normalize(raw, opts)
	if err != nil {
		t.Fatalf("normalize again: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatal("dithering is not deterministic")
	}
	if first.Mode != model.ColorModeOneBit {
		t.Fatalf("mode = %q, want %q", first.Mode, model.ColorModeOneBit)
	}
	for i, p := range first.Pix {
		if p != 0x00 && p != 0xFF {
			t.Fatalf("pixel %d = %#x after dithering, want pure black or white", i, p)
		}
	}
}

func TestNormalizeGrayMode(t *testing.T) {
	out, err := Normalize(grayPNG(t, 576, 10), Options{TargetWidth: 576, Mode: model.ColorModeGray})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if out.Mode != model.ColorModeGray {
		t.Fatalf("mode = %q, want gray", out.Mode)
	}
	if len(out.Pix) != out.Width*out.Height {
		t.Fatalf("pix length %d, want %d", len(out.Pix), out.Width*out.Height)
	}
}

func TestEncodePreview(t *testing.T) {
	out, err := Normalize(grayPNG(t, 576, 20), Options{TargetWidth: 576})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	uri, err := EncodePreview(out)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("preview is not a PNG data URI: %.40s", uri)
	}

	if _, err := EncodePreview(model.RasterImage{}); err == nil {
		t.Fatal("empty artifact should not produce a preview")
	}
}
