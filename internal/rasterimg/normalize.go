// Package rasterimg scales, pads and dithers bitmaps to the printer's fixed
// output width and color capability.
package rasterimg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"ticketd/internal/model"
)

// Options fixes the normalization target. TargetWidth is the printer head
// width in pixels; padding is added as white margins inside that width.
type Options struct {
	TargetWidth  int
	PaddingTop   int
	PaddingRight int
	Mode         model.ColorMode
}

// Normalize decodes raw image bytes and normalizes them for the printer.
// Undecodable input yields *model.ImageError.
func Normalize(raw []byte, opts Options) (model.RasterImage, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return model.RasterImage{}, &model.ImageError{Err: fmt.Errorf("decode: %w", err)}
	}
	return NormalizeImage(src, opts)
}

// NormalizeImage scales src so its width matches the target exactly, pads
// the configured top/right margins with white, and converts to the
// requested color mode. Sources narrower than the content width are padded
// rather than upsampled: blur on user-supplied images reads worse on
// thermal paper than a margin does. An already-content-width source is
// never rescaled.
func NormalizeImage(src image.Image, opts Options) (model.RasterImage, error) {
	if opts.TargetWidth <= 0 {
		return model.RasterImage{}, &model.ImageError{Err: fmt.Errorf("target width %d", opts.TargetWidth)}
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return model.RasterImage{}, &model.ImageError{Err: fmt.Errorf("zero-area image %dx%d", bounds.Dx(), bounds.Dy())}
	}
	contentWidth := opts.TargetWidth - opts.PaddingRight
	if contentWidth <= 0 {
		return model.RasterImage{}, &model.ImageError{Err: fmt.Errorf("right padding %d leaves no content width", opts.PaddingRight)}
	}

	// A source already at the full target width is taken as-is: re-scaling
	// an exact-width bitmap only blurs it, and the right margin is
	// meaningless once the content fills the head.
	scaled := src
	if bounds.Dx() != opts.TargetWidth && bounds.Dx() > contentWidth {
		scale := float64(contentWidth) / float64(bounds.Dx())
		newHeight := int(float64(bounds.Dy()) * scale)
		if newHeight < 1 {
			newHeight = 1
		}
		dst := image.NewGray(image.Rect(0, 0, contentWidth, newHeight))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		scaled = dst
	}

	sb := scaled.Bounds()
	height := sb.Dy() + opts.PaddingTop
	canvas := image.NewGray(image.Rect(0, 0, opts.TargetWidth, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, opts.PaddingTop, sb.Dx(), height), scaled, sb.Min, draw.Src)

	mode := opts.Mode
	if mode == "" {
		mode = model.ColorModeOneBit
	}

	pix := canvas.Pix
	if mode == model.ColorModeOneBit {
		pix = dither(canvas)
	}

	out := model.RasterImage{
		Width:  opts.TargetWidth,
		Height: height,
		Pix:    make([]byte, len(pix)),
		Mode:   mode,
	}
	copy(out.Pix, pix)
	return out, nil
}

var monoPalette = color.Palette{color.Gray{Y: 0x00}, color.Gray{Y: 0xFF}}

// dither reduces a grayscale canvas to pure black and white using
// Floyd-Steinberg error diffusion. The stdlib drawer is deterministic, so
// identical input always yields identical output bytes.
func dither(gray *image.Gray) []byte {
	pal := image.NewPaletted(gray.Bounds(), monoPalette)
	draw.FloydSteinberg.Draw(pal, gray.Bounds(), gray, image.Point{})

	pix := make([]byte, len(pal.Pix))
	for i, idx := range pal.Pix {
		if idx == 0 {
			pix[i] = 0x00
		} else {
			pix[i] = 0xFF
		}
	}
	return pix
}
