// Package escpos serializes raster artifacts into the printer's command
// byte stream. Encoding is pure and deterministic: identical input always
// yields byte-identical output, which is what makes reprints reproducible.
package escpos

import (
	"fmt"

	"ticketd/internal/model"
)

// Control bytes shared by ESC-POS devices.
const (
	esc = 0x1B
	gs  = 0x1D
)

const (
	defaultMaxRows = 256
	darkThreshold  = 0x80 // pixel prints when its value is below this
)

// Options tunes the emitted stream per device model. MaxRows caps the rows
// carried by a single GS v 0 command; taller images are split into
// sequential commands.
type Options struct {
	MaxRows   int
	FeedLines int
	CutFeed   bool
}

// Encode produces the full print job: init, raster blocks, feed, and an
// optional partial cut.
func Encode(img model.RasterImage, opts Options) ([]byte, error) {
	if img.Empty() {
		return nil, &model.ImageError{Err: fmt.Errorf("empty raster image")}
	}
	if len(img.Pix) != img.Width*img.Height {
		return nil, &model.ImageError{Err: fmt.Errorf("pixel buffer %d does not match %dx%d", len(img.Pix), img.Width, img.Height)}
	}
	if img.Width > 0xFFFF*8 || img.Height > 0xFFFF {
		return nil, &model.ImageError{Err: fmt.Errorf("image %dx%d exceeds protocol addressing", img.Width, img.Height)}
	}

	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	rowBytes := (img.Width + 7) / 8
	out := make([]byte, 0, 2+img.Height*rowBytes+img.Height/maxRows*8+16)

	// Initialize printer: ESC @
	out = append(out, esc, 0x40)

	// GS v 0 raster blocks, chunked by height. Chunks must tile the image
	// exactly; a gap or overlap shears the printed output.
	for y := 0; y < img.Height; y += maxRows {
		rows := maxRows
		if rows > img.Height-y {
			rows = img.Height - y
		}
		out = append(out,
			gs, 0x76, 0x30, 0x00,
			byte(rowBytes), byte(rowBytes>>8),
			byte(rows), byte(rows>>8),
		)
		out = appendPackedRows(out, img, y, rows, rowBytes)
	}

	// ESC d n - feed n lines
	if opts.FeedLines > 0 {
		out = append(out, esc, 0x64, byte(opts.FeedLines))
	}
	if opts.CutFeed {
		// GS V A 0 - partial cut
		out = append(out, gs, 0x56, 0x41, 0x00)
	}
	return out, nil
}

// appendPackedRows packs rows [y, y+rows) into 1-bit-per-pixel raster data,
// MSB leftmost. Trailing bits past the image width stay zero (white).
func appendPackedRows(dst []byte, img model.RasterImage, y, rows, rowBytes int) []byte {
	for r := y; r < y+rows; r++ {
		base := r * img.Width
		for b := 0; b < rowBytes; b++ {
			var packed byte
			for bit := 0; bit < 8; bit++ {
				x := b*8 + bit
				if x >= img.Width {
					break
				}
				if img.Pix[base+x] < darkThreshold {
					packed |= 1 << (7 - bit)
				}
			}
			dst = append(dst, packed)
		}
	}
	return dst
}
