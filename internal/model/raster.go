package model

// ColorMode describes the pixel representation of a RasterImage.
type ColorMode string

const (
	ColorModeGray   ColorMode = "gray"
	ColorModeOneBit ColorMode = "1bit" // dithered; every pixel is 0x00 or 0xFF
)

// RasterImage is a row-major bitmap, one byte per pixel, 0x00 black through
// 0xFF white. After normalization Width equals the configured printer width
// and the mode matches what the device can print.
type RasterImage struct {
	Width  int
	Height int
	Pix    []byte
	Mode   ColorMode
}

func (r RasterImage) Empty() bool {
	return r.Width <= 0 || r.Height <= 0 || len(r.Pix) == 0
}
