package model

import "errors"

// ErrNotFound reports a reprint of an unknown or already-evicted history id.
var ErrNotFound = errors.New("history entry not found")

// RenderError means both rasterization backends failed; Err is the last
// underlying cause.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render failed: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// ImageError covers undecodable or malformed bitmaps and invalid
// normalization targets.
type ImageError struct {
	Err error
}

func (e *ImageError) Error() string { return "image error: " + e.Err.Error() }
func (e *ImageError) Unwrap() error { return e.Err }

// PrinterError covers connect and write failures against the device.
type PrinterError struct {
	Err     error
	Timeout bool
}

func (e *PrinterError) Error() string { return "printer error: " + e.Err.Error() }
func (e *PrinterError) Unwrap() error { return e.Err }
