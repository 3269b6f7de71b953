// Package transport commits in-memory pixel frames to an output device. The
// engine only needs a sink that accepts an ordered pixel sequence; the wire
// format (APA102 start frame, per-LED words, end frame) stays device-internal.
package transport

import (
	"fmt"

	"github.com/rowr111/easyblink/pixel"
)

// Transport is the hardware-facing collaborator of the animation core.
type Transport interface {
	// WriteFrame sends brightness and RGB for every pixel in strip order.
	WriteFrame(pixels []pixel.Pixel) error
	// Close releases the underlying device.
	Close() error
}

// InitError means the output device could not be opened, e.g. the SPI
// device tree overlay is not enabled.
type InitError struct {
	Dev string
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("transport: open %s: %v", e.Dev, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// WriteError means a frame flush failed. The in-memory frame is untouched;
// the caller may retry or carry on to the next frame.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("transport: write frame: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// scale folds a pixel's brightness into one of its color channels.
func scale(c uint8, brightness float32) byte {
	if brightness <= 0 {
		return 0
	}
	if brightness >= 1 {
		return c
	}
	return byte(float32(c)*brightness + 0.5)
}
