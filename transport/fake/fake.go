// Package fake records frames in memory, for headless tests and dry runs.
package fake

import (
	"github.com/rowr111/easyblink/pixel"
	"github.com/rowr111/easyblink/transport"
)

// Transport captures the last frame written and counts frames. Setting Err
// makes every write fail with a transport.WriteError wrapping it.
type Transport struct {
	Frames int
	Last   []pixel.Pixel
	Err    error
}

func (t *Transport) WriteFrame(pixels []pixel.Pixel) error {
	if t.Err != nil {
		return &transport.WriteError{Err: t.Err}
	}
	t.Frames++
	t.Last = append(t.Last[:0], pixels...)
	return nil
}

func (t *Transport) Close() error {
	return nil
}
