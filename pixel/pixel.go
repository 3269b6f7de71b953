// Package pixel holds the in-memory frame state for a strip of addressable LEDs.
package pixel

// Pixel is the color and brightness of one LED. Brightness is a scale factor
// in [0,1] applied on top of the RGB channels when the frame is shifted out.
type Pixel struct {
	R          uint8
	G          uint8
	B          uint8
	Brightness float32
}

// Black is an unlit pixel.
var Black = Pixel{}

// Buffer is an ordered, fixed-length sequence of pixels. Its length is set at
// construction and never changes.
type Buffer struct {
	pix []Pixel
}

// NewBuffer returns a buffer of numPixels unlit pixels.
func NewBuffer(numPixels int) *Buffer {
	return &Buffer{pix: make([]Pixel, numPixels)}
}

func (b *Buffer) Len() int {
	return len(b.pix)
}

func (b *Buffer) At(i int) Pixel {
	return b.pix[i]
}

func (b *Buffer) Set(i int, p Pixel) {
	b.pix[i] = p
}

func (b *Buffer) SetAll(p Pixel) {
	for i := range b.pix {
		b.pix[i] = p
	}
}

// Pixels returns the backing slice in strip order for flushing to a transport.
// The slice stays valid until the next pattern advance overwrites it.
func (b *Buffer) Pixels() []Pixel {
	return b.pix
}
