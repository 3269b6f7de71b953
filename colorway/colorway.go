// Package colorway maps pixel positions and animation phase to colors.
// A Colorway is a pure palette function: no state, no side effects, the same
// (index, total, phase) triple always yields the same color.
package colorway

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rowr111/easyblink/config"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseHex parses "#rrggbb" (or "#rgb") into an RGB.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, config.Errorf("bad color %q: %v", s, err)
	}
	return fromColorful(c), nil
}

// Colorway derives a color for the pixel at index on a strip of total pixels
// at the given animation phase. Implementations must be callable at any phase
// and index without prior calls.
type Colorway interface {
	ColorAt(index, total int, phase uint64) RGB
}

// Handpicked hue values carried over from the first version of this library.
const (
	RedHue    = 0
	OrangeHue = 18
	YellowHue = 40
	GreenHue  = 116
	BlueHue   = 240
	PurpleHue = 266
)

// Rainbow spreads a full hue cycle across the strip and scrolls it with phase.
// One phase unit is one hue degree, so the period is 360.
type Rainbow struct{}

func (Rainbow) ColorAt(index, total int, phase uint64) RGB {
	hue := math.Mod(float64(phase%360)+360.0*norm(index, total), 360.0)
	return fromColorful(colorful.Hsv(hue, 1, 1))
}

// Solid ignores phase and index and always returns the same color.
type Solid struct {
	Color RGB
}

func (s Solid) ColorAt(int, int, uint64) RGB {
	return s.Color
}

// FromHue returns a fully saturated Solid at the given hue in degrees.
func FromHue(deg float64) Solid {
	return Solid{Color: fromColorful(colorful.Hsv(math.Mod(deg, 360), 1, 1))}
}

var (
	Red    = FromHue(RedHue)
	Orange = FromHue(OrangeHue)
	Yellow = FromHue(YellowHue)
	Green  = FromHue(GreenHue)
	Blue   = FromHue(BlueHue)
	Purple = FromHue(PurpleHue)
	White  = Solid{Color: RGB{255, 255, 255}}
)

// norm is the pixel's normalized position along the strip. A single-pixel
// strip sits at position 0.
func norm(index, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(index) / float64(total)
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// splitmix64 is a fast 64-bit hash, used to derive deterministic per-pixel
// jitter without carrying generator state.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// unit maps a hash to a float in [0,1).
func unit(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}
