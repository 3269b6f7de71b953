package colorway

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/rowr111/easyblink/config"
)

// Stop anchors a color at a position in [0,1] along the strip.
type Stop struct {
	Pos   float64
	Color RGB
}

// Gradient linearly interpolates between the two stops bracketing a pixel's
// normalized position. Positions outside the stop range clamp to the nearest
// endpoint.
type Gradient struct {
	stops []Stop
}

// NewGradient validates the stop list: at least two stops, positions within
// [0,1] and strictly increasing.
func NewGradient(stops []Stop) (Gradient, error) {
	if len(stops) < 2 {
		return Gradient{}, config.Errorf("gradient needs at least 2 stops, got %d", len(stops))
	}
	for i, s := range stops {
		if s.Pos < 0 || s.Pos > 1 {
			return Gradient{}, config.Errorf("gradient stop %d position %g outside [0,1]", i, s.Pos)
		}
		if i > 0 && s.Pos <= stops[i-1].Pos {
			return Gradient{}, config.Errorf("gradient stops must be strictly increasing (stop %d)", i)
		}
	}
	g := Gradient{stops: make([]Stop, len(stops))}
	copy(g.stops, stops)
	return g, nil
}

func (g Gradient) ColorAt(index, total int, _ uint64) RGB {
	return g.at(norm(index, total))
}

func (g Gradient) at(pos float64) RGB {
	if pos <= g.stops[0].Pos {
		return g.stops[0].Color
	}
	last := g.stops[len(g.stops)-1]
	if pos >= last.Pos {
		return last.Color
	}
	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if pos > b.Pos {
			continue
		}
		t := (pos - a.Pos) / (b.Pos - a.Pos)
		return fromColorful(toColorful(a.Color).BlendRgb(toColorful(b.Color), t))
	}
	return last.Color
}

// Fire is a warm static gradient (deep red through orange to near-white) with
// a deterministic per-pixel, per-phase brightness flicker. The flicker is
// keyed by Seed so runs are reproducible; equal seeds give equal frames.
type Fire struct {
	Seed uint64
}

var fireRamp = Gradient{stops: []Stop{
	{Pos: 0, Color: RGB{0x66, 0x00, 0x00}},
	{Pos: 0.55, Color: RGB{0xff, 0x66, 0x00}},
	{Pos: 1, Color: RGB{0xff, 0xe6, 0xb3}},
}}

func (f Fire) ColorAt(index, total int, phase uint64) RGB {
	base := toColorful(fireRamp.at(norm(index, total)))
	// Scale value only, so the flicker never shifts the hue.
	h, s, v := base.Hsv()
	jitter := 0.6 + 0.4*unit(splitmix64(f.Seed^phase<<20^uint64(index)))
	return fromColorful(colorful.Hsv(h, s, v*jitter))
}

// Palette assigns each pixel one of a fixed set of colors, chosen by a
// seeded hash of the pixel index so the assignment is stable across frames.
type Palette struct {
	colors []RGB
	seed   uint64
}

func NewPalette(colors []RGB, seed uint64) (Palette, error) {
	if len(colors) == 0 {
		return Palette{}, config.Errorf("palette needs at least one color")
	}
	p := Palette{colors: make([]RGB, len(colors)), seed: seed}
	copy(p.colors, colors)
	return p, nil
}

func (p Palette) ColorAt(index, _ int, _ uint64) RGB {
	return p.colors[splitmix64(p.seed^uint64(index))%uint64(len(p.colors))]
}
