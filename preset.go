package easyblink

import (
	"github.com/rowr111/easyblink/colorway"
	"github.com/rowr111/easyblink/config"
	"github.com/rowr111/easyblink/pattern"
)

// Preset bundles a colorway and a pattern whose colors belong together.
type Preset int

const (
	// Fireplace crackles in warm reds and oranges.
	Fireplace Preset = iota
	// ChristmasTraditional twinkles in white, red, green, blue and purple,
	// like a string of tree lights.
	ChristmasTraditional
)

func (p Preset) String() string {
	switch p {
	case Fireplace:
		return "fireplace"
	case ChristmasTraditional:
		return "christmas-traditional"
	}
	return "unknown"
}

// ParsePreset maps a name like "fireplace" back to its Preset.
func ParsePreset(s string) (Preset, error) {
	switch s {
	case "fireplace":
		return Fireplace, nil
	case "christmas-traditional":
		return ChristmasTraditional, nil
	}
	return 0, config.Errorf("unknown preset %q", s)
}

var christmasColors = []colorway.RGB{
	colorway.White.Color,
	colorway.Red.Color,
	colorway.FromHue(120).Color,
	colorway.FromHue(240).Color,
	colorway.FromHue(270).Color,
}

// Resolve expands a preset into its colorway, pattern kind and parameters
// for a strip of numPixels.
func (p Preset) Resolve(numPixels int) (colorway.Colorway, pattern.Kind, pattern.Options, error) {
	opts := pattern.DefaultOptions(numPixels)
	switch p {
	case Fireplace:
		return colorway.Fire{}, pattern.Sparkle, opts, nil
	case ChristmasTraditional:
		pal, err := colorway.NewPalette(christmasColors, 0)
		if err != nil {
			return nil, 0, opts, err
		}
		return pal, pattern.Twinkle, opts, nil
	}
	return nil, 0, opts, config.Errorf("unknown preset %d", p)
}

// ExecutePreset runs one frame of a preset, the counterpart of
// ExecutePattern for colorway/pattern pairings that come as a set.
func (c *Controller) ExecutePreset(p Preset, delayMs uint32) error {
	cw, kind, opts, err := p.Resolve(c.buf.Len())
	if err != nil {
		return err
	}
	return c.ExecutePatternWith(cw, kind, opts, delayMs)
}
