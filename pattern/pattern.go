// Package pattern advances LED animation state one frame at a time. A Pattern
// owns the phase counter and any per-pixel auxiliary state; colors come from
// the colorway it is handed on each advance.
package pattern

import (
	"math/rand"
	"time"

	"github.com/rowr111/easyblink/colorway"
	"github.com/rowr111/easyblink/config"
	"github.com/rowr111/easyblink/pixel"
)

// Kind selects the animation rule.
type Kind int

const (
	// Chase lights a wrapping window of consecutive pixels that walks the strip.
	Chase Kind = iota
	// Pulse breathes the whole strip with a triangle brightness wave.
	Pulse
	// TheaterChase lights every third pixel, stepping the offset each frame.
	TheaterChase
	// Twinkle randomly brightens pixels that then fade linearly to off.
	Twinkle
	// Sparkle randomly brightens pixels that decay exponentially, fireplace-style.
	Sparkle
	// KnightRider bounces a bright head with a fading tail between strip ends.
	KnightRider
)

var kindNames = map[Kind]string{
	Chase:        "chase",
	Pulse:        "pulse",
	TheaterChase: "theater-chase",
	Twinkle:      "twinkle",
	Sparkle:      "sparkle",
	KnightRider:  "knight-rider",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a name like "chase" back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, config.Errorf("unknown pattern kind %q", s)
}

// Options carries the kind-specific parameters. Every field used by the
// selected kind must be positive; DefaultOptions fills sensible values for a
// given strip length.
type Options struct {
	ChaseWidth    int     // Chase: lit window width in pixels
	PulsePeriod   int     // Pulse: frames per full breath
	TwinkleChance float64 // Twinkle: per-pixel spark probability per frame
	SparkleDecay  float64 // Sparkle: per-frame brightness multiplier in (0,1)
	TailLength    int     // KnightRider: tail falloff length in pixels
}

func DefaultOptions(numPixels int) Options {
	width := numPixels / 4
	if width < 1 {
		width = 1
	}
	tail := numPixels * 2 / 5
	if tail < 1 {
		tail = 1
	}
	return Options{
		ChaseWidth:    width,
		PulsePeriod:   100,
		TwinkleChance: 0.02,
		SparkleDecay:  0.75,
		TailLength:    tail,
	}
}

// pulseFloor keeps a breathing strip from going fully dark mid-cycle.
const pulseFloor = 0.15

// twinkleStep is the linear brightness lost per frame by a twinkling pixel.
const twinkleStep = 1.0 / 12.0

// Pattern is a stateful animation descriptor. The phase counter and, for
// Twinkle/Sparkle, the per-pixel decay array are the only state carried
// between frames; everything else is recomputed on each advance.
type Pattern struct {
	kind  Kind
	phase uint64
	opts  Options
	decay []float32
	rng   *rand.Rand
}

// New builds a pattern for a strip of numPixels. The rng drives Twinkle and
// Sparkle randomness; pass a seeded generator for deterministic runs, or nil
// for a time-seeded one.
func New(kind Kind, numPixels int, opts Options, rng *rand.Rand) (*Pattern, error) {
	if numPixels < 1 {
		return nil, config.Errorf("pattern needs at least one pixel, got %d", numPixels)
	}
	switch kind {
	case Chase:
		if opts.ChaseWidth < 1 {
			return nil, config.Errorf("chase width must be at least 1, got %d", opts.ChaseWidth)
		}
	case Pulse:
		if opts.PulsePeriod < 1 {
			return nil, config.Errorf("pulse period must be at least 1, got %d", opts.PulsePeriod)
		}
	case TheaterChase:
	case Twinkle:
		if opts.TwinkleChance <= 0 || opts.TwinkleChance > 1 {
			return nil, config.Errorf("twinkle chance must be in (0,1], got %g", opts.TwinkleChance)
		}
	case Sparkle:
		if opts.SparkleDecay <= 0 || opts.SparkleDecay >= 1 {
			return nil, config.Errorf("sparkle decay must be in (0,1), got %g", opts.SparkleDecay)
		}
	case KnightRider:
		if opts.TailLength < 1 {
			return nil, config.Errorf("tail length must be at least 1, got %d", opts.TailLength)
		}
	default:
		return nil, config.Errorf("unknown pattern kind %d", kind)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p := &Pattern{kind: kind, opts: opts, rng: rng}
	if kind == Twinkle || kind == Sparkle {
		p.decay = make([]float32, numPixels)
	}
	return p, nil
}

func (p *Pattern) Kind() Kind {
	return p.kind
}

// Phase is the tick counter: the number of completed advances.
func (p *Pattern) Phase() uint64 {
	return p.phase
}

// Advance renders one frame at the current phase into buf, then increments
// the phase. The whole buffer is overwritten on every call.
func (p *Pattern) Advance(buf *pixel.Buffer, cw colorway.Colorway) {
	switch p.kind {
	case Chase:
		p.chase(buf, cw)
	case Pulse:
		p.pulse(buf, cw)
	case TheaterChase:
		p.theaterChase(buf, cw)
	case Twinkle:
		p.twinkle(buf, cw)
	case Sparkle:
		p.sparkle(buf, cw)
	case KnightRider:
		p.knightRider(buf, cw)
	}
	p.phase++
}

func (p *Pattern) chase(buf *pixel.Buffer, cw colorway.Colorway) {
	n := buf.Len()
	width := p.opts.ChaseWidth
	if width > n {
		width = n
	}
	start := int(p.phase % uint64(n))
	buf.SetAll(pixel.Black)
	for k := 0; k < width; k++ {
		i := (start + k) % n
		c := cw.ColorAt(i, n, p.phase)
		buf.Set(i, pixel.Pixel{R: c.R, G: c.G, B: c.B, Brightness: 1})
	}
}

func (p *Pattern) pulse(buf *pixel.Buffer, cw colorway.Colorway) {
	n := buf.Len()
	period := uint64(p.opts.PulsePeriod)
	step := float64(p.phase % period)
	half := float64(period) / 2

	// Triangle wave from the floor up to full and back down.
	var v float64
	if step <= half {
		v = pulseFloor + (1-pulseFloor)*(step/half)
	} else {
		v = 1 - (1-pulseFloor)*((step-half)/half)
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	for i := 0; i < n; i++ {
		c := cw.ColorAt(i, n, p.phase)
		buf.Set(i, pixel.Pixel{R: c.R, G: c.G, B: c.B, Brightness: float32(v)})
	}
}

func (p *Pattern) theaterChase(buf *pixel.Buffer, cw colorway.Colorway) {
	n := buf.Len()
	off := int(p.phase % 3)
	for i := 0; i < n; i++ {
		if i%3 == off {
			c := cw.ColorAt(i, n, p.phase)
			buf.Set(i, pixel.Pixel{R: c.R, G: c.G, B: c.B, Brightness: 1})
		} else {
			buf.Set(i, pixel.Black)
		}
	}
}

func (p *Pattern) twinkle(buf *pixel.Buffer, cw colorway.Colorway) {
	n := buf.Len()
	for i := 0; i < n; i++ {
		d := p.decay[i] - twinkleStep
		if d < 0 {
			d = 0
		}
		if p.rng.Float64() < p.opts.TwinkleChance {
			d = 1
		}
		p.decay[i] = d
		if d == 0 {
			buf.Set(i, pixel.Black)
			continue
		}
		c := cw.ColorAt(i, n, p.phase)
		buf.Set(i, pixel.Pixel{R: c.R, G: c.G, B: c.B, Brightness: d})
	}
}

func (p *Pattern) sparkle(buf *pixel.Buffer, cw colorway.Colorway) {
	n := buf.Len()
	for i := range p.decay {
		p.decay[i] *= float32(p.opts.SparkleDecay)
	}
	maxSparks := n / 10
	if maxSparks < 1 {
		maxSparks = 1
	}
	sparks := 1 + p.rng.Intn(maxSparks)
	for s := 0; s < sparks; s++ {
		i := p.rng.Intn(n)
		p.decay[i] = float32(0.5 + 0.5*p.rng.Float64())
	}
	for i := 0; i < n; i++ {
		d := p.decay[i]
		if d == 0 {
			buf.Set(i, pixel.Black)
			continue
		}
		c := cw.ColorAt(i, n, p.phase)
		buf.Set(i, pixel.Pixel{R: c.R, G: c.G, B: c.B, Brightness: d})
	}
}

func (p *Pattern) knightRider(buf *pixel.Buffer, cw colorway.Colorway) {
	n := buf.Len()
	span := 2 * n
	step := int(p.phase % uint64(span))
	pos := step
	if step >= n {
		pos = span - 1 - step
	}
	tail := p.opts.TailLength
	for i := 0; i < n; i++ {
		dist := pos - i
		if dist < 0 {
			dist = -dist
		}
		if dist >= tail {
			buf.Set(i, pixel.Black)
			continue
		}
		bright := 1 - float32(dist)/float32(tail)
		c := cw.ColorAt(i, n, p.phase)
		buf.Set(i, pixel.Pixel{R: c.R, G: c.G, B: c.B, Brightness: bright})
	}
}
