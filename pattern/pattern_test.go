package pattern_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowr111/easyblink/colorway"
	"github.com/rowr111/easyblink/config"
	"github.com/rowr111/easyblink/pattern"
	"github.com/rowr111/easyblink/pixel"
)

var teal = colorway.Solid{Color: colorway.RGB{R: 0, G: 128, B: 128}}

func lit(buf *pixel.Buffer) []int {
	var out []int
	for i := 0; i < buf.Len(); i++ {
		p := buf.At(i)
		if p.Brightness > 0 && (p.R != 0 || p.G != 0 || p.B != 0) {
			out = append(out, i)
		}
	}
	return out
}

func TestChaseWindowProperty(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 30} {
		for _, width := range []int{1, 3, 40} {
			p, err := pattern.New(pattern.Chase, n, pattern.Options{ChaseWidth: width}, nil)
			assert.NoError(t, err)
			buf := pixel.NewBuffer(n)

			for frame := 0; frame < 3*n; frame++ {
				phase := p.Phase()
				p.Advance(buf, teal)

				want := width
				if want > n {
					want = n
				}
				on := lit(buf)
				assert.Len(t, on, want, "n=%d width=%d phase=%d", n, width, phase)
				assert.Contains(t, on, int(phase%uint64(n)), "window start n=%d width=%d", n, width)
			}
		}
	}
}

func TestChaseScenarioThreePixels(t *testing.T) {
	p, err := pattern.New(pattern.Chase, 3, pattern.Options{ChaseWidth: 1}, nil)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(3)

	p.Advance(buf, teal)
	assert.Equal(t, []int{0}, lit(buf), "frame 0 lights index 0 only")

	p.Advance(buf, teal)
	assert.Equal(t, []int{1}, lit(buf), "frame 1 lights index 1 only")

	p.Advance(buf, teal)
	p.Advance(buf, teal)
	assert.Equal(t, []int{0}, lit(buf), "phase 3 wraps back to index 0")
}

func TestTheaterChasePeriodThree(t *testing.T) {
	n := 10
	p, err := pattern.New(pattern.TheaterChase, n, pattern.Options{}, nil)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(n)

	p.Advance(buf, teal)
	first := lit(buf)
	for _, i := range first {
		assert.Equal(t, 0, i%3)
	}

	p.Advance(buf, teal)
	assert.NotEqual(t, first, lit(buf))
	p.Advance(buf, teal)
	p.Advance(buf, teal)
	assert.Equal(t, first, lit(buf), "three more advances return to the initial lit set")
}

func TestPulseBrightnessBounds(t *testing.T) {
	for _, period := range []int{1, 2, 3, 100} {
		p, err := pattern.New(pattern.Pulse, 5, pattern.Options{PulsePeriod: period}, nil)
		assert.NoError(t, err)
		buf := pixel.NewBuffer(5)
		for frame := 0; frame < 3*period+2; frame++ {
			p.Advance(buf, teal)
			for i := 0; i < buf.Len(); i++ {
				b := buf.At(i).Brightness
				assert.GreaterOrEqual(t, b, float32(0), "period=%d frame=%d", period, frame)
				assert.LessOrEqual(t, b, float32(1), "period=%d frame=%d", period, frame)
			}
		}
	}
}

func TestPulseKeepsChannelRatio(t *testing.T) {
	cw := colorway.Solid{Color: colorway.RGB{R: 10, G: 20, B: 30}}
	p, err := pattern.New(pattern.Pulse, 5, pattern.Options{PulsePeriod: 40}, nil)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(5)

	for frame := 0; frame < 100; frame++ {
		p.Advance(buf, cw)
		for i := 0; i < buf.Len(); i++ {
			px := buf.At(i)
			assert.Equal(t, colorway.RGB{R: 10, G: 20, B: 30}, colorway.RGB{R: px.R, G: px.G, B: px.B},
				"RGB ratio must not vary, only brightness")
		}
	}
}

func TestPulseBrightnessVaries(t *testing.T) {
	p, err := pattern.New(pattern.Pulse, 3, pattern.Options{PulsePeriod: 10}, nil)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(3)

	seen := map[float32]bool{}
	for frame := 0; frame < 10; frame++ {
		p.Advance(buf, teal)
		seen[buf.At(0).Brightness] = true
	}
	assert.Greater(t, len(seen), 1, "brightness should breathe over a period")
}

func TestTwinkleDecaysAndStaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p, err := pattern.New(pattern.Twinkle, 50, pattern.Options{TwinkleChance: 0.1}, rng)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(50)

	anyLit := false
	for frame := 0; frame < 200; frame++ {
		p.Advance(buf, teal)
		for i := 0; i < buf.Len(); i++ {
			b := buf.At(i).Brightness
			assert.GreaterOrEqual(t, b, float32(0))
			assert.LessOrEqual(t, b, float32(1))
			if b > 0 {
				anyLit = true
			}
		}
	}
	assert.True(t, anyLit, "some pixels should spark over 200 frames")
}

func TestTwinkleDeterministicWithSeededRand(t *testing.T) {
	run := func() []pixel.Pixel {
		rng := rand.New(rand.NewSource(7))
		p, err := pattern.New(pattern.Twinkle, 20, pattern.Options{TwinkleChance: 0.1}, rng)
		assert.NoError(t, err)
		buf := pixel.NewBuffer(20)
		for frame := 0; frame < 30; frame++ {
			p.Advance(buf, teal)
		}
		out := make([]pixel.Pixel, buf.Len())
		copy(out, buf.Pixels())
		return out
	}
	assert.Equal(t, run(), run())
}

func TestSparkleDecaysExponentially(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p, err := pattern.New(pattern.Sparkle, 40, pattern.Options{SparkleDecay: 0.75}, rng)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(40)

	for frame := 0; frame < 100; frame++ {
		p.Advance(buf, teal)
		for i := 0; i < buf.Len(); i++ {
			b := buf.At(i).Brightness
			assert.GreaterOrEqual(t, b, float32(0))
			assert.LessOrEqual(t, b, float32(1))
		}
	}
}

func TestKnightRiderBounces(t *testing.T) {
	n := 8
	p, err := pattern.New(pattern.KnightRider, n, pattern.Options{TailLength: 3}, nil)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(n)

	heads := make([]int, 0, 2*n)
	for frame := 0; frame < 2*n; frame++ {
		p.Advance(buf, teal)
		head := -1
		for i := 0; i < n; i++ {
			if buf.At(i).Brightness == 1 {
				head = i
			}
		}
		assert.NotEqual(t, -1, head, "frame %d has a full-brightness head", frame)
		heads = append(heads, head)
	}
	// forward sweep then backward sweep
	assert.Equal(t, 0, heads[0])
	assert.Equal(t, n-1, heads[n-1])
	assert.Equal(t, 0, heads[2*n-1])
}

func TestKnightRiderSinglePixel(t *testing.T) {
	p, err := pattern.New(pattern.KnightRider, 1, pattern.Options{TailLength: 1}, nil)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(1)
	for frame := 0; frame < 5; frame++ {
		assert.NotPanics(t, func() { p.Advance(buf, teal) })
		assert.Equal(t, float32(1), buf.At(0).Brightness)
	}
}

func TestPhaseAdvancesOncePerCall(t *testing.T) {
	p, err := pattern.New(pattern.Chase, 4, pattern.Options{ChaseWidth: 2}, nil)
	assert.NoError(t, err)
	buf := pixel.NewBuffer(4)

	assert.Equal(t, uint64(0), p.Phase())
	p.Advance(buf, teal)
	assert.Equal(t, uint64(1), p.Phase())
	p.Advance(buf, teal)
	assert.Equal(t, uint64(2), p.Phase())
}

func TestNewRejectsBadConfig(t *testing.T) {
	var cfgErr *config.Error

	_, err := pattern.New(pattern.Chase, 0, pattern.DefaultOptions(1), nil)
	assert.ErrorAs(t, err, &cfgErr, "zero-length strip")

	_, err = pattern.New(pattern.Pulse, 5, pattern.Options{PulsePeriod: 0}, nil)
	assert.ErrorAs(t, err, &cfgErr, "zero pulse period")

	_, err = pattern.New(pattern.Chase, 5, pattern.Options{ChaseWidth: 0}, nil)
	assert.ErrorAs(t, err, &cfgErr, "zero chase width")

	_, err = pattern.New(pattern.Twinkle, 5, pattern.Options{TwinkleChance: 0}, nil)
	assert.ErrorAs(t, err, &cfgErr, "zero twinkle chance")

	_, err = pattern.New(pattern.Sparkle, 5, pattern.Options{SparkleDecay: 1}, nil)
	assert.ErrorAs(t, err, &cfgErr, "sparkle decay of 1 never fades")

	_, err = pattern.New(pattern.KnightRider, 5, pattern.Options{TailLength: 0}, nil)
	assert.ErrorAs(t, err, &cfgErr, "zero tail length")
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []pattern.Kind{
		pattern.Chase, pattern.Pulse, pattern.TheaterChase,
		pattern.Twinkle, pattern.Sparkle, pattern.KnightRider,
	} {
		got, err := pattern.ParseKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := pattern.ParseKind("disco")
	assert.Error(t, err)
}
