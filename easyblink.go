// Package easyblink animates color patterns on a strip of APA102 addressable
// LEDs driven from a single-board computer. A Controller owns the pixel
// buffer and the output transport; callers pick a colorway and a pattern and
// invoke ExecutePattern in their own loop, one frame per call:
//
//	ctrl, err := easyblink.New(120)
//	if err != nil {
//		log.Fatal().Err(err).Msg("no led strip")
//	}
//	defer ctrl.Close()
//	for {
//		if err := ctrl.ExecutePattern(colorway.Rainbow{}, pattern.Chase, 20); err != nil {
//			log.Warn().Err(err).Msg("frame dropped")
//		}
//	}
package easyblink

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rowr111/easyblink/colorway"
	"github.com/rowr111/easyblink/config"
	"github.com/rowr111/easyblink/pattern"
	"github.com/rowr111/easyblink/pixel"
	"github.com/rowr111/easyblink/transport"
)

// Controller orchestrates frames: advance the pattern, flush the buffer to
// the transport, sleep the frame delay. It owns the transport exclusively and
// the buffer's length is fixed for the controller's lifetime.
type Controller struct {
	buf   *pixel.Buffer
	tr    transport.Transport
	pat   *pattern.Pattern
	opts  pattern.Options
	rng   *rand.Rand
	sleep func(time.Duration)
}

// New builds a controller for a strip of numPixels LEDs on the
// platform-default SPI pins. The pixel count is validated before any
// hardware is touched.
func New(numPixels int) (*Controller, error) {
	if numPixels < 1 {
		return nil, config.Errorf("pixel count must be at least 1, got %d", numPixels)
	}
	tr, err := transport.Open(numPixels, "", 0)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(numPixels, tr)
}

// NewWithTransport builds a controller on a caller-supplied sink: a terminal
// preview, a recording fake, or hardware opened with non-default settings.
func NewWithTransport(numPixels int, tr transport.Transport) (*Controller, error) {
	if numPixels < 1 {
		return nil, config.Errorf("pixel count must be at least 1, got %d", numPixels)
	}
	if tr == nil {
		return nil, config.Errorf("transport must not be nil")
	}
	log.Info().Int("pixels", numPixels).Msg("controller ready")
	return &Controller{
		buf:   pixel.NewBuffer(numPixels),
		tr:    tr,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
	}, nil
}

// NumPixels is the fixed strip length.
func (c *Controller) NumPixels() int {
	return c.buf.Len()
}

// SetRand replaces the generator driving Twinkle and Sparkle randomness.
// Seed it for reproducible runs. Takes effect on the next pattern change.
func (c *Controller) SetRand(rng *rand.Rand) {
	if rng != nil {
		c.rng = rng
	}
}

// ExecutePattern runs one frame of the given pattern kind with strip-length
// default parameters: advance once, flush, sleep delayMs, return. Call it in
// a loop to animate; the colorway and kind may change between calls without
// losing the hardware binding.
func (c *Controller) ExecutePattern(cw colorway.Colorway, kind pattern.Kind, delayMs uint32) error {
	return c.ExecutePatternWith(cw, kind, pattern.DefaultOptions(c.buf.Len()), delayMs)
}

// ExecutePatternWith is ExecutePattern with explicit pattern parameters.
// A transport write failure is returned after the delay; the buffer and the
// already-advanced phase stay valid, so the caller may simply try again.
func (c *Controller) ExecutePatternWith(cw colorway.Colorway, kind pattern.Kind, opts pattern.Options, delayMs uint32) error {
	if cw == nil {
		return config.Errorf("colorway must not be nil")
	}
	if c.pat == nil || c.pat.Kind() != kind || c.opts != opts {
		p, err := pattern.New(kind, c.buf.Len(), opts, c.rng)
		if err != nil {
			return err
		}
		c.pat = p
		c.opts = opts
		log.Debug().Stringer("pattern", kind).Msg("pattern reset")
	}
	c.pat.Advance(c.buf, cw)
	err := c.tr.WriteFrame(c.buf.Pixels())
	c.sleep(time.Duration(delayMs) * time.Millisecond)
	return err
}

// Close releases the transport. The strip keeps showing the last frame.
func (c *Controller) Close() error {
	return c.tr.Close()
}
