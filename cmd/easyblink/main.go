package main

import (
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rowr111/easyblink"
	"github.com/rowr111/easyblink/colorway"
	"github.com/rowr111/easyblink/config"
	"github.com/rowr111/easyblink/pattern"
	"github.com/rowr111/easyblink/transport"
	"github.com/rowr111/easyblink/transport/fake"
)

func main() {
	var (
		pixels       = flag.Int("pixels", 120, "number of LEDs in the strip")
		colorwayName = flag.String("colorway", "rainbow", "colorway: rainbow | solid | gradient | fire | palette, or a named color like red")
		colorHex     = flag.String("color", "#ff0000", "solid colorway color")
		stops        = flag.String("stops", "", `gradient stops, e.g. "0=#300000,0.55=#ff6600,1=#ffe6b3"`)
		colors       = flag.String("colors", "", "palette colors, comma-separated hex")
		seed         = flag.Uint64("seed", 0, "seed for fire jitter and twinkle/sparkle randomness (0 = time-seeded)")
		patternName  = flag.String("pattern", "chase", "pattern: chase | pulse | theater-chase | twinkle | sparkle | knight-rider")
		presetName   = flag.String("preset", "", "preset: fireplace | christmas-traditional (overrides colorway/pattern)")
		delayMs      = flag.Int("delay-ms", 20, "frame delay in milliseconds; 0 runs flat out")
		driver       = flag.String("driver", "spi", "output: spi | term | sim")
		spiDev       = flag.String("spi-dev", "", "SPI port name or path; empty = first available")
		intensity    = flag.Int("intensity", 255, "global APA102 intensity 1..255")
		configPath   = flag.String("config", "", "path to config.yaml (overrides flags)")
		debug        = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Config{
		Pixels:  *pixels,
		DelayMs: *delayMs,
		Driver:  *driver,
		Preset:  *presetName,
		Colorway: config.Colorway{
			Name:   *colorwayName,
			Color:  *colorHex,
			Stops:  parseStopsFlag(*stops),
			Colors: splitNonEmpty(*colors),
			Seed:   *seed,
		},
		Pattern: config.Pattern{Kind: *patternName},
		SPI:     config.SPI{Dev: *spiDev, Intensity: *intensity},
	}
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		merge(&cfg, fileCfg)
	}

	ctrl, err := buildController(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("controller construction failed (is SPI enabled? try -driver term)")
	}
	defer ctrl.Close()
	if cfg.Colorway.Seed != 0 {
		ctrl.SetRand(rand.New(rand.NewSource(int64(cfg.Colorway.Seed))))
	}

	run := frameFunc(ctrl, &cfg)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	log.Info().
		Int("pixels", cfg.Pixels).
		Str("driver", cfg.Driver).
		Int("delay_ms", cfg.DelayMs).
		Msg("animating; ctrl-c to stop")

	for {
		select {
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			return
		default:
		}
		if err := run(); err != nil {
			var werr *transport.WriteError
			if errors.As(err, &werr) {
				log.Warn().Err(err).Msg("frame dropped")
				continue
			}
			log.Fatal().Err(err).Msg("animation failed")
		}
	}
}

// frameFunc resolves the configured preset or colorway+pattern into a
// one-frame closure for the main loop.
func frameFunc(ctrl *easyblink.Controller, cfg *config.Config) func() error {
	delay := uint32(cfg.DelayMs)

	if cfg.Preset != "" {
		ps, err := easyblink.ParsePreset(cfg.Preset)
		if err != nil {
			log.Fatal().Err(err).Msg("bad preset")
		}
		return func() error { return ctrl.ExecutePreset(ps, delay) }
	}

	cw, err := buildColorway(&cfg.Colorway)
	if err != nil {
		log.Fatal().Err(err).Msg("bad colorway")
	}
	kind, err := pattern.ParseKind(cfg.Pattern.Kind)
	if err != nil {
		log.Fatal().Err(err).Msg("bad pattern")
	}
	opts := patternOptions(&cfg.Pattern, cfg.Pixels)
	return func() error { return ctrl.ExecutePatternWith(cw, kind, opts, delay) }
}

func buildController(cfg *config.Config) (*easyblink.Controller, error) {
	switch cfg.Driver {
	case "spi", "":
		tr, err := transport.Open(cfg.Pixels, cfg.SPI.Dev, uint8(cfg.SPI.Intensity))
		if err != nil {
			return nil, err
		}
		return easyblink.NewWithTransport(cfg.Pixels, tr)
	case "term":
		return easyblink.NewWithTransport(cfg.Pixels, transport.NewScreen(nil))
	case "sim":
		return easyblink.NewWithTransport(cfg.Pixels, &fake.Transport{})
	default:
		return nil, config.Errorf("unknown driver %q", cfg.Driver)
	}
}

// named solid colors at the library's handpicked hues.
var namedColorways = map[string]colorway.Colorway{
	"red":    colorway.Red,
	"orange": colorway.Orange,
	"yellow": colorway.Yellow,
	"green":  colorway.Green,
	"blue":   colorway.Blue,
	"purple": colorway.Purple,
	"white":  colorway.White,
}

func buildColorway(cc *config.Colorway) (colorway.Colorway, error) {
	switch cc.Name {
	case "rainbow":
		return colorway.Rainbow{}, nil
	case "fire":
		return colorway.Fire{Seed: cc.Seed}, nil
	case "solid":
		c, err := colorway.ParseHex(cc.Color)
		if err != nil {
			return nil, err
		}
		return colorway.Solid{Color: c}, nil
	case "gradient":
		gstops := make([]colorway.Stop, 0, len(cc.Stops))
		for _, s := range cc.Stops {
			c, err := colorway.ParseHex(s.Color)
			if err != nil {
				return nil, err
			}
			gstops = append(gstops, colorway.Stop{Pos: s.Pos, Color: c})
		}
		return colorway.NewGradient(gstops)
	case "palette":
		pcolors := make([]colorway.RGB, 0, len(cc.Colors))
		for _, hex := range cc.Colors {
			c, err := colorway.ParseHex(hex)
			if err != nil {
				return nil, err
			}
			pcolors = append(pcolors, c)
		}
		return colorway.NewPalette(pcolors, cc.Seed)
	default:
		if cw, ok := namedColorways[cc.Name]; ok {
			return cw, nil
		}
		return nil, config.Errorf("unknown colorway %q", cc.Name)
	}
}

func patternOptions(pc *config.Pattern, numPixels int) pattern.Options {
	opts := pattern.DefaultOptions(numPixels)
	if pc.ChaseWidth > 0 {
		opts.ChaseWidth = pc.ChaseWidth
	}
	if pc.PulsePeriod > 0 {
		opts.PulsePeriod = pc.PulsePeriod
	}
	if pc.TwinkleChance > 0 {
		opts.TwinkleChance = pc.TwinkleChance
	}
	if pc.SparkleDecay > 0 {
		opts.SparkleDecay = pc.SparkleDecay
	}
	if pc.TailLength > 0 {
		opts.TailLength = pc.TailLength
	}
	return opts
}

// parseStopsFlag turns "0=#300000,1=#ffe6b3" into config stops. Bad entries
// surface later as colorway construction errors.
func parseStopsFlag(s string) []config.Stop {
	var out []config.Stop
	for _, part := range splitNonEmpty(s) {
		pos, color, found := strings.Cut(part, "=")
		if !found {
			out = append(out, config.Stop{Pos: -1, Color: part})
			continue
		}
		p, err := strconv.ParseFloat(pos, 64)
		if err != nil {
			p = -1
		}
		out = append(out, config.Stop{Pos: p, Color: color})
	}
	return out
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// merge overlays non-zero fields of file onto dst; the config file wins over
// flag defaults, matching how the hardware install is usually driven.
func merge(dst, file *config.Config) {
	if file.Pixels > 0 {
		dst.Pixels = file.Pixels
	}
	if file.DelayMs > 0 {
		dst.DelayMs = file.DelayMs
	}
	if file.Driver != "" {
		dst.Driver = file.Driver
	}
	if file.Preset != "" {
		dst.Preset = file.Preset
	}
	if file.Colorway.Name != "" {
		dst.Colorway = file.Colorway
	}
	if file.Pattern.Kind != "" {
		dst.Pattern = file.Pattern
	}
	if file.SPI.Dev != "" {
		dst.SPI.Dev = file.SPI.Dev
	}
	if file.SPI.Intensity > 0 {
		dst.SPI.Intensity = file.SPI.Intensity
	}
}
