// Package config loads and saves easyblink run configuration and defines the
// error type for invalid configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Error reports configuration that cannot produce a working controller:
// a zero-length strip, unordered gradient stops, a zero pulse period and so on.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "config: " + e.Reason
}

// Errorf builds an Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Stop is one gradient stop: a position in [0,1] and a hex color like "#ff6600".
type Stop struct {
	Pos   float64 `yaml:"pos"`
	Color string  `yaml:"color"`
}

// Colorway selects a palette by name plus its parameters. Name is one of
// "rainbow", "solid", "gradient", "fire" or "palette".
type Colorway struct {
	Name   string   `yaml:"name"`
	Color  string   `yaml:"color,omitempty"`  // solid
	Stops  []Stop   `yaml:"stops,omitempty"`  // gradient
	Colors []string `yaml:"colors,omitempty"` // palette
	Seed   uint64   `yaml:"seed,omitempty"`   // fire, palette
}

// Pattern selects an animation by kind plus its parameters. Zero-valued
// parameters fall back to strip-length defaults.
type Pattern struct {
	Kind          string  `yaml:"kind"`
	ChaseWidth    int     `yaml:"chase_width,omitempty"`
	PulsePeriod   int     `yaml:"pulse_period,omitempty"`
	TwinkleChance float64 `yaml:"twinkle_chance,omitempty"`
	SparkleDecay  float64 `yaml:"sparkle_decay,omitempty"`
	TailLength    int     `yaml:"tail_length,omitempty"`
}

type SPI struct {
	Dev       string `yaml:"dev,omitempty"`       // e.g. /dev/spidev0.0; empty = first port
	Intensity int    `yaml:"intensity,omitempty"` // 1..255 global APA102 intensity
}

type Config struct {
	Pixels  int    `yaml:"pixels"`
	DelayMs int    `yaml:"delay_ms"`
	Driver  string `yaml:"driver,omitempty"` // "spi" | "term" | "sim"
	Preset  string `yaml:"preset,omitempty"` // overrides colorway+pattern when set

	Colorway Colorway `yaml:"colorway"`
	Pattern  Pattern  `yaml:"pattern"`
	SPI      SPI      `yaml:"spi,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
