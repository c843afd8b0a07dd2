package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	VisualRingSize  = 8192
	SmoothingFactor = 0.8

	// Audio strip
	VisualizerBins    = 128
	VisualizerHeight  = 50
	VisualizerOpacity = 0.5

	// Overlay layers
	ParticleOpacity = 0.3
	ShapeOpacity    = 0.1
)

// Range is an inclusive-exclusive interval [Min, Max) used for random draws.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// ParticleConfig holds the particle overlay tunables.
type ParticleConfig struct {
	Count        int     `yaml:"count"`
	LinkDistance float64 `yaml:"linkDistance"`
	LinkAlpha    float64 `yaml:"linkAlpha"`
	LinkWidth    float64 `yaml:"linkWidth"`
	Radius       Range   `yaml:"radius"`
	Speed        Range   `yaml:"speed"`

	// Red and green channels are drawn from Tint; blue is fixed at 255.
	Tint    Range   `yaml:"tint"`
	Alpha   float64 `yaml:"alpha"`
	Opacity float64 `yaml:"opacity"`
	UseGrid bool    `yaml:"useGrid"`

	// ResizeThrottleMs drops resize events closer together than this. 0 disables throttling.
	ResizeThrottleMs int `yaml:"resizeThrottleMs"`
}

// CursorConfig controls the custom cursor and its follower ring.
type CursorConfig struct {
	Enabled      bool    `yaml:"enabled"`
	DotSize      float64 `yaml:"dotSize"`
	RingSize     float64 `yaml:"ringSize"`
	RingHover    float64 `yaml:"ringHover"`
	FollowFactor float64 `yaml:"followFactor"`
}

// ShapeConfig controls the morphing background blobs.
type ShapeConfig struct {
	Count         int     `yaml:"count"`
	Size          Range   `yaml:"size"`
	MorphInterval float64 `yaml:"morphInterval"`
	Opacity       float64 `yaml:"opacity"`
}

// TypingConfig controls the per-rune delay of the typewriter reveal, in milliseconds.
type TypingConfig struct {
	Delay Range `yaml:"delay"`
}

// Config is the complete effects configuration. Zero values are never used
// directly; Default supplies every field and Load overlays a YAML file on it.
type Config struct {
	Seed         int64          `yaml:"seed"`
	Particles    ParticleConfig `yaml:"particles"`
	Cursor       CursorConfig   `yaml:"cursor"`
	Shapes       ShapeConfig    `yaml:"shapes"`
	Typing       TypingConfig   `yaml:"typing"`
	ParallaxHero float64        `yaml:"parallaxHero"`
	TiltDegrees  float64        `yaml:"tiltDegrees"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Particles: ParticleConfig{
			Count:        100,
			LinkDistance: 100,
			LinkAlpha:    0.2,
			LinkWidth:    0.5,
			Radius:       Range{Min: 0.5, Max: 2.5},
			Speed:        Range{Min: -0.25, Max: 0.25},
			Tint:         Range{Min: 155, Max: 255},
			Alpha:        0.7,
			Opacity:      ParticleOpacity,
		},
		Cursor: CursorConfig{
			Enabled:      true,
			DotSize:      20,
			RingSize:     40,
			RingHover:    60,
			FollowFactor: 0.1,
		},
		Shapes: ShapeConfig{
			Count:         5,
			Size:          Range{Min: 100, Max: 300},
			MorphInterval: 3,
			Opacity:       ShapeOpacity,
		},
		Typing:       TypingConfig{Delay: Range{Min: 50, Max: 100}},
		ParallaxHero: 0.3,
		TiltDegrees:  5,
	}
}

// Load reads a YAML file and overlays it on Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effects config: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML data on Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse effects config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid effects config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	p := c.Particles
	if p.Count < 0 {
		return fmt.Errorf("particles.count must not be negative, got %d", p.Count)
	}
	if p.LinkDistance <= 0 {
		return fmt.Errorf("particles.linkDistance must be positive, got %.2f", p.LinkDistance)
	}
	if p.LinkAlpha < 0 || p.LinkAlpha > 1 {
		return fmt.Errorf("particles.linkAlpha must be in [0,1], got %.2f", p.LinkAlpha)
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		return fmt.Errorf("particles.alpha must be in [0,1], got %.2f", p.Alpha)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("particles.opacity must be in [0,1], got %.2f", p.Opacity)
	}
	if p.ResizeThrottleMs < 0 {
		return fmt.Errorf("particles.resizeThrottleMs must not be negative, got %d", p.ResizeThrottleMs)
	}
	for name, r := range map[string]Range{
		"particles.radius": p.Radius,
		"particles.speed":  p.Speed,
		"particles.tint":   p.Tint,
		"shapes.size":      c.Shapes.Size,
		"typing.delay":     c.Typing.Delay,
	} {
		if r.Min > r.Max {
			return fmt.Errorf("%s range invalid: min(%.2f) > max(%.2f)", name, r.Min, r.Max)
		}
	}
	if p.Radius.Min < 0 {
		return fmt.Errorf("particles.radius.min must not be negative, got %.2f", p.Radius.Min)
	}
	if p.Tint.Min < 0 || p.Tint.Min >= 256 || p.Tint.Max > 256 {
		return fmt.Errorf("particles.tint must stay within [0,256), got [%.0f,%.0f)", p.Tint.Min, p.Tint.Max)
	}
	if c.Shapes.Count < 0 {
		return fmt.Errorf("shapes.count must not be negative, got %d", c.Shapes.Count)
	}
	if c.Shapes.MorphInterval <= 0 {
		return fmt.Errorf("shapes.morphInterval must be positive, got %.2f", c.Shapes.MorphInterval)
	}
	if c.Cursor.FollowFactor <= 0 || c.Cursor.FollowFactor > 1 {
		return fmt.Errorf("cursor.followFactor must be in (0,1], got %.2f", c.Cursor.FollowFactor)
	}
	return nil
}
