// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tickphys/physics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Bounds    BoundsConfig    `yaml:"bounds"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
	Movement  MovementConfig  `yaml:"movement"`
	Contact   ContactConfig   `yaml:"contact"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds the fixed tick parameters.
type PhysicsConfig struct {
	DT               float64 `yaml:"dt"`                  // seconds per tick
	Substeps         int     `yaml:"substeps"`            // integrate+resolve passes per tick
	SafetyMargin     float64 `yaml:"safety_margin"`       // velocity margin factor k (> 1)
	MaxTicksPerFrame int     `yaml:"max_ticks_per_frame"` // accumulator cap in windowed mode
}

// BoundsConfig describes the optional arena rectangle.
type BoundsConfig struct {
	Enabled bool    `yaml:"enabled"`
	XMin    float64 `yaml:"x_min"`
	XMax    float64 `yaml:"x_max"`
	YMin    float64 `yaml:"y_min"`
	YMax    float64 `yaml:"y_max"`
}

// ScenarioConfig controls the initial population.
type ScenarioConfig struct {
	Bodies           int     `yaml:"bodies"`
	RadiusMin        float64 `yaml:"radius_min"`
	RadiusMax        float64 `yaml:"radius_max"`
	FloatingFraction float64 `yaml:"floating_fraction"` // share of bodies spawned floating
	SpawnExtent      float64 `yaml:"spawn_extent"`      // half-width of the spawn square
	Health           float64 `yaml:"health"`
}

// MovementConfig holds wander behaviour parameters.
type MovementConfig struct {
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`
	TurnRate float64 `yaml:"turn_rate"` // max heading change, radians per second
}

// ContactConfig holds damage-on-contact parameters.
type ContactConfig struct {
	Enabled      bool    `yaml:"enabled"`
	DamagePerHit float64 `yaml:"damage_per_hit"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // seconds of sim time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // ticks in the perf rolling window
	Trajectory          bool    `yaml:"trajectory"`            // write per-tick positions to CSV
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Settings  physics.Settings
	Bounds    *physics.MapBounds // nil when bounds are disabled
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays YAML data onto cfg. Only fields present in data are overwritten.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Finalize validates the config and computes derived values.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid config")

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := c.physicsSettings().Validate(); err != nil {
		return fmt.Errorf("physics: %w: %w", ErrInvalid, err)
	}
	if c.Bounds.Enabled {
		if err := c.mapBounds().Validate(); err != nil {
			return fmt.Errorf("bounds: %w: %w", ErrInvalid, err)
		}
	}
	if c.Scenario.Bodies < 0 {
		return fmt.Errorf("scenario.bodies %d: %w", c.Scenario.Bodies, ErrInvalid)
	}
	if c.Scenario.RadiusMin < 0 || c.Scenario.RadiusMax < c.Scenario.RadiusMin {
		return fmt.Errorf("scenario radius range [%v,%v]: %w", c.Scenario.RadiusMin, c.Scenario.RadiusMax, ErrInvalid)
	}
	if c.Scenario.FloatingFraction < 0 || c.Scenario.FloatingFraction > 1 {
		return fmt.Errorf("scenario.floating_fraction %v: %w", c.Scenario.FloatingFraction, ErrInvalid)
	}
	if c.Movement.SpeedMax < c.Movement.SpeedMin {
		return fmt.Errorf("movement speed range [%v,%v]: %w", c.Movement.SpeedMin, c.Movement.SpeedMax, ErrInvalid)
	}
	return nil
}

func (c *Config) physicsSettings() physics.Settings {
	return physics.Settings{
		DT:           c.Physics.DT,
		Substeps:     c.Physics.Substeps,
		SafetyMargin: c.Physics.SafetyMargin,
	}
}

func (c *Config) mapBounds() physics.MapBounds {
	return physics.MapBounds{
		XMin: c.Bounds.XMin,
		XMax: c.Bounds.XMax,
		YMin: c.Bounds.YMin,
		YMax: c.Bounds.YMax,
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Settings = c.physicsSettings()
	c.Derived.Bounds = nil
	if c.Bounds.Enabled {
		b := c.mapBounds()
		c.Derived.Bounds = &b
	}
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Physics.MaxTicksPerFrame < 1 {
		c.Physics.MaxTicksPerFrame = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
