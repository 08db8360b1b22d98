// Package config provides configuration loading and access for the pasture.
package config

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all pasture configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Pasture   PastureConfig   `yaml:"pasture"`
	Sprite    SpriteConfig    `yaml:"sprite"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Behavior  BehaviorConfig  `yaml:"behavior"`
	Grass     GrassConfig     `yaml:"grass"`
	Stars     StarsConfig     `yaml:"stars"`
	Clock     ClockConfig     `yaml:"clock"`
	Notice    NoticeConfig    `yaml:"notice"`
	Minigame  MinigameConfig  `yaml:"minigame"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Range is a uniform random interval [Min, Min+Span).
type Range struct {
	Min  float64 `yaml:"min"`
	Span float64 `yaml:"span"`
}

// Draw samples the range.
func (r Range) Draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*r.Span
}

// Max returns the exclusive upper bound.
func (r Range) Max() float64 {
	return r.Min + r.Span
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	Scale     int `yaml:"scale"` // window pixels per canvas pixel
}

// PastureConfig holds population and layout parameters.
type PastureConfig struct {
	MaxGrazers     int     `yaml:"max_grazers"`
	InitialGrazers int     `yaml:"initial_grazers"`
	GroundFraction float64 `yaml:"ground_fraction"` // sky/ground split, fraction of canvas height
	Margin         float64 `yaml:"margin"`          // horizontal reflection margin in pixels
}

// SpriteConfig holds grazer sprite settings.
type SpriteConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Path   string  `yaml:"path"` // PNG override; empty = built-in sprite
}

// PhysicsConfig holds grazer physics parameters shared by day and night.
type PhysicsConfig struct {
	Gravity              float64 `yaml:"gravity"`
	BounceDamping        float64 `yaml:"bounce_damping"`         // fraction of landing speed reflected
	BounceStop           float64 `yaml:"bounce_stop"`            // below this |vy| the bounce ends
	GrazingGravityFactor float64 `yaml:"grazing_gravity_factor"` // gravity scale while settling to graze
	GroundTolerance      float64 `yaml:"ground_tolerance"`       // |y - baseY| counted as grounded
}

// BehaviorConfig holds the day and night behavior profiles.
type BehaviorConfig struct {
	Day   BehaviorProfile `yaml:"day"`
	Night BehaviorProfile `yaml:"night"`
}

// BehaviorProfile is one row of the behavior tuning table.
type BehaviorProfile struct {
	AnimPeriod            int     `yaml:"anim_period"`      // ticks per gait frame
	SpeedMultiplier       float64 `yaml:"speed_multiplier"` // horizontal speed scale
	WanderSpeed           Range   `yaml:"wander_speed"`     // |vx| on creation and direction change
	StartGrazingChance    float64 `yaml:"start_grazing_chance"`
	InitialGrazeTimer     Range   `yaml:"initial_graze_timer"`
	GrazeBout             Range   `yaml:"graze_bout"`
	WalkBout              Range   `yaml:"walk_bout"`
	InitialJumpTimer      Range   `yaml:"initial_jump_timer"`
	JumpTimer             Range   `yaml:"jump_timer"`
	JumpVelocity          Range   `yaml:"jump_velocity"` // upward speed magnitude
	DirectionChangeChance float64 `yaml:"direction_change_chance"`
}

// GrassConfig holds grass patch parameters.
type GrassConfig struct {
	Spacing      float64 `yaml:"spacing"`
	Density      float64 `yaml:"density"`
	HeightJitter float64 `yaml:"height_jitter"`
	InitialTimer Range   `yaml:"initial_timer"`
	GrowthTimer  Range   `yaml:"growth_timer"`
}

// StarsConfig holds night sky parameters.
type StarsConfig struct {
	Count        int     `yaml:"count"`
	SkyFraction  float64 `yaml:"sky_fraction"`
	Brightness   Range   `yaml:"brightness"`
	TwinkleSpeed Range   `yaml:"twinkle_speed"`
}

// ClockConfig holds world clock display parameters.
type ClockConfig struct {
	RefreshTicks int `yaml:"refresh_ticks"` // ticks between clock label refreshes
}

// NoticeConfig holds transient notice parameters.
type NoticeConfig struct {
	Duration float64 `yaml:"duration"` // seconds on screen
	Fade     float64 `yaml:"fade"`     // seconds of fade-out at the end
}

// MinigameConfig holds Feed-a-Cow parameters.
type MinigameConfig struct {
	TimeLimit       float64 `yaml:"time_limit"`       // seconds per round
	SpawnInterval   float64 `yaml:"spawn_interval"`   // seconds between cow appearances
	VisibleDuration float64 `yaml:"visible_duration"` // seconds a cow stays up
	FedFlash        float64 `yaml:"fed_flash"`        // seconds the fed marker stays up
	PointsPerCow    int     `yaml:"points_per_cow"`
	Holes           int     `yaml:"holes"`
	HighScorePath   string  `yaml:"high_score_path"`
}

// AudioConfig holds sound parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	TicksPerSecond      float64 `yaml:"ticks_per_second"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CanvasW float64 // Screen.Width as float64
	CanvasH float64 // Screen.Height as float64
	GroundY float64 // top of the ground band
	BaseY   float64 // resting y of a grazer sprite's top edge
	MinX    float64 // leftmost grazer x
	MaxX    float64 // rightmost grazer x
	DT      float64 // seconds per tick
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("config: screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Pasture.MaxGrazers < 0:
		return fmt.Errorf("config: pasture.max_grazers must not be negative")
	case c.Pasture.GroundFraction <= 0 || c.Pasture.GroundFraction > 1:
		return fmt.Errorf("config: pasture.ground_fraction must be in (0, 1], got %v", c.Pasture.GroundFraction)
	case c.Grass.Spacing <= 0:
		return fmt.Errorf("config: grass.spacing must be positive")
	case float64(c.Screen.Width)-c.Sprite.Width-2*c.Pasture.Margin <= 0:
		return fmt.Errorf("config: screen width %d leaves no room for a %v px sprite", c.Screen.Width, c.Sprite.Width)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing screen or sprite fields by hand.
func (c *Config) ComputeDerived() {
	c.Derived.CanvasW = float64(c.Screen.Width)
	c.Derived.CanvasH = float64(c.Screen.Height)
	c.Derived.GroundY = c.Derived.CanvasH * c.Pasture.GroundFraction
	c.Derived.BaseY = c.Derived.GroundY - c.Sprite.Height
	c.Derived.MinX = c.Pasture.Margin
	c.Derived.MaxX = c.Derived.CanvasW - c.Sprite.Width - c.Pasture.Margin

	tps := c.Telemetry.TicksPerSecond
	if tps <= 0 {
		tps = 60
	}
	c.Derived.DT = 1.0 / tps
}

// Profile returns the behavior profile for the given day flag.
func (c *Config) Profile(isDay bool) *BehaviorProfile {
	if isDay {
		return &c.Behavior.Day
	}
	return &c.Behavior.Night
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
