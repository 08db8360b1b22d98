// Package game runs the pasture simulation: grazers in an ECS world, the
// decorative grass and star layers, and the world clock that drives them.
package game

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pasture/clock"
	"github.com/pthm-cable/pasture/components"
	"github.com/pthm-cable/pasture/config"
	"github.com/pthm-cable/pasture/systems"
	"github.com/pthm-cable/pasture/telemetry"
)

// StockingNotice is the message posted when the population cap refuses an add.
const StockingNotice = "Stocking density reached!"

// ErrStockingDensity is returned by AddGrazer when the pasture is full.
var ErrStockingDensity = errors.New("stocking density reached")

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(msg string)
}

// Display receives the two pasture counters.
type Display interface {
	SetPopulation(n int)
	SetClock(label string)
}

// Options configures a new Pasture. Nil collaborators are allowed.
type Options struct {
	Config *config.Config // nil uses config.Cfg()
	Seed   int64
	Clock  *clock.Clock // nil reads the system clock

	Display  Display
	Notifier Notifier

	// Telemetry
	StatsWindow   float64 // seconds; 0 uses the config value
	LogStats      bool
	OutputManager *telemetry.OutputManager
	StatsCallback func(telemetry.WindowStats)
	PerfClock     func() time.Time // step timing clock; nil reads the wall clock
}

// Pasture holds the complete simulation state.
type Pasture struct {
	cfg   *config.Config
	seed  int64
	rng   *rand.Rand
	clock *clock.Clock

	world        *ecs.World
	grazerMapper *ecs.Map5[
		components.Grazer,
		components.Position,
		components.Velocity,
		components.Gait,
		components.Behavior,
	]
	grazerFilter *ecs.Filter5[
		components.Grazer,
		components.Position,
		components.Velocity,
		components.Gait,
		components.Behavior,
	]

	grass *systems.GrassField
	stars *systems.StarField

	display  Display
	notifier Notifier

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	// State
	reading      clock.Reading
	tick         int32
	running      bool
	nextID       uint32
	population   int
	refreshTimer int
}

// New creates a pasture with the initial population, running.
func New(opts Options) *Pasture {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	window := opts.StatsWindow
	if window <= 0 {
		window = cfg.Telemetry.StatsWindow
	}

	p := &Pasture{
		cfg:   cfg,
		seed:  opts.Seed,
		rng:   rng,
		clock: opts.Clock,
		world: world,
		grazerMapper: ecs.NewMap5[
			components.Grazer,
			components.Position,
			components.Velocity,
			components.Gait,
			components.Behavior,
		](world),
		grazerFilter: ecs.NewFilter5[
			components.Grazer,
			components.Position,
			components.Velocity,
			components.Gait,
			components.Behavior,
		](world),
		display:       opts.Display,
		notifier:      opts.Notifier,
		collector:     telemetry.NewCollector(window, cfg.Derived.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, opts.PerfClock),
		outputManager: opts.OutputManager,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		running:       true,
	}
	if p.clock == nil {
		p.clock = clock.New(nil)
	}
	p.reading = p.clock.Read()

	p.grass = systems.NewGrassField(cfg, rng)
	p.stars = systems.NewStarField(cfg, rng)

	for i := 0; i < cfg.Pasture.InitialGrazers; i++ {
		if err := p.AddGrazer(); err != nil {
			break
		}
	}
	p.refreshCounters()

	slog.Info("pasture created",
		"seed", opts.Seed,
		"grazers", p.population,
		"grass", len(p.grass.Patches),
		"stars", len(p.stars.Stars),
		"hour", p.reading.Hour,
		"phase", p.reading.Phase.String(),
	)

	return p
}

// env builds the grazer update context for the current clock reading.
func (p *Pasture) env() systems.GrazerEnv {
	return systems.GrazerEnv{
		IsDay:   p.reading.Day,
		Bounds:  systems.BoundsFromConfig(p.cfg),
		Physics: &p.cfg.Physics,
		Profile: p.cfg.Profile(p.reading.Day),
		Rng:     p.rng,
	}
}

// Config returns the configuration the pasture runs with.
func (p *Pasture) Config() *config.Config {
	return p.cfg
}

// Tick returns the number of simulation steps taken.
func (p *Pasture) Tick() int32 {
	return p.tick
}

// Population returns the number of grazers.
func (p *Pasture) Population() int {
	return p.population
}

// Reading returns the clock reading used by the latest step.
func (p *Pasture) Reading() clock.Reading {
	return p.reading
}

// Grass returns the grass layer for rendering.
func (p *Pasture) Grass() []systems.GrassPatch {
	return p.grass.Patches
}

// Stars returns the star layer for rendering.
func (p *Pasture) Stars() []systems.Star {
	return p.stars.Stars
}

// PerfCollector returns the step timing collector.
func (p *Pasture) PerfCollector() *telemetry.PerfCollector {
	return p.perfCollector
}
