package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	adds             int
	rejected         int
	clears           int
	jumps            int
	landings         int
	modeToggles      int
	directionChanges int

	// Grazer-tick accumulators for the grazing fraction
	grazerTicks  int
	grazingTicks int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordAdd records an accepted AddGrazer.
func (c *Collector) RecordAdd() {
	c.adds++
}

// RecordRejected records an AddGrazer refused by the population cap.
func (c *Collector) RecordRejected() {
	c.rejected++
}

// RecordClear records a Clear.
func (c *Collector) RecordClear() {
	c.clears++
}

// RecordJump records a jump start.
func (c *Collector) RecordJump() {
	c.jumps++
}

// RecordLanding records a jump ending on the ground.
func (c *Collector) RecordLanding() {
	c.landings++
}

// RecordModeToggle records a grazing/walking switch.
func (c *Collector) RecordModeToggle() {
	c.modeToggles++
}

// RecordDirectionChange records a random heading change.
func (c *Collector) RecordDirectionChange() {
	c.directionChanges++
}

// RecordGrazerTick records one grazer being updated for one tick.
func (c *Collector) RecordGrazerTick(grazing bool) {
	c.grazerTicks++
	if grazing {
		c.grazingTicks++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the pasture state observed at the end of a window.
type Sample struct {
	Hour  int
	Phase string
	Day   bool

	Grazers  int
	Grazing  int
	Airborne int
	Speeds   []float64 // |vx| per grazer

	GrassMeanStage     float64
	StarMeanBrightness float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	var grazingFrac float64
	if c.grazerTicks > 0 {
		grazingFrac = float64(c.grazingTicks) / float64(c.grazerTicks)
	}

	speed := Summarize(s.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Hour:  s.Hour,
		Phase: s.Phase,
		Day:   s.Day,

		Grazers:  s.Grazers,
		Grazing:  s.Grazing,
		Airborne: s.Airborne,

		Adds:     c.adds,
		Rejected: c.rejected,
		Clears:   c.clears,

		Jumps:            c.jumps,
		Landings:         c.landings,
		ModeToggles:      c.modeToggles,
		DirectionChanges: c.directionChanges,

		GrazingFraction: grazingFrac,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,

		GrassMeanStage:     s.GrassMeanStage,
		StarMeanBrightness: s.StarMeanBrightness,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.adds = 0
	c.rejected = 0
	c.clears = 0
	c.jumps = 0
	c.landings = 0
	c.modeToggles = 0
	c.directionChanges = 0
	c.grazerTicks = 0
	c.grazingTicks = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
