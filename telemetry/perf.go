package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Step phases, in the order Pasture.Step runs them.
const (
	PhaseClock     = "clock"
	PhaseGrazers   = "grazers"
	PhaseGrass     = "grass"
	PhaseStars     = "stars"
	PhaseCounters  = "counters"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{
	PhaseClock, PhaseGrazers, PhaseGrass, PhaseStars, PhaseCounters, PhaseTelemetry,
}

// Phases returns the step phase names in run order.
func Phases() []string {
	return append([]string(nil), phaseOrder...)
}

// tickTiming is one recorded step. Phase durations are indexed like
// PerfCollector.names.
type tickTiming struct {
	total  time.Duration
	phases []time.Duration
}

// PerfCollector times pasture steps over a ring of recent ticks.
// Phases are registered on first use, so callers may time extra phases
// beyond the step phases.
type PerfCollector struct {
	now func() time.Time

	ring   []tickTiming
	next   int
	filled int

	names []string
	index map[string]int

	cur      tickTiming
	tickAt   time.Time
	mark     time.Time
	phase    int // -1 outside a phase
	inTick   bool
	lastDraw time.Time
	frame    time.Duration
}

// NewPerfCollector keeps the last window ticks. A nil now reads the wall
// clock.
func NewPerfCollector(window int, now func() time.Time) *PerfCollector {
	if window < 1 {
		window = 60
	}
	if now == nil {
		now = time.Now
	}
	p := &PerfCollector{
		now:   now,
		ring:  make([]tickTiming, window),
		index: make(map[string]int, len(phaseOrder)),
		phase: -1,
	}
	for _, name := range phaseOrder {
		p.register(name)
	}
	return p
}

func (p *PerfCollector) register(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	i := len(p.names)
	p.names = append(p.names, name)
	p.index[name] = i
	return i
}

// StartTick opens a new step.
func (p *PerfCollector) StartTick() {
	p.tickAt = p.now()
	p.mark = p.tickAt
	p.phase = -1
	p.inTick = true
	p.cur = tickTiming{phases: make([]time.Duration, len(p.names))}
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(name string) {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.phase = p.register(name)
	if p.phase >= len(p.cur.phases) {
		p.cur.phases = append(p.cur.phases, make([]time.Duration, p.phase+1-len(p.cur.phases))...)
	}
	p.mark = t
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += t.Sub(p.mark)
	}
}

// EndTick closes the step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.cur.total = t.Sub(p.tickAt)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
	p.inTick = false
	p.phase = -1
}

// RecordFrame marks a drawn frame; the gap to the previous mark is the
// frame time.
func (p *PerfCollector) RecordFrame() {
	t := p.now()
	if !p.lastDraw.IsZero() {
		p.frame = t.Sub(p.lastDraw)
	}
	p.lastDraw = t
}

// PerfStats summarizes the ticks in the ring.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Per phase mean duration and share of the mean tick
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the summary over the recorded ticks.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	sums := make([]time.Duration, len(p.names))
	var sum time.Duration
	for i, tt := range p.ring[:p.filled] {
		totals[i] = float64(tt.total)
		sum += tt.total
		for j, d := range tt.phases {
			sums[j] += d
		}
	}
	sort.Float64s(totals)

	n := time.Duration(p.filled)
	s.AvgTickDuration = sum / n
	s.MinTickDuration = time.Duration(totals[0])
	s.MaxTickDuration = time.Duration(totals[len(totals)-1])
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}

	for j, total := range sums {
		if total == 0 {
			continue
		}
		name := p.names[j]
		s.PhaseAvg[name] = total / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(s.PhaseAvg[name]) / float64(s.AvgTickDuration) * 100
		}
	}
	return s
}

// LogStats logs the summary, listing step phases above 0.1%.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, name := range phaseOrder {
		if pct := s.PhasePct[name]; pct > 0.1 {
			attrs = append(attrs, name+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, name := range phaseOrder {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	ClockPct     float64 `csv:"clock_pct"`
	GrazersPct   float64 `csv:"grazers_pct"`
	GrassPct     float64 `csv:"grass_pct"`
	StarsPct     float64 `csv:"stars_pct"`
	CountersPct  float64 `csv:"counters_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		ClockPct:     s.PhasePct[PhaseClock],
		GrazersPct:   s.PhasePct[PhaseGrazers],
		GrassPct:     s.PhasePct[PhaseGrass],
		StarsPct:     s.PhasePct[PhaseStars],
		CountersPct:  s.PhasePct[PhaseCounters],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
