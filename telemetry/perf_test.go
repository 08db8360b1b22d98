package telemetry

import (
	"math"
	"testing"
	"time"
)

// scriptClock returns a clock that advances by the next delta on each read,
// repeating the last delta once the script runs out.
func scriptClock(deltas ...time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	i := 0
	return func() time.Time {
		d := deltas[len(deltas)-1]
		if i < len(deltas) {
			d = deltas[i]
		}
		i++
		t = t.Add(d)
		return t
	}
}

// timeTick runs one tick with the given phases; the clock script decides
// how long each lasts.
func timeTick(pc *PerfCollector, phases ...string) {
	pc.StartTick()
	for _, ph := range phases {
		pc.StartPhase(ph)
	}
	pc.EndTick()
}

// ---------- tick timing ----------

func TestPerfCollector_PhaseShares(t *testing.T) {
	// Reads per tick: start, grazers, grass, end
	us := time.Microsecond
	pc := NewPerfCollector(10, scriptClock(0, 0, 10*us, 90*us))

	timeTick(pc, PhaseGrazers, PhaseGrass)
	stats := pc.Stats()

	if stats.AvgTickDuration != 100*us {
		t.Errorf("avg tick = %v, want 100µs", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseGrazers] != 10*us || stats.PhaseAvg[PhaseGrass] != 90*us {
		t.Errorf("phase avg = %v", stats.PhaseAvg)
	}
	if got := stats.PhasePct[PhaseGrass]; math.Abs(got-90) > 1e-9 {
		t.Errorf("grass pct = %v, want 90", got)
	}
	if got := stats.PhasePct[PhaseGrazers]; math.Abs(got-10) > 1e-9 {
		t.Errorf("grazers pct = %v, want 10", got)
	}
	if _, ok := stats.PhaseAvg[PhaseStars]; ok {
		t.Error("untimed phase should be absent")
	}
	if stats.TicksPerSecond != 10000 {
		t.Errorf("ticks/s = %v, want 10000", stats.TicksPerSecond)
	}
}

func TestPerfCollector_ExtraPhasesRegistered(t *testing.T) {
	pc := NewPerfCollector(4, scriptClock(time.Millisecond))
	timeTick(pc, "warmup", PhaseGrazers)

	stats := pc.Stats()
	if stats.PhaseAvg["warmup"] != time.Millisecond {
		t.Errorf("warmup avg = %v, want 1ms", stats.PhaseAvg["warmup"])
	}
	if len(Phases()) != 6 {
		t.Errorf("Phases() = %v, extra phases leaked into step order", Phases())
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	ms := time.Millisecond
	// Each tick reads the clock twice; the first three ticks last 9ms and
	// the rest 1ms
	pc := NewPerfCollector(3, scriptClock(0, 9*ms, 0, 9*ms, 0, 9*ms, 0, ms))

	for i := 0; i < 6; i++ {
		timeTick(pc)
	}

	stats := pc.Stats()
	if stats.MaxTickDuration != ms || stats.AvgTickDuration != ms {
		t.Errorf("max/avg = %v/%v, old ticks should have rotated out", stats.MaxTickDuration, stats.AvgTickDuration)
	}
}

func TestPerfCollector_MinMaxP95(t *testing.T) {
	pc := NewPerfCollector(20, nil)
	var d time.Duration
	pc.now = func() time.Time { return time.Unix(0, 0).Add(d) }

	for i := 1; i <= 20; i++ {
		d = 0
		pc.StartTick()
		d = time.Duration(i) * time.Millisecond
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.MinTickDuration != time.Millisecond || stats.MaxTickDuration != 20*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 1ms/20ms", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.P95TickDuration != 19*time.Millisecond {
		t.Errorf("p95 = %v, want 19ms", stats.P95TickDuration)
	}
}

func TestPerfCollector_PhaseOutsideTickIgnored(t *testing.T) {
	pc := NewPerfCollector(4, scriptClock(time.Millisecond))
	pc.StartPhase(PhaseGrazers)
	pc.EndTick()

	if stats := pc.Stats(); stats.AvgTickDuration != 0 || len(stats.PhaseAvg) != 0 {
		t.Errorf("stats without a tick = %+v", stats)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10, nil).Stats()

	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("maps should be non-nil")
	}
}

// ---------- frames ----------

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10, scriptClock(time.Second, 20*time.Millisecond))

	pc.RecordFrame()
	if stats := pc.Stats(); stats.FPS != 0 {
		t.Errorf("fps after one frame = %v, want 0", stats.FPS)
	}

	pc.RecordFrame()
	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("frame = %v, want 20ms", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("fps = %v, want 50", stats.FPS)
	}
}

// ---------- export ----------

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		P95TickDuration: 400 * time.Microsecond,
		TicksPerSecond:  4000,
		PhasePct: map[string]float64{
			PhaseGrazers: 60,
			PhaseGrass:   25,
			PhaseStars:   15,
		},
	}

	row := stats.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 || row.P95TickUS != 400 {
		t.Errorf("row = %+v, want window 600, 250us avg, 400us p95", row)
	}
	if row.GrazersPct != 60 || row.GrassPct != 25 || row.StarsPct != 15 {
		t.Errorf("phase pct = %v/%v/%v, want 60/25/15", row.GrazersPct, row.GrassPct, row.StarsPct)
	}
	if row.ClockPct != 0 || row.TelemetryPct != 0 {
		t.Errorf("untracked phases should be zero: %+v", row)
	}
}
