package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/pasture/clock"
	"github.com/pthm-cable/pasture/components"
	"github.com/pthm-cable/pasture/config"
	"github.com/pthm-cable/pasture/systems"
	"github.com/pthm-cable/pasture/telemetry"
)

type fakeNotifier struct {
	msgs []string
}

func (n *fakeNotifier) Notify(msg string) {
	n.msgs = append(n.msgs, msg)
}

type fakeDisplay struct {
	population     int
	populationPush int
	clock          string
	clockPush      int
}

func (d *fakeDisplay) SetPopulation(n int) {
	d.population = n
	d.populationPush++
}

func (d *fakeDisplay) SetClock(label string) {
	d.clock = label
	d.clockPush++
}

func newTestPasture(t *testing.T, hour int, seed int64) (*Pasture, *fakeNotifier, *fakeDisplay) {
	t.Helper()
	n := &fakeNotifier{}
	d := &fakeDisplay{}
	p := New(Options{
		Config:   config.Default(),
		Seed:     seed,
		Clock:    clock.New(clock.FixedHour(hour)),
		Display:  d,
		Notifier: n,
	})
	return p, n, d
}

// ---------- construction ----------

func TestNew_InitialScene(t *testing.T) {
	p, n, d := newTestPasture(t, 12, 1)

	if p.Population() != 1 {
		t.Errorf("initial population = %d, want 1", p.Population())
	}
	if !p.Running() {
		t.Error("new pasture should be running")
	}
	if len(p.Stars()) != 50 {
		t.Errorf("stars = %d, want 50", len(p.Stars()))
	}
	if len(p.Grass()) == 0 {
		t.Error("no grass patches")
	}
	if len(n.msgs) != 0 {
		t.Errorf("unexpected notices: %v", n.msgs)
	}
	if d.population != 1 || d.clock != "12:00 PM" {
		t.Errorf("display = (%d, %q), want (1, \"12:00 PM\")", d.population, d.clock)
	}
}

func TestNew_NilCollaborators(t *testing.T) {
	p := New(Options{Config: config.Default(), Seed: 3, Clock: clock.New(clock.FixedHour(9))})
	for i := 0; i < 10; i++ {
		_ = p.AddGrazer()
	}
	for i := 0; i < 300; i++ {
		p.Step()
	}
	p.Clear()
	if p.Population() != 0 {
		t.Errorf("population = %d after clear", p.Population())
	}
}

// ---------- population cap ----------

func TestAddGrazer_CapAndSingleNotice(t *testing.T) {
	p, n, _ := newTestPasture(t, 12, 2)
	p.Clear()

	var rejected int
	for i := 0; i < 8; i++ {
		err := p.AddGrazer()
		if i < 7 && err != nil {
			t.Fatalf("add %d: unexpected error %v", i+1, err)
		}
		if err != nil {
			rejected++
			if !errors.Is(err, ErrStockingDensity) {
				t.Errorf("add %d: error = %v, want ErrStockingDensity", i+1, err)
			}
		}
	}

	if p.Population() != 7 {
		t.Errorf("population = %d, want 7", p.Population())
	}
	if rejected != 1 {
		t.Errorf("rejected adds = %d, want 1", rejected)
	}
	if len(n.msgs) != 1 || n.msgs[0] != StockingNotice {
		t.Errorf("notices = %v, want exactly [%q]", n.msgs, StockingNotice)
	}
	if got := len(p.Grazers(nil)); got != 7 {
		t.Errorf("Grazers() returned %d views, want 7", got)
	}
}

func TestAddGrazer_StartsInsideMargins(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 4)
	cfg := p.Config()

	for round := 0; round < 50; round++ {
		p.Clear()
		for i := 0; i < cfg.Pasture.MaxGrazers; i++ {
			if err := p.AddGrazer(); err != nil {
				t.Fatal(err)
			}
		}
		for _, g := range p.Grazers(nil) {
			if g.X < cfg.Derived.MinX || g.X >= cfg.Derived.MaxX {
				t.Fatalf("grazer created at x = %v, outside [%v, %v)", g.X, cfg.Derived.MinX, cfg.Derived.MaxX)
			}
			if g.Y != cfg.Derived.BaseY {
				t.Fatalf("grazer created at y = %v, want %v", g.Y, cfg.Derived.BaseY)
			}
		}
	}
}

func TestClear(t *testing.T) {
	p, _, d := newTestPasture(t, 12, 5)
	for i := 0; i < 4; i++ {
		_ = p.AddGrazer()
	}

	p.Clear()
	if p.Population() != 0 {
		t.Errorf("population = %d, want 0", p.Population())
	}
	if len(p.Grazers(nil)) != 0 {
		t.Error("grazer entities survived Clear")
	}
	if d.population != 0 {
		t.Errorf("display population = %d, want 0", d.population)
	}

	// Cleared pasture accepts new grazers up to the cap again
	for i := 0; i < 7; i++ {
		if err := p.AddGrazer(); err != nil {
			t.Fatalf("add after clear: %v", err)
		}
	}
}

// ---------- run control ----------

func TestPauseResume(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 6)

	p.Pause()
	p.Pause()
	if p.Running() {
		t.Fatal("Running after Pause")
	}
	before := p.Tick()
	for i := 0; i < 10; i++ {
		p.Update()
	}
	if p.Tick() != before {
		t.Errorf("Update stepped while paused: tick %d -> %d", before, p.Tick())
	}

	p.Step()
	if p.Tick() != before+1 {
		t.Errorf("Step while paused: tick = %d, want %d", p.Tick(), before+1)
	}

	p.Resume()
	p.Resume()
	p.Update()
	if p.Tick() != before+2 {
		t.Errorf("Update after Resume: tick = %d, want %d", p.Tick(), before+2)
	}

	if p.Toggle() || p.Running() {
		t.Error("Toggle from running should pause")
	}
	if !p.Toggle() || !p.Running() {
		t.Error("Toggle from paused should resume")
	}
}

// ---------- long-run invariants ----------

func TestStep_DayRunInvariants(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 7)
	cfg := p.Config()
	for p.Population() < cfg.Pasture.MaxGrazers {
		if err := p.AddGrazer(); err != nil {
			t.Fatal(err)
		}
	}

	var views []GrazerView
	var grazingSeen, jumpingSeen bool
	prevStage := make([]int, len(p.Grass()))
	for i, g := range p.Grass() {
		prevStage[i] = g.Stage
	}

	for tick := 0; tick < 10000; tick++ {
		p.Step()

		views = p.Grazers(views)
		if len(views) != cfg.Pasture.MaxGrazers {
			t.Fatalf("tick %d: population changed to %d", tick, len(views))
		}
		for _, g := range views {
			if g.Y > cfg.Derived.BaseY {
				t.Fatalf("tick %d: grazer %d below ground (y = %v)", tick, g.ID, g.Y)
			}
			if g.Grazing && g.Jumping {
				t.Fatalf("tick %d: grazer %d grazing and jumping", tick, g.ID)
			}
			if g.X < cfg.Derived.MinX || g.X > cfg.Derived.MaxX {
				t.Fatalf("tick %d: grazer %d x = %v outside margins", tick, g.ID, g.X)
			}
			grazingSeen = grazingSeen || g.Grazing
			jumpingSeen = jumpingSeen || g.Jumping
		}

		for i, g := range p.Grass() {
			if g.Stage < prevStage[i] {
				t.Fatalf("tick %d: grass %d shrank", tick, i)
			}
			prevStage[i] = g.Stage
		}
		for _, s := range p.Stars() {
			if s.Brightness < 0.1 || s.Brightness > 1.0 {
				t.Fatalf("tick %d: star brightness %v out of range", tick, s.Brightness)
			}
		}
	}

	if !grazingSeen || !jumpingSeen {
		t.Errorf("day run saw grazing=%v jumping=%v, want both", grazingSeen, jumpingSeen)
	}
	for i, g := range p.Grass() {
		if g.Stage != 3 {
			t.Errorf("grass %d at stage %d after 10000 ticks, want 3", i, g.Stage)
		}
	}
}

func TestAddGrazer_NightProfile(t *testing.T) {
	p, _, _ := newTestPasture(t, 2, 8)
	night := p.Config().Behavior.Night

	if p.Reading().Day {
		t.Fatal("02:00 read as day")
	}

	for round := 0; round < 100; round++ {
		p.Clear()
		for i := 0; i < 7; i++ {
			_ = p.AddGrazer()
		}
		for _, g := range p.Grazers(nil) {
			speed := math.Abs(g.VX)
			if speed < night.WanderSpeed.Min || speed >= night.WanderSpeed.Max() {
				t.Fatalf("night grazer |vx| = %v outside [%v, %v)", speed, night.WanderSpeed.Min, night.WanderSpeed.Max())
			}
		}
	}
}

func TestStep_Deterministic(t *testing.T) {
	run := func() []GrazerView {
		p, _, _ := newTestPasture(t, 18, 99)
		for i := 0; i < 4; i++ {
			_ = p.AddGrazer()
		}
		for i := 0; i < 2000; i++ {
			p.Step()
		}
		return p.Grazers(nil)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("population differs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("grazer %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// ---------- counters ----------

func TestCounters_Refresh(t *testing.T) {
	p, _, d := newTestPasture(t, 15, 9)
	refresh := p.Config().Clock.RefreshTicks

	pushes := d.populationPush
	clocks := d.clockPush

	for i := 0; i < refresh-1; i++ {
		p.Step()
	}
	if d.populationPush != pushes+refresh-1 {
		t.Errorf("population pushed %d times in %d ticks", d.populationPush-pushes, refresh-1)
	}
	if d.clockPush != clocks {
		t.Errorf("clock refreshed early after %d ticks", refresh-1)
	}

	p.Step()
	if d.clockPush != clocks+1 {
		t.Errorf("clock not refreshed after %d ticks", refresh)
	}

	// The next refresh comes a full period later
	for i := 0; i < refresh; i++ {
		p.Step()
	}
	if d.clockPush != clocks+2 {
		t.Errorf("clock refreshed %d times in %d ticks, want 2", d.clockPush-clocks, 2*refresh)
	}
	clocks = d.clockPush

	_ = p.AddGrazer()
	if d.clockPush != clocks+1 {
		t.Error("clock not refreshed on population change")
	}
	if got := p.Counters(); got.Population != 2 || got.Clock != "3:00 PM" {
		t.Errorf("Counters = %+v, want {2 3:00 PM}", got)
	}
}

// ---------- telemetry ----------

func TestStep_FlushesStatsWindow(t *testing.T) {
	var windows []telemetry.WindowStats
	p := New(Options{
		Config:        config.Default(),
		Seed:          10,
		Clock:         clock.New(clock.FixedHour(12)),
		StatsWindow:   1,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	_ = p.AddGrazer()

	for i := 0; i < 180; i++ {
		p.Step()
	}

	if len(windows) != 3 {
		t.Fatalf("got %d windows in 180 ticks, want 3", len(windows))
	}
	w := windows[0]
	if w.WindowEndTick != 60 || w.Grazers != 2 || w.Phase != "day" || !w.Day {
		t.Errorf("first window = %+v", w)
	}
	// Initial grazer plus one add
	if w.Adds != 2 {
		t.Errorf("first window adds = %d, want 2", w.Adds)
	}
	if windows[1].Adds != 0 {
		t.Errorf("second window adds = %d, want 0", windows[1].Adds)
	}
}

func TestSnapshotRestore(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 11)
	for i := 0; i < 3; i++ {
		_ = p.AddGrazer()
	}
	for i := 0; i < 500; i++ {
		p.Step()
	}
	p.Pause()

	snap := p.Snapshot()
	if len(snap.Grazers) != 4 {
		t.Fatalf("snapshot has %d grazers, want 4", len(snap.Grazers))
	}

	r, err := Restore(snap, Options{Config: config.Default(), Clock: clock.New(clock.FixedHour(12))})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if r.Tick() != p.Tick() || r.Running() {
		t.Errorf("restored tick=%d running=%v, want %d false", r.Tick(), r.Running(), p.Tick())
	}
	if r.Population() != 4 {
		t.Errorf("restored population = %d, want 4", r.Population())
	}

	orig := p.Grazers(nil)
	got := r.Grazers(nil)
	for i := range orig {
		if orig[i] != got[i] {
			t.Errorf("grazer %d: got %+v, want %+v", i, got[i], orig[i])
		}
	}

	// New ids continue after the restored ones
	_ = r.AddGrazer()
	ids := map[uint32]bool{}
	for _, g := range r.Grazers(nil) {
		if ids[g.ID] {
			t.Errorf("duplicate grazer id %d after restore", g.ID)
		}
		ids[g.ID] = true
	}
}

func TestRestore_RejectsOtherCanvas(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 12)
	snap := p.Snapshot()
	snap.CanvasHeight += 100

	_, err := Restore(snap, Options{Config: config.Default(), Clock: clock.New(clock.FixedHour(12))})
	if !errors.Is(err, ErrSnapshotCanvas) {
		t.Errorf("Restore err = %v, want ErrSnapshotCanvas", err)
	}
}

func TestRestore_ClampsSavedState(t *testing.T) {
	cfg := config.Default()
	bounds := systems.BoundsFromConfig(cfg)

	base, _, _ := newTestPasture(t, 12, 13)
	snap := base.Snapshot()
	snap.Running = false
	snap.Grass = []systems.GrassPatch{{X: 10, Y: 300, Stage: 4}, {X: 22, Y: 300, Stage: -2}}
	snap.Stars = []systems.Star{{Brightness: 3}, {Brightness: -1}}
	snap.Grazers = []telemetry.GrazerState{
		{ID: 1, X: bounds.MinX - 50, Y: 900, VY: 5, Jumping: true, Facing: -1},
		{ID: 2, X: bounds.MaxX + 50, Y: bounds.BaseY - 30, VX: 1, Facing: 7},
	}

	r, err := Restore(snap, Options{Config: cfg, Clock: clock.New(clock.FixedHour(12))})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	tests := []struct {
		name string
		ok   func(GrazerView) bool
	}{
		{"below ground lands at rest", func(g GrazerView) bool {
			return g.Y == bounds.BaseY && g.VY == 0 && !g.Jumping && g.X == bounds.MinX
		}},
		{"past right margin clamped", func(g GrazerView) bool {
			return g.X == bounds.MaxX && g.Y == bounds.BaseY-30 && g.Facing == components.FacingRight
		}},
	}
	got := r.Grazers(nil)
	if len(got) != len(tests) {
		t.Fatalf("restored %d grazers, want %d", len(got), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.ok(got[i]) {
				t.Errorf("grazer = %+v", got[i])
			}
		})
	}

	for _, g := range r.Grass() {
		if g.Stage < 0 || g.Stage > systems.MaxGrassStage {
			t.Errorf("grass stage %d outside 0..%d", g.Stage, systems.MaxGrassStage)
		}
	}
	for _, s := range r.Stars() {
		if s.Brightness < systems.MinStarBrightness || s.Brightness > systems.MaxStarBrightness {
			t.Errorf("star brightness %v out of range", s.Brightness)
		}
	}

	// A paused restore still holds the ground invariant when stepped
	r.StepN(10)
	for _, g := range r.Grazers(nil) {
		if g.Y > bounds.BaseY {
			t.Errorf("grazer %d below ground after restore: y=%v", g.ID, g.Y)
		}
	}
}

func TestStepN(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 14)
	p.Pause()

	tests := []struct {
		n    int
		want int32
	}{
		{3, 3},
		{1, 4},
		{0, 5},
		{-4, 6},
	}
	for _, tt := range tests {
		p.StepN(tt.n)
		if p.Tick() != tt.want {
			t.Errorf("StepN(%d): tick = %d, want %d", tt.n, p.Tick(), tt.want)
		}
	}
}

func TestStep_PhaseTiming(t *testing.T) {
	// Every clock read advances 10µs, so each phase lasts exactly one read
	now := time.Unix(0, 0)
	p := New(Options{
		Config: config.Default(),
		Seed:   15,
		Clock:  clock.New(clock.FixedHour(12)),
		PerfClock: func() time.Time {
			now = now.Add(10 * time.Microsecond)
			return now
		},
	})
	for i := 0; i < 5; i++ {
		p.Step()
	}

	stats := p.PerfCollector().Stats()
	phases := telemetry.Phases()
	for _, ph := range phases {
		if got := stats.PhaseAvg[ph]; got != 10*time.Microsecond {
			t.Errorf("phase %s avg = %v, want 10µs", ph, got)
		}
	}
	// Tick start to the first phase is one more read
	want := time.Duration(len(phases)+1) * 10 * time.Microsecond
	if stats.AvgTickDuration != want {
		t.Errorf("avg tick = %v, want %v", stats.AvgTickDuration, want)
	}
}

// ---------- views ----------

func TestGrazerAt(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 21)
	for i := 0; i < 2; i++ {
		_ = p.AddGrazer()
	}
	views := p.Grazers(nil)
	cfg := p.Config()

	for _, v := range views {
		// The topmost grazer covering the probe wins
		hit, ok := p.GrazerAt(v.X+1, v.Y+1)
		if !ok {
			t.Fatalf("no grazer at (%v, %v)", v.X+1, v.Y+1)
		}
		if hit.X > v.X+1 || hit.X+cfg.Sprite.Width <= v.X+1 {
			t.Errorf("hit grazer %d does not cover the probe", hit.ID)
		}
	}

	if _, ok := p.GrazerAt(-5, -5); ok {
		t.Error("hit outside the canvas")
	}

	last := views[len(views)-1]
	got, ok := p.Grazer(last.ID)
	if !ok || got != last {
		t.Errorf("Grazer(%d) = %+v, %v", last.ID, got, ok)
	}
	if _, ok := p.Grazer(9999); ok {
		t.Error("found a grazer that does not exist")
	}
	if m := last.Mode(); m.String() == "Unknown" {
		t.Errorf("Mode() = %v", m)
	}
}

func TestSummary(t *testing.T) {
	p, _, _ := newTestPasture(t, 12, 22)
	for i := 0; i < 4; i++ {
		_ = p.AddGrazer()
	}
	for i := 0; i < 30; i++ {
		p.Step()
	}

	s := p.Summary()
	if s.Population != p.Population() {
		t.Errorf("Population = %d, want %d", s.Population, p.Population())
	}
	if got := s.Walking + s.Grazing + s.Jumping; got != s.Population {
		t.Errorf("modes sum to %d, want %d", got, s.Population)
	}
	if f := s.GrazingFraction(); f < 0 || f > 1 {
		t.Errorf("GrazingFraction = %v", f)
	}
	if s.Phase != "day" {
		t.Errorf("Phase = %q, want day", s.Phase)
	}

	for _, fd := range components.HerdFieldDescriptors() {
		if _, ok := s.Value(fd.ID); !ok {
			t.Errorf("Value(%q) not found", fd.ID)
		}
	}
	if _, ok := s.Value("nope"); ok {
		t.Error("Value accepted an unknown ID")
	}

	p.Clear()
	if s := p.Summary(); s.Population != 0 || s.GrazingFraction() != 0 || s.MeanSpeed != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
