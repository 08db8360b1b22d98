package game

import (
	"math"

	"github.com/pthm-cable/pasture/systems"
	"github.com/pthm-cable/pasture/telemetry"
)

// Update advances the simulation by one tick if it is running.
// The driver calls it once per frame before drawing.
func (p *Pasture) Update() {
	if !p.running {
		return
	}
	p.Step()
}

// Step advances the simulation by exactly one tick, paused or not.
func (p *Pasture) Step() {
	p.perfCollector.StartTick()

	p.perfCollector.StartPhase(telemetry.PhaseClock)
	p.reading = p.clock.Read()

	p.perfCollector.StartPhase(telemetry.PhaseGrazers)
	p.updateGrazers()

	p.perfCollector.StartPhase(telemetry.PhaseGrass)
	p.grass.Update(p.rng)

	p.perfCollector.StartPhase(telemetry.PhaseStars)
	p.stars.Update(p.rng)

	p.perfCollector.StartPhase(telemetry.PhaseCounters)
	p.updateCounters()

	p.tick++

	p.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	p.flushTelemetry()

	p.perfCollector.EndTick()
}

// StepN advances n ticks, paused or not. Counts below one step once.
func (p *Pasture) StepN(n int) {
	for i := 0; i < max(n, 1); i++ {
		p.Step()
	}
}

// updateGrazers runs the behavior update for every grazer.
func (p *Pasture) updateGrazers() {
	env := p.env()

	query := p.grazerFilter.Query()
	for query.Next() {
		_, pos, vel, gait, b := query.Get()

		ev := systems.UpdateGrazer(pos, vel, gait, b, env)

		if ev.JumpStarted {
			p.collector.RecordJump()
		}
		if ev.Landed {
			p.collector.RecordLanding()
		}
		if ev.ModeToggled {
			p.collector.RecordModeToggle()
		}
		if ev.DirectionNew {
			p.collector.RecordDirectionChange()
		}
		p.collector.RecordGrazerTick(b.Grazing)
	}
}

// updateCounters pushes the population every tick and the clock label
// every few seconds.
func (p *Pasture) updateCounters() {
	if p.display != nil {
		p.display.SetPopulation(p.population)
	}

	p.refreshTimer++
	if p.refreshTimer >= p.cfg.Clock.RefreshTicks {
		p.refreshCounters()
	}
}

// refreshCounters pushes both counters and restarts the refresh timer.
func (p *Pasture) refreshCounters() {
	p.refreshTimer = 0
	if p.display == nil {
		return
	}
	p.display.SetPopulation(p.population)
	p.display.SetClock(p.reading.Label)
}

// sample gathers the end-of-window state for telemetry.
func (p *Pasture) sample() telemetry.Sample {
	s := telemetry.Sample{
		Hour:               p.reading.Hour,
		Phase:              p.reading.Phase.String(),
		Day:                p.reading.Day,
		Grazers:            p.population,
		Speeds:             make([]float64, 0, p.population),
		GrassMeanStage:     p.grass.MeanStage(),
		StarMeanBrightness: p.stars.MeanBrightness(),
	}

	baseY := p.cfg.Derived.BaseY
	query := p.grazerFilter.Query()
	for query.Next() {
		_, pos, vel, _, b := query.Get()
		if b.Grazing {
			s.Grazing++
		}
		if pos.Y < baseY {
			s.Airborne++
		}
		s.Speeds = append(s.Speeds, math.Abs(vel.X))
	}
	return s
}
