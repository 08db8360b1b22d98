package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pasture/components"
	"github.com/pthm-cable/pasture/systems"
)

// AddGrazer adds one grazer at a random x inside the margins. When the
// pasture is full it posts StockingNotice once and returns
// ErrStockingDensity; the population is unchanged.
func (p *Pasture) AddGrazer() error {
	if p.population >= p.cfg.Pasture.MaxGrazers {
		p.collector.RecordRejected()
		if p.notifier != nil {
			p.notifier.Notify(StockingNotice)
		}
		return ErrStockingDensity
	}

	env := p.env()
	x := env.Bounds.MinX + p.rng.Float64()*(env.Bounds.MaxX-env.Bounds.MinX)
	p.spawnGrazer(x, env)

	p.collector.RecordAdd()
	p.refreshCounters()
	return nil
}

// spawnGrazer creates a grazer entity initialized from env.
func (p *Pasture) spawnGrazer(x float64, env systems.GrazerEnv) ecs.Entity {
	id := &components.Grazer{ID: p.nextID}
	pos := &components.Position{}
	vel := &components.Velocity{}
	gait := &components.Gait{}
	b := &components.Behavior{}
	systems.InitGrazer(pos, vel, gait, b, x, env)

	p.nextID++
	p.population++
	return p.grazerMapper.NewEntity(id, pos, vel, gait, b)
}

// Clear removes every grazer.
func (p *Pasture) Clear() {
	// Collect first; the world is locked while a query is open
	var toRemove []ecs.Entity
	query := p.grazerFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		p.world.RemoveEntity(e)
	}

	if len(toRemove) > 0 {
		slog.Info("pasture cleared", "removed", len(toRemove))
	}
	p.population = 0
	p.collector.RecordClear()
	p.refreshCounters()
}

// Pause stops Update from stepping. Idempotent.
func (p *Pasture) Pause() {
	p.running = false
}

// Resume lets Update step again. Idempotent.
func (p *Pasture) Resume() {
	p.running = true
}

// Toggle flips between running and paused and reports the new state.
func (p *Pasture) Toggle() bool {
	p.running = !p.running
	return p.running
}

// Running reports whether Update steps the simulation.
func (p *Pasture) Running() bool {
	return p.running
}
