package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/pasture/components"
	"github.com/pthm-cable/pasture/config"
	"github.com/pthm-cable/pasture/systems"
	"github.com/pthm-cable/pasture/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (p *Pasture) flushTelemetry() {
	if !p.collector.ShouldFlush(p.tick) {
		return
	}

	stats := p.collector.Flush(p.tick, p.sample())
	perfStats := p.perfCollector.Stats()

	if p.statsCallback != nil {
		p.statsCallback(stats)
	}

	if p.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if p.outputManager != nil {
		if err := p.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := p.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Snapshot captures the complete pasture state.
func (p *Pasture) Snapshot() *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version:      telemetry.SnapshotVersion,
		RNGSeed:      p.seed,
		CanvasWidth:  p.cfg.Derived.CanvasW,
		CanvasHeight: p.cfg.Derived.CanvasH,
		Tick:         p.tick,
		Running:      p.running,
		Grass:        append([]systems.GrassPatch(nil), p.grass.Patches...),
		Stars:        append([]systems.Star(nil), p.stars.Stars...),
	}

	query := p.grazerFilter.Query()
	for query.Next() {
		id, pos, vel, gait, b := query.Get()
		s.Grazers = append(s.Grazers, telemetry.GrazerState{
			ID:         id.ID,
			X:          pos.X,
			Y:          pos.Y,
			VX:         vel.X,
			VY:         vel.Y,
			Grazing:    b.Grazing,
			Jumping:    b.Jumping,
			GrazeTimer: b.GrazeTimer,
			JumpTimer:  b.JumpTimer,
			Facing:     int8(b.Facing),
			GaitTimer:  gait.Timer,
			GaitFrame:  gait.Frame,
		})
	}
	return s
}

// ErrSnapshotCanvas is returned by Restore when a snapshot was taken on a
// canvas of a different size.
var ErrSnapshotCanvas = errors.New("snapshot canvas does not match config")

// Restore creates a pasture from a snapshot. Saved values are clamped into
// the running bounds; grazers beyond the population cap are dropped.
func Restore(s *telemetry.Snapshot, opts Options) (*Pasture, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if s.CanvasWidth != cfg.Derived.CanvasW || s.CanvasHeight != cfg.Derived.CanvasH {
		return nil, fmt.Errorf("%w: snapshot %gx%g, config %gx%g", ErrSnapshotCanvas,
			s.CanvasWidth, s.CanvasHeight, cfg.Derived.CanvasW, cfg.Derived.CanvasH)
	}
	opts.Seed = s.RNGSeed

	// Start empty, then replace every layer with the saved one
	restoreCfg := *cfg
	restoreCfg.Pasture.InitialGrazers = 0
	opts.Config = &restoreCfg
	p := New(opts)
	p.cfg = cfg

	p.tick = s.Tick
	p.running = s.Running
	p.grass = systems.RestoreGrassField(cfg, s.Grass)
	p.stars = systems.RestoreStarField(s.Stars)

	bounds := systems.BoundsFromConfig(cfg)
	for _, g := range s.Grazers {
		if p.population >= cfg.Pasture.MaxGrazers {
			slog.Warn("snapshot exceeds population cap", "dropped", len(s.Grazers)-p.population)
			break
		}
		pos, vel, b := restoreGrazer(g, bounds)
		p.grazerMapper.NewEntity(
			&components.Grazer{ID: g.ID},
			&pos,
			&vel,
			&components.Gait{Timer: g.GaitTimer, Frame: g.GaitFrame & 1},
			&b,
		)
		p.population++
		if g.ID >= p.nextID {
			p.nextID = g.ID + 1
		}
	}
	p.refreshCounters()

	slog.Info("pasture restored", "tick", p.tick, "grazers", p.population)
	return p, nil
}

// restoreGrazer rebuilds one grazer's components inside bounds. A grazer
// saved below the ground line lands on it at rest.
func restoreGrazer(g telemetry.GrazerState, bounds systems.Bounds) (components.Position, components.Velocity, components.Behavior) {
	pos := components.Position{
		X: min(bounds.MaxX, max(bounds.MinX, g.X)),
		Y: g.Y,
	}
	vel := components.Velocity{X: g.VX, Y: g.VY}
	b := components.Behavior{
		Grazing:    g.Grazing,
		Jumping:    g.Jumping && !g.Grazing,
		GrazeTimer: g.GrazeTimer,
		JumpTimer:  g.JumpTimer,
		Facing:     components.Facing(g.Facing),
	}
	if pos.Y >= bounds.BaseY {
		pos.Y = bounds.BaseY
		vel.Y = 0
		b.Jumping = false
	}
	if b.Facing != components.FacingLeft && b.Facing != components.FacingRight {
		b.Facing = components.FacingOf(vel.X)
	}
	return pos, vel, b
}
