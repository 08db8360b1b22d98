package game

import (
	"math"

	"github.com/pthm-cable/pasture/clock"
	"github.com/pthm-cable/pasture/components"
)

// GrazerView is a read-only copy of one grazer for rendering and inspection.
type GrazerView struct {
	ID         uint32            `inspect:"label"`
	X          float64           `inspect:"label,fmt:%.1f"`
	Y          float64           `inspect:"label,fmt:%.1f"`
	VX         float64           `inspect:"bar,max:4,signed"`
	VY         float64           `inspect:"bar,max:12,signed"`
	Grazing    bool              `inspect:"bool"`
	Jumping    bool              `inspect:"bool"`
	Facing     components.Facing `inspect:"facing"`
	GrazeTimer float64           `inspect:"timer"`
	JumpTimer  float64           `inspect:"timer"`
	Frame      int               `inspect:"skip"`
}

// Mode returns the grazer's activity.
func (v GrazerView) Mode() components.Mode {
	b := components.Behavior{Grazing: v.Grazing, Jumping: v.Jumping}
	return b.Mode()
}

// Airborne reports whether the grazer is above the ground line.
func (v GrazerView) Airborne(baseY float64) bool {
	return v.Y < baseY
}

// Grazers appends a view of every grazer to dst and returns it.
// Pass a reused slice to avoid allocating each frame.
func (p *Pasture) Grazers(dst []GrazerView) []GrazerView {
	dst = dst[:0]
	query := p.grazerFilter.Query()
	for query.Next() {
		id, pos, vel, gait, b := query.Get()
		dst = append(dst, GrazerView{
			ID:      id.ID,
			X:       pos.X,
			Y:       pos.Y,
			VX:      vel.X,
			VY:      vel.Y,
			Grazing: b.Grazing,
			Jumping: b.Jumping,
			Facing:  b.Facing,
			Frame:   gait.Frame,

			GrazeTimer: b.GrazeTimer,
			JumpTimer:  b.JumpTimer,
		})
	}
	return dst
}

// Counters are the two values shown beside the pasture.
type Counters struct {
	Population int
	Clock      string
}

// Counters returns the current counter values.
func (p *Pasture) Counters() Counters {
	return Counters{Population: p.population, Clock: p.reading.Label}
}

// GrazerAt returns the topmost grazer whose sprite covers canvas point
// (x, y). Grazers drawn later are on top.
func (p *Pasture) GrazerAt(x, y float64) (GrazerView, bool) {
	w, h := p.cfg.Sprite.Width, p.cfg.Sprite.Height
	var hit GrazerView
	found := false
	for _, v := range p.Grazers(nil) {
		if x >= v.X && x < v.X+w && y >= v.Y && y < v.Y+h {
			hit = v
			found = true
		}
	}
	return hit, found
}

// Grazer returns the grazer with the given ID.
func (p *Pasture) Grazer(id uint32) (GrazerView, bool) {
	for _, v := range p.Grazers(nil) {
		if v.ID == id {
			return v, true
		}
	}
	return GrazerView{}, false
}

// HerdSummary is the instantaneous state shown in the herd stats panel.
type HerdSummary struct {
	Population     int
	Walking        int
	Grazing        int
	Jumping        int
	Airborne       int
	MeanSpeed      float64 // mean |vx|
	GrassStage     float64
	StarBrightness float64
	Phase          string
	Palette        clock.Palette
}

// GrazingFraction returns Grazing / Population, 0 for an empty pasture.
func (s HerdSummary) GrazingFraction() float64 {
	if s.Population == 0 {
		return 0
	}
	return float64(s.Grazing) / float64(s.Population)
}

// Value returns the statistic named by a components.FieldDescriptor ID.
func (s HerdSummary) Value(id string) (float64, bool) {
	switch id {
	case "population":
		return float64(s.Population), true
	case "walking":
		return float64(s.Walking), true
	case "grazing":
		return float64(s.Grazing), true
	case "jumping":
		return float64(s.Jumping), true
	case "grazing_fraction":
		return s.GrazingFraction(), true
	case "mean_speed":
		return s.MeanSpeed, true
	case "airborne":
		return float64(s.Airborne), true
	case "grass_stage":
		return s.GrassStage, true
	case "star_brightness":
		return s.StarBrightness, true
	}
	return 0, false
}

// Summary computes the herd summary for the current state.
func (p *Pasture) Summary() HerdSummary {
	s := HerdSummary{
		Population:     p.population,
		GrassStage:     p.grass.MeanStage(),
		StarBrightness: p.stars.MeanBrightness(),
		Phase:          p.reading.Phase.String(),
		Palette:        p.reading.Phase.Palette(),
	}

	baseY := p.cfg.Derived.BaseY
	var speed float64
	for _, v := range p.Grazers(nil) {
		switch v.Mode() {
		case components.ModeGrazing:
			s.Grazing++
		case components.ModeJumping:
			s.Jumping++
		default:
			s.Walking++
		}
		if v.Airborne(baseY) {
			s.Airborne++
		}
		speed += math.Abs(v.VX)
	}
	if n := s.Walking + s.Grazing + s.Jumping; n > 0 {
		s.MeanSpeed = speed / float64(n)
	}
	return s
}
