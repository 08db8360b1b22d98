package renderer

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/pasture/components"
	"github.com/pthm-cable/pasture/config"
	"github.com/pthm-cable/pasture/game"
	"github.com/pthm-cable/pasture/systems"
)

// Grass colors by growth stage.
var grassColors = [systems.MaxGrassStage + 1]uint32{0x228B22, 0x32CD32, 0x90EE90, 0xADFF2F}

// Scene draws one frame of the pasture.
type Scene struct {
	cfg    *config.Config
	views  []game.GrazerView
	warned bool
}

// NewScene creates a scene renderer for cfg's layout.
func NewScene(cfg *config.Config) *Scene {
	return &Scene{cfg: cfg}
}

// Draw renders p onto c: sky and ground, stars at night, grass, grazers.
func (s *Scene) Draw(c Canvas, p *game.Pasture) {
	d := s.cfg.Derived
	reading := p.Reading()
	pal := reading.Phase.Palette()

	c.Clear(black)
	c.FillRect(0, 0, d.CanvasW, d.GroundY, opaque(pal.Sky))
	c.FillRect(0, d.GroundY, d.CanvasW, d.CanvasH-d.GroundY, opaque(pal.Ground))

	if !reading.Day {
		s.drawStars(c, p.Stars())
	}
	s.drawGrass(c, p.Grass())

	if !c.HasSprite() {
		if !s.warned {
			slog.Error("grazer sprite unavailable, grazers will not be drawn")
			s.warned = true
		}
		return
	}
	s.views = p.Grazers(s.views)
	for _, g := range s.views {
		s.drawGrazer(c, g)
	}
}

func (s *Scene) drawStars(c Canvas, stars []systems.Star) {
	for _, st := range stars {
		x, y := math.Floor(st.X), math.Floor(st.Y)
		c.FillRect(x, y, 2, 2, withAlpha(white, st.Brightness))

		// Bright stars get a small cross
		if st.Brightness > 0.7 {
			halo := withAlpha(white, st.Brightness*0.5)
			c.FillRect(x-2, y, 2, 2, halo)
			c.FillRect(x+2, y, 2, 2, halo)
			c.FillRect(x, y-2, 2, 2, halo)
			c.FillRect(x, y+2, 2, 2, halo)
		}
	}
}

func (s *Scene) drawGrass(c Canvas, patches []systems.GrassPatch) {
	for _, g := range patches {
		col := hex(grassColors[g.Stage])
		c.FillRect(g.X, g.Y, 3, 8, col)
		c.FillRect(g.X+4, g.Y, 3, 6, col)
		if g.Stage > 1 {
			c.FillRect(g.X+2, g.Y-4, 2, 8, col)
		}
		if g.Stage > 2 {
			c.FillRect(g.X+1, g.Y-8, 4, 6, col)
		}
	}
}

func (s *Scene) drawGrazer(c Canvas, g game.GrazerView) {
	w, h := s.cfg.Sprite.Width, s.cfg.Sprite.Height
	baseY := s.cfg.Derived.BaseY

	c.DrawSprite(g.X, g.Y, w, h, g.Facing == components.FacingRight)

	if g.Airborne(baseY) {
		alpha := math.Max(0.1, 0.4-(baseY-g.Y)/50)
		c.FillRect(g.X+10, baseY+h-5, w-20, 8, withAlpha(black, alpha))
	}

	// Step glint on the second gait frame
	if g.Frame == 1 && !g.Grazing && !g.Airborne(baseY) {
		c.FillRect(g.X+math.Floor(w/2)-4, g.Y-2, 8, 2, withAlpha(white, 0.2))
	}
}
