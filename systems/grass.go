package systems

import (
	"math/rand"

	"github.com/pthm-cable/pasture/config"
)

// MaxGrassStage is the fully grown stage. Grass never decays.
const MaxGrassStage = 3

// GrassPatch is a fixed tuft of grass with a discrete growth stage.
type GrassPatch struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Stage int     `json:"stage"` // 0..MaxGrassStage
	Timer float64 `json:"timer"` // ticks until the next growth step
}

// GrassField holds the decorative grass layer.
type GrassField struct {
	Patches []GrassPatch

	growth config.Range
}

// NewGrassField lays out patches along the ground line. Each grid slot is
// kept with probability cfg.Grass.Density.
func NewGrassField(cfg *config.Config, rng *rand.Rand) *GrassField {
	gc := cfg.Grass
	groundY := float64(int(cfg.Derived.GroundY))

	gf := &GrassField{growth: gc.GrowthTimer}
	for x := 0.0; x < cfg.Derived.CanvasW; x += gc.Spacing {
		if rng.Float64() >= gc.Density {
			continue
		}
		gf.Patches = append(gf.Patches, GrassPatch{
			X:     x,
			Y:     groundY + rng.Float64()*gc.HeightJitter,
			Stage: rng.Intn(MaxGrassStage + 1),
			Timer: gc.InitialTimer.Draw(rng),
		})
	}
	return gf
}

// RestoreGrassField rebuilds a field from saved patches, clamping stages
// into 0..MaxGrassStage.
func RestoreGrassField(cfg *config.Config, patches []GrassPatch) *GrassField {
	gf := &GrassField{growth: cfg.Grass.GrowthTimer}
	gf.Patches = append(gf.Patches, patches...)
	for i := range gf.Patches {
		gf.Patches[i].Stage = min(MaxGrassStage, max(0, gf.Patches[i].Stage))
	}
	return gf
}

// Update advances every patch's growth timer by one tick.
func (gf *GrassField) Update(rng *rand.Rand) {
	for i := range gf.Patches {
		g := &gf.Patches[i]
		g.Timer--
		if g.Timer <= 0 {
			if g.Stage < MaxGrassStage {
				g.Stage++
			}
			g.Timer = gf.growth.Draw(rng)
		}
	}
}

// MeanStage returns the average growth stage, 0 for an empty field.
func (gf *GrassField) MeanStage() float64 {
	if len(gf.Patches) == 0 {
		return 0
	}
	sum := 0
	for _, g := range gf.Patches {
		sum += g.Stage
	}
	return float64(sum) / float64(len(gf.Patches))
}
