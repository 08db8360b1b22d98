package systems

import (
	"math/rand"

	"github.com/pthm-cable/pasture/config"
)

// Star brightness bounds.
const (
	MinStarBrightness = 0.1
	MaxStarBrightness = 1.0
)

// Star is a fixed point of the night sky.
type Star struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Brightness   float64 `json:"brightness"` // MinStarBrightness..MaxStarBrightness
	TwinkleSpeed float64 `json:"twinkle_speed"`
}

// StarField holds the night sky layer.
type StarField struct {
	Stars []Star
}

// NewStarField scatters stars over the upper part of the sky.
func NewStarField(cfg *config.Config, rng *rand.Rand) *StarField {
	sc := cfg.Stars
	sf := &StarField{Stars: make([]Star, 0, sc.Count)}
	for i := 0; i < sc.Count; i++ {
		sf.Stars = append(sf.Stars, Star{
			X:            rng.Float64() * cfg.Derived.CanvasW,
			Y:            rng.Float64() * cfg.Derived.CanvasH * sc.SkyFraction,
			Brightness:   clampBrightness(sc.Brightness.Draw(rng)),
			TwinkleSpeed: sc.TwinkleSpeed.Draw(rng),
		})
	}
	return sf
}

// RestoreStarField rebuilds a sky from saved stars, clamping brightness.
func RestoreStarField(stars []Star) *StarField {
	sf := &StarField{Stars: append([]Star(nil), stars...)}
	for i := range sf.Stars {
		sf.Stars[i].Brightness = clampBrightness(sf.Stars[i].Brightness)
	}
	return sf
}

// MeanBrightness returns the average brightness, 0 for an empty sky.
func (sf *StarField) MeanBrightness() float64 {
	if len(sf.Stars) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sf.Stars {
		sum += s.Brightness
	}
	return sum / float64(len(sf.Stars))
}

// Update applies one step of the twinkle random walk to every star.
func (sf *StarField) Update(rng *rand.Rand) {
	for i := range sf.Stars {
		s := &sf.Stars[i]
		s.Brightness = clampBrightness(s.Brightness + (rng.Float64()-0.5)*s.TwinkleSpeed)
	}
}

func clampBrightness(b float64) float64 {
	return min(MaxStarBrightness, max(MinStarBrightness, b))
}
