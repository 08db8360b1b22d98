package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	chirpDuration = 300 * time.Millisecond
	chirpAttack   = 0.05 // seconds of linear fade-in
)

// ChirpGenerator streams the short chirp played when a cow is fed. Pitch
// sweeps 200 Hz up to 300 Hz and settles at 250 Hz; the level rises quickly
// then decays exponentially to a tenth of its peak.
type ChirpGenerator struct {
	sr      beep.SampleRate
	peak    float64
	pos     int
	samples int
	phase   float64
}

// NewChirp creates a chirp at the given peak volume.
func NewChirp(sr beep.SampleRate, peak float64) *ChirpGenerator {
	return &ChirpGenerator{
		sr:      sr,
		peak:    peak,
		samples: sr.N(chirpDuration),
	}
}

// Len returns the chirp length in samples.
func (g *ChirpGenerator) Len() int { return g.samples }

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		sample := chirpGain(t, g.peak) * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += chirpFrequency(t) / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// chirpFrequency is the pitch in Hz at t seconds.
func chirpFrequency(t float64) float64 {
	switch {
	case t < 0.1:
		return expRamp(200, 300, t/0.1)
	case t < 0.2:
		return expRamp(300, 250, (t-0.1)/0.1)
	default:
		return 250
	}
}

// chirpGain is the amplitude at t seconds for a chirp peaking at peak.
func chirpGain(t, peak float64) float64 {
	end := chirpDuration.Seconds()
	switch {
	case peak <= 0:
		return 0
	case t < chirpAttack:
		return peak * t / chirpAttack
	case t < end:
		return expRamp(peak, peak*0.1, (t-chirpAttack)/(end-chirpAttack))
	default:
		return 0
	}
}

// expRamp interpolates exponentially from a to b; both must be positive.
func expRamp(a, b, frac float64) float64 {
	return a * math.Pow(b/a, frac)
}
