// Package telemetry provides pasture activity tracking, performance timing and
// structured output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// World clock at window end
	Hour  int    `csv:"hour"`
	Phase string `csv:"phase"`
	Day   bool   `csv:"day"`

	// Population at window end
	Grazers  int `csv:"grazers"`
	Grazing  int `csv:"grazing"`
	Airborne int `csv:"airborne"`

	// Control events during window
	Adds     int `csv:"adds"`
	Rejected int `csv:"rejected"`
	Clears   int `csv:"clears"`

	// Behavior events during window
	Jumps            int `csv:"jumps"`
	Landings         int `csv:"landings"`
	ModeToggles      int `csv:"mode_toggles"`
	DirectionChanges int `csv:"direction_changes"`

	// Share of grazer-ticks spent grazing
	GrazingFraction float64 `csv:"grazing_fraction"`

	// Horizontal speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Decorative layer
	GrassMeanStage     float64 `csv:"grass_mean_stage"`
	StarMeanBrightness float64 `csv:"star_mean_brightness"`
}

// Summary holds the mean, spread and percentiles of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes a Summary. Returns the zero Summary for an empty sample.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("hour", s.Hour),
		slog.String("phase", s.Phase),
		slog.Bool("day", s.Day),
		slog.Int("grazers", s.Grazers),
		slog.Int("grazing", s.Grazing),
		slog.Int("airborne", s.Airborne),
		slog.Int("adds", s.Adds),
		slog.Int("rejected", s.Rejected),
		slog.Int("clears", s.Clears),
		slog.Int("jumps", s.Jumps),
		slog.Int("landings", s.Landings),
		slog.Int("mode_toggles", s.ModeToggles),
		slog.Int("direction_changes", s.DirectionChanges),
		slog.Float64("grazing_fraction", s.GrazingFraction),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("grass_mean_stage", s.GrassMeanStage),
		slog.Float64("star_mean_brightness", s.StarMeanBrightness),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"hour", s.Hour,
		"phase", s.Phase,
		"grazers", s.Grazers,
		"grazing", s.Grazing,
		"airborne", s.Airborne,
		"adds", s.Adds,
		"rejected", s.Rejected,
		"clears", s.Clears,
		"jumps", s.Jumps,
		"landings", s.Landings,
		"mode_toggles", s.ModeToggles,
		"direction_changes", s.DirectionChanges,
		"grazing_fraction", s.GrazingFraction,
		"speed_mean", s.SpeedMean,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"grass_mean_stage", s.GrassMeanStage,
		"star_mean_brightness", s.StarMeanBrightness,
	)
}
