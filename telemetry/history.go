package telemetry

import "math"

// HistorySize is the number of stats windows kept for graphs.
const HistorySize = 120

// Series indices into History.
const (
	SeriesGrazers = iota
	SeriesGrazingFraction
	SeriesJumps
	SeriesSpeed
	SeriesGrass
	SeriesStars
	NumSeries
)

// SeriesNames are the legend labels, indexed by series.
var SeriesNames = [NumSeries]string{
	"Cows",
	"Grazing",
	"Jumps",
	"Speed",
	"Grass",
	"Stars",
}

// History keeps the most recent stats windows as per-series ring buffers.
type History struct {
	values [NumSeries][HistorySize]float64
	index  int
	count  int
}

// Record appends one stats window.
func (h *History) Record(s WindowStats) {
	i := h.index
	h.values[SeriesGrazers][i] = float64(s.Grazers)
	h.values[SeriesGrazingFraction][i] = s.GrazingFraction
	h.values[SeriesJumps][i] = float64(s.Jumps)
	h.values[SeriesSpeed][i] = s.SpeedMean
	h.values[SeriesGrass][i] = s.GrassMeanStage
	h.values[SeriesStars][i] = s.StarMeanBrightness

	h.index = (h.index + 1) % HistorySize
	if h.count < HistorySize {
		h.count++
	}
}

// Len returns the number of recorded windows.
func (h *History) Len() int {
	return h.count
}

// Series returns one series oldest first, appended to dst.
func (h *History) Series(series int, dst []float64) []float64 {
	dst = dst[:0]
	for i := 0; i < h.count; i++ {
		idx := (h.index - h.count + i + HistorySize) % HistorySize
		dst = append(dst, h.values[series][idx])
	}
	return dst
}

// Latest returns the newest value of a series, or 0 when empty.
func (h *History) Latest(series int) float64 {
	if h.count == 0 {
		return 0
	}
	return h.values[series][(h.index-1+HistorySize)%HistorySize]
}

// Range returns the padded min and max of the given series. With no data,
// or a flat line, it returns a unit range around the value.
func (h *History) Range(series ...int) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	for _, s := range series {
		for i := 0; i < h.count; i++ {
			v := h.values[s][i]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if min > max {
		return 0, 1
	}
	if min == max {
		return min - 0.5, max + 0.5
	}
	pad := (max - min) * 0.1
	return min - pad, max + pad
}
