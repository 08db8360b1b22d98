package telemetry

import (
	"github.com/guptarohit/asciigraph"
)

// Chart plots one history series as an ASCII line chart captioned with the
// series name. It returns "" until at least two windows are recorded.
func (h *History) Chart(series, width, height int) string {
	if h.count < 2 || series < 0 || series >= NumSeries {
		return ""
	}
	data := h.Series(series, nil)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(SeriesNames[series]),
	)
}
