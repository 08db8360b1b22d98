package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty", []float64{}, Summary{}},
		{"single", []float64{5}, Summary{Mean: 5, P10: 5, P50: 5, P90: 5}},
		{
			"one to ten",
			[]float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
			Summary{Mean: 5.5, Std: math.Sqrt(82.5 / 9), P10: 1, P50: 5, P90: 9},
		},
		{
			"constant",
			[]float64{2, 2, 2, 2},
			Summary{Mean: 2, Std: 0, P10: 2, P50: 2, P90: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if math.Abs(got.Mean-tt.want.Mean) > 1e-9 {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.want.Mean)
			}
			if math.Abs(got.Std-tt.want.Std) > 1e-9 {
				t.Errorf("Std = %v, want %v", got.Std, tt.want.Std)
			}
			if got.P10 != tt.want.P10 || got.P50 != tt.want.P50 || got.P90 != tt.want.P90 {
				t.Errorf("percentiles = (%v, %v, %v), want (%v, %v, %v)",
					got.P10, got.P50, got.P90, tt.want.P10, tt.want.P50, tt.want.P90)
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}
