package telemetry

import (
	"math"
	"testing"
)

func TestCollector_WindowTicks(t *testing.T) {
	c := NewCollector(10, 1.0/60)
	if got := c.WindowDurationTicks(); got != 600 {
		t.Errorf("WindowDurationTicks = %d, want 600", got)
	}
	if c.ShouldFlush(599) {
		t.Error("ShouldFlush(599) = true before window end")
	}
	if !c.ShouldFlush(600) {
		t.Error("ShouldFlush(600) = false at window end")
	}

	tiny := NewCollector(0.001, 1.0/60)
	if got := tiny.WindowDurationTicks(); got != 1 {
		t.Errorf("tiny window = %d ticks, want 1", got)
	}
}

func TestCollector_FlushCountsAndResets(t *testing.T) {
	c := NewCollector(1, 0.5)

	c.RecordAdd()
	c.RecordAdd()
	c.RecordRejected()
	c.RecordJump()
	c.RecordLanding()
	c.RecordModeToggle()
	c.RecordDirectionChange()
	c.RecordClear()
	for i := 0; i < 4; i++ {
		c.RecordGrazerTick(i%2 == 0)
	}

	stats := c.Flush(2, Sample{Hour: 13, Phase: "day", Day: true, Grazers: 2, Speeds: []float64{1, 3}})

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 2 {
		t.Errorf("window = [%d, %d], want [0, 2]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.SimTimeSec != 1 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}
	if stats.Adds != 2 || stats.Rejected != 1 || stats.Clears != 1 {
		t.Errorf("control counts = %d/%d/%d, want 2/1/1", stats.Adds, stats.Rejected, stats.Clears)
	}
	if stats.Jumps != 1 || stats.Landings != 1 || stats.ModeToggles != 1 || stats.DirectionChanges != 1 {
		t.Errorf("behavior counts = %+v", stats)
	}
	if stats.GrazingFraction != 0.5 {
		t.Errorf("GrazingFraction = %v, want 0.5", stats.GrazingFraction)
	}
	if math.Abs(stats.SpeedMean-2) > 1e-9 {
		t.Errorf("SpeedMean = %v, want 2", stats.SpeedMean)
	}

	next := c.Flush(4, Sample{})
	if next.WindowStartTick != 2 {
		t.Errorf("next window start = %d, want 2", next.WindowStartTick)
	}
	if next.Adds != 0 || next.Jumps != 0 || next.GrazingFraction != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
