package clock

import (
	"testing"
	"time"
)

func TestPhaseForHourCoversDay(t *testing.T) {
	want := map[int]Phase{
		0: PhaseNight, 4: PhaseNight,
		5: PhaseDawn, 6: PhaseDawn,
		7: PhaseDay, 12: PhaseDay, 17: PhaseDay,
		18: PhaseDusk, 20: PhaseDusk,
		21: PhaseNight, 23: PhaseNight,
	}

	counts := map[Phase]int{}
	for hour := 0; hour < 24; hour++ {
		p := PhaseForHour(hour)
		if p < PhaseNight || p > PhaseDusk {
			t.Fatalf("PhaseForHour(%d) = %v, not a palette phase", hour, p)
		}
		if w, ok := want[hour]; ok && p != w {
			t.Errorf("PhaseForHour(%d) = %v, want %v", hour, p, w)
		}
		// Deterministic for a fixed hour
		if again := PhaseForHour(hour); again != p {
			t.Errorf("PhaseForHour(%d) not deterministic: %v then %v", hour, p, again)
		}
		counts[p]++
	}

	wantCounts := map[Phase]int{PhaseNight: 8, PhaseDawn: 2, PhaseDay: 11, PhaseDusk: 3}
	for p, n := range wantCounts {
		if counts[p] != n {
			t.Errorf("%v covers %d hours, want %d", p, counts[p], n)
		}
	}
}

func TestDayFlagIndependentOfPalette(t *testing.T) {
	tests := []struct {
		hour  int
		day   bool
		phase Phase
	}{
		{2, false, PhaseNight},
		{5, false, PhaseDawn},
		{6, true, PhaseDawn},
		{12, true, PhaseDay},
		{19, true, PhaseDusk},
		{20, false, PhaseDusk},
		{21, false, PhaseNight},
	}
	for _, tt := range tests {
		if got := IsDaytime(tt.hour); got != tt.day {
			t.Errorf("IsDaytime(%d) = %v, want %v", tt.hour, got, tt.day)
		}
		if got := PhaseForHour(tt.hour); got != tt.phase {
			t.Errorf("PhaseForHour(%d) = %v, want %v", tt.hour, got, tt.phase)
		}
	}
}

func TestPalettesDistinct(t *testing.T) {
	seen := map[Palette]Phase{}
	for _, p := range []Phase{PhaseNight, PhaseDawn, PhaseDay, PhaseDusk} {
		pal := p.Palette()
		if other, dup := seen[pal]; dup {
			t.Errorf("%v and %v share a palette", p, other)
		}
		seen[pal] = p
	}
}

func TestFixedHourReading(t *testing.T) {
	c := New(FixedHour(2))
	r := c.Read()
	if r.Hour != 2 || r.Day || r.Phase != PhaseNight {
		t.Errorf("Read() = %+v, want hour 2 night", r)
	}
	if r.Label != "2:00 AM" {
		t.Errorf("Label = %q, want %q", r.Label, "2:00 AM")
	}

	r = New(FixedHour(12)).Read()
	if !r.Day || r.Phase != PhaseDay || r.Label != "12:00 PM" {
		t.Errorf("Read() = %+v, want noon day", r)
	}
}

type instant time.Time

func (i instant) Now() time.Time { return time.Time(i) }

func TestReadConvertsToZone(t *testing.T) {
	// 20:30 UTC is 13:30 in Los Angeles during daylight saving time
	utc := time.Date(2024, time.July, 4, 20, 30, 0, 0, time.UTC)
	r := New(instant(utc)).Read()
	if r.Hour != 13 {
		t.Errorf("Hour = %d, want 13", r.Hour)
	}
	if r.Label != "1:30 PM" {
		t.Errorf("Label = %q, want %q", r.Label, "1:30 PM")
	}
}
