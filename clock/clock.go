// Package clock derives the pasture's time of day from wall-clock time in a
// fixed zone.
package clock

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"
	_ "time/tzdata" // the zone must resolve on hosts without a zoneinfo database
)

// ZoneName is the pasture's reference time zone. Not configurable.
const ZoneName = "America/Los_Angeles"

// Behavior day window: grazers use their day profile when
// DayStartHour <= hour < DayEndHour.
const (
	DayStartHour = 6
	DayEndHour   = 20
)

// Palette phase boundaries, independent of the behavior window.
const (
	dawnStartHour = 5
	fullDayHour   = 7
	duskStartHour = 18
	nightHour     = 21
)

// Phase is one of the four sky palettes.
type Phase int

const (
	PhaseNight Phase = iota
	PhaseDawn
	PhaseDay
	PhaseDusk
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseNight:
		return "night"
	case PhaseDawn:
		return "dawn"
	case PhaseDay:
		return "day"
	case PhaseDusk:
		return "dusk"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Palette is a sky/ground color pair.
type Palette struct {
	Sky    color.RGBA
	Ground color.RGBA
}

var palettes = [...]Palette{
	PhaseNight: {Sky: rgb(0x19, 0x19, 0x70), Ground: rgb(0x22, 0x8B, 0x22)},
	PhaseDawn:  {Sky: rgb(0xFF, 0xB3, 0x47), Ground: rgb(0x98, 0xFB, 0x98)},
	PhaseDay:   {Sky: rgb(0x87, 0xCE, 0xEB), Ground: rgb(0x90, 0xEE, 0x90)},
	PhaseDusk:  {Sky: rgb(0xFF, 0x63, 0x47), Ground: rgb(0x90, 0xEE, 0x90)},
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Palette returns the colors for the phase.
func (p Phase) Palette() Palette {
	return palettes[p]
}

// PhaseForHour selects the palette phase for an hour of day.
// Hours outside 0..23 are wrapped.
func PhaseForHour(hour int) Phase {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour >= fullDayHour && hour < duskStartHour:
		return PhaseDay
	case hour >= dawnStartHour && hour < fullDayHour:
		return PhaseDawn
	case hour >= duskStartHour && hour < nightHour:
		return PhaseDusk
	default:
		return PhaseNight
	}
}

// IsDaytime reports whether grazers use their day profile at this hour.
func IsDaytime(hour int) bool {
	hour = ((hour % 24) + 24) % 24
	return hour >= DayStartHour && hour < DayEndHour
}

// Source supplies the current instant.
type Source interface {
	Now() time.Time
}

// SystemSource reads the system clock.
type SystemSource struct{}

// Now implements Source.
func (SystemSource) Now() time.Time { return time.Now() }

// FixedHour is a Source pinned to a given hour of day in the pasture zone.
type FixedHour int

// Now implements Source.
func (h FixedHour) Now() time.Time {
	loc := Location()
	return time.Date(2024, time.June, 1, int(h), 0, 0, 0, loc)
}

// Reading is the world clock sampled at one instant.
type Reading struct {
	Hour  int
	Phase Phase
	Day   bool
	Label string // e.g. "3:04 PM"
}

// Clock converts a Source into pasture readings.
type Clock struct {
	src Source
	loc *time.Location
}

var location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		// tzdata is embedded, so this only happens on a broken build
		slog.Error("loading pasture time zone", "zone", ZoneName, "error", err)
		return time.FixedZone("PST", -8*60*60)
	}
	return loc
}

// Location returns the pasture's reference zone.
func Location() *time.Location {
	return location
}

// New creates a clock reading from src. A nil src uses the system clock.
func New(src Source) *Clock {
	if src == nil {
		src = SystemSource{}
	}
	return &Clock{src: src, loc: location}
}

// Read samples the source.
func (c *Clock) Read() Reading {
	t := c.src.Now().In(c.loc)
	hour := t.Hour()
	return Reading{
		Hour:  hour,
		Phase: PhaseForHour(hour),
		Day:   IsDaytime(hour),
		Label: t.Format("3:04 PM"),
	}
}
