package components

// Mode is a grazer's current activity, derived from its behavior flags.
type Mode uint8

const (
	ModeWalking Mode = iota
	ModeGrazing
	ModeJumping
)

// String returns the display name for a Mode.
func (m Mode) String() string {
	names := ModeNames()
	if int(m) < len(names) {
		return names[m]
	}
	return "Unknown"
}

// ModeNames returns the display names for all modes.
// The order matches the Mode constants.
func ModeNames() []string {
	return []string{"Walking", "Grazing", "Jumping"}
}

// ModeCount returns the number of modes.
func ModeCount() int {
	return len(ModeNames())
}

// Mode reports the activity the flags describe.
func (b *Behavior) Mode() Mode {
	switch {
	case b.Grazing:
		return ModeGrazing
	case b.Jumping:
		return ModeJumping
	}
	return ModeWalking
}

// String returns "left" or "right".
func (f Facing) String() string {
	if f == FacingRight {
		return "right"
	}
	return "left"
}

// FieldDescriptor describes a herd statistic for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float32 // Minimum value (for bars)
	Max    float32 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
	Group  string  // Logical grouping
}

// HerdFieldDescriptors returns metadata for the herd summary panel.
func HerdFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "population", Label: "Cows", Format: "%.0f", Group: "herd"},
		{ID: "walking", Label: "Walking", Format: "%.0f", Group: "herd"},
		{ID: "grazing", Label: "Grazing", Format: "%.0f", Group: "herd"},
		{ID: "jumping", Label: "Jumping", Format: "%.0f", Group: "herd"},
		{ID: "grazing_fraction", Label: "Grazing %", Min: 0, Max: 1, IsBar: true, Group: "herd"},
		{ID: "mean_speed", Label: "Speed", Format: "%.2f", Group: "motion"},
		{ID: "airborne", Label: "Airborne", Format: "%.0f", Group: "motion"},
		{ID: "grass_stage", Label: "Grass", Min: 0, Max: 3, IsBar: true, Group: "scenery"},
		{ID: "star_brightness", Label: "Stars", Min: 0, Max: 1, IsBar: true, Group: "scenery"},
	}
}
