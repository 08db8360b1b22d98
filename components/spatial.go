package components

// Position represents an entity's canvas position (top-left of its sprite).
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in pixels per tick.
type Velocity struct {
	X, Y float64
}
