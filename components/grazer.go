// Package components defines ECS components for the pasture.
package components

// Grazer identifies a pasture entity.
type Grazer struct {
	ID uint32
}

// Facing is the horizontal direction a grazer looks toward.
type Facing int8

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// FacingOf returns the facing for a horizontal velocity.
// Zero velocity counts as left, the sprite's native orientation.
func FacingOf(vx float64) Facing {
	if vx > 0 {
		return FacingRight
	}
	return FacingLeft
}

// Behavior holds a grazer's mode flags and mode timers.
// Grazing and Jumping are never both set; use SetGrazing and StartJump
// rather than writing the flags directly.
type Behavior struct {
	Grazing    bool
	Jumping    bool
	GrazeTimer float64 // ticks until the next grazing/walking toggle
	JumpTimer  float64 // ticks until the next jump attempt
	Facing     Facing
}

// SetGrazing switches grazing on or off. Grazing cancels a jump.
func (b *Behavior) SetGrazing(grazing bool) {
	b.Grazing = grazing
	if grazing {
		b.Jumping = false
	}
}

// StartJump marks the grazer as jumping. Returns false while grazing.
func (b *Behavior) StartJump() bool {
	if b.Grazing || b.Jumping {
		return false
	}
	b.Jumping = true
	return true
}

// Land clears the jumping flag.
func (b *Behavior) Land() {
	b.Jumping = false
}

// Gait holds the cosmetic two-frame walking animation.
type Gait struct {
	Timer int
	Frame int
}
