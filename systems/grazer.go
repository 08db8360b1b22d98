package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/pasture/components"
	"github.com/pthm-cable/pasture/config"
)

// Bounds describes the ground line and horizontal range grazers live in.
type Bounds struct {
	BaseY float64 // resting y; grazers never go below it
	MinX  float64
	MaxX  float64
}

// BoundsFromConfig derives grazer bounds from the canvas layout.
func BoundsFromConfig(cfg *config.Config) Bounds {
	return Bounds{
		BaseY: cfg.Derived.BaseY,
		MinX:  cfg.Derived.MinX,
		MaxX:  cfg.Derived.MaxX,
	}
}

// GrazerEnv is the read-only context for one grazer update.
type GrazerEnv struct {
	IsDay   bool
	Bounds  Bounds
	Physics *config.PhysicsConfig
	Profile *config.BehaviorProfile
	Rng     *rand.Rand
}

// GrazerEvents reports transitions that happened during an update.
type GrazerEvents struct {
	ModeToggled  bool
	JumpStarted  bool
	Landed       bool
	DirectionNew bool
}

// InitGrazer fills fresh grazer components using the profile for the current
// time of day.
func InitGrazer(pos *components.Position, vel *components.Velocity, gait *components.Gait, b *components.Behavior, x float64, env GrazerEnv) {
	p := env.Profile
	rng := env.Rng

	pos.X = x
	pos.Y = env.Bounds.BaseY

	vel.X = randomSign(rng) * p.WanderSpeed.Draw(rng)
	vel.Y = 0

	*gait = components.Gait{}
	*b = components.Behavior{
		GrazeTimer: p.InitialGrazeTimer.Draw(rng),
		JumpTimer:  p.InitialJumpTimer.Draw(rng),
		Facing:     components.FacingOf(vel.X),
	}
	b.SetGrazing(rng.Float64() < p.StartGrazingChance)
}

// UpdateGrazer advances one grazer by one tick.
// Grazers do not interact; the result depends only on the grazer's own
// components and env.
func UpdateGrazer(pos *components.Position, vel *components.Velocity, gait *components.Gait, b *components.Behavior, env GrazerEnv) GrazerEvents {
	var ev GrazerEvents
	p := env.Profile
	phys := env.Physics
	rng := env.Rng
	baseY := env.Bounds.BaseY

	// Gait cycles faster by day
	gait.Timer++
	if gait.Timer > p.AnimPeriod {
		gait.Frame = (gait.Frame + 1) % 2
		gait.Timer = 0
	}

	// Sole mode transition: grazing <-> walking
	b.GrazeTimer--
	if b.GrazeTimer <= 0 {
		b.SetGrazing(!b.Grazing)
		if b.Grazing {
			b.GrazeTimer = p.GrazeBout.Draw(rng)
		} else {
			b.GrazeTimer = p.WalkBout.Draw(rng)
		}
		ev.ModeToggled = true
	}

	b.JumpTimer--
	if b.JumpTimer <= 0 && !b.Grazing && math.Abs(pos.Y-baseY) < phys.GroundTolerance {
		if b.StartJump() {
			vel.Y = -p.JumpVelocity.Draw(rng)
			b.JumpTimer = p.JumpTimer.Draw(rng)
			ev.JumpStarted = true
		}
	}

	if b.Grazing {
		settle(pos, vel, b, phys, baseY)
		return ev
	}

	pos.X += vel.X * p.SpeedMultiplier

	pos.Y += vel.Y
	vel.Y += phys.Gravity
	if pos.Y >= baseY {
		pos.Y = baseY
		vel.Y *= -phys.BounceDamping
		if math.Abs(vel.Y) < phys.BounceStop {
			vel.Y = 0
			if b.Jumping {
				ev.Landed = true
			}
			b.Land()
		}
	}

	reflect(pos, vel, b, env.Bounds)

	if rng.Float64() < p.DirectionChangeChance {
		vel.X = randomSign(rng) * p.WanderSpeed.Draw(rng)
		b.Facing = components.FacingOf(vel.X)
		ev.DirectionNew = true
	}

	return ev
}

// settle pulls a grazing grazer to the ground under reduced gravity and
// holds it there.
func settle(pos *components.Position, vel *components.Velocity, b *components.Behavior, phys *config.PhysicsConfig, baseY float64) {
	if pos.Y < baseY {
		vel.Y += phys.Gravity * phys.GrazingGravityFactor
		pos.Y += vel.Y
		if pos.Y >= baseY {
			pos.Y = baseY
			vel.Y = 0
		}
	} else {
		pos.Y = baseY
		vel.Y = 0
	}
	b.Land()
}

// reflect bounces a grazer off the horizontal margins.
// The position is clamped back inside so a reflected grazer cannot stay
// outside the margins for several ticks.
func reflect(pos *components.Position, vel *components.Velocity, b *components.Behavior, bounds Bounds) {
	switch {
	case pos.X < bounds.MinX:
		pos.X = bounds.MinX
		vel.X = math.Abs(vel.X)
	case pos.X > bounds.MaxX:
		pos.X = bounds.MaxX
		vel.X = -math.Abs(vel.X)
	default:
		return
	}
	b.Facing = components.FacingOf(vel.X)
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}
