package sim

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/strider/internal/collision"
	"github.com/Versifine/strider/internal/motion"
)

// Fraction of the capsule height the camera follow point sits at.
const eyeHeightFraction = 0.9

// State is a snapshot of the actor after a tick, safe to hand to render and
// debug code without holding the actor's lock.
type State struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Rotation    mgl64.Quat
	VisualScale mgl64.Vec3

	Grounded    bool
	FoundGround bool
	Crouching   bool
}

// Actor binds a movement controller to a collision world and owns the
// per-tick sequence: advance timers, probe grounding, integrate, sweep the
// body, then settle. All methods are safe for concurrent use.
type Actor struct {
	mu         sync.Mutex
	world      *collision.BoxWorld
	controller *motion.Controller

	position  mgl64.Vec3
	grounding collision.GroundingStatus
}

// actorBody exposes the world to the controller. It runs inside Tick while
// the actor's lock is held, so it must not lock.
type actorBody struct {
	a *Actor
}

func (b *actorBody) Grounding() collision.GroundingStatus {
	return b.a.grounding
}

func (b *actorBody) ForceUnground(seconds float64) {
	b.a.world.ForceUnground(seconds)
}

func (b *actorBody) SetCapsule(radius, height, offset float64) {
	b.a.world.SetCapsule(radius, height, offset)
}

func (b *actorBody) OverlapCapsule(radius, height, offset float64) []collision.BoxID {
	return b.a.world.OverlapCapsule(b.a.position, radius, height, offset)
}

func New(world *collision.BoxWorld, tuning motion.Tuning, spawn mgl64.Vec3) *Actor {
	a := &Actor{
		world:    world,
		position: spawn,
	}
	a.controller = motion.NewController(tuning, &actorBody{a: a})
	a.grounding = world.Grounding(spawn)
	return a
}

// Tick advances the simulation by dt and returns the resulting state. The
// grounding probe runs exactly once, before the controller consumes it, so
// every controller phase within a tick sees the same snapshot.
func (a *Actor) Tick(in motion.Intent, dt float64) State {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.world.Advance(dt)
	a.grounding = a.world.Grounding(a.position)

	a.controller.SetInputs(in)
	a.controller.IntegrateVelocity(dt)
	a.controller.IntegrateRotation(dt)

	next, sweep := a.world.Sweep(a.position, a.controller.Velocity().Mul(dt))
	a.position = next

	// Velocity into a blocked axis is spent, not banked.
	v := a.controller.Velocity()
	if sweep.BlockedX {
		v[0] = 0
	}
	if sweep.BlockedY {
		v[1] = 0
	}
	if sweep.BlockedZ {
		v[2] = 0
	}
	a.controller.SetVelocity(v)

	if sweep.HitWall && !a.grounding.IsStableOnGround {
		a.controller.ReportWallHit(sweep.WallNormal)
	}

	a.controller.AfterUpdate(dt)
	return a.stateLocked()
}

func (a *Actor) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *Actor) stateLocked() State {
	return State{
		Position:    a.position,
		Velocity:    a.controller.Velocity(),
		Rotation:    a.controller.Rotation(),
		VisualScale: a.controller.VisualScale(),
		Grounded:    a.grounding.IsStableOnGround,
		FoundGround: a.grounding.FoundAnyGround,
		Crouching:   a.controller.IsCrouching(),
	}
}

// FollowPoint implements the camera's target: eye position plus the actor's
// facing and up axes.
func (a *Actor) FollowPoint() (pos, forward, up mgl64.Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()

	eye := a.position
	eye[1] += a.world.Capsule().Height * eyeHeightFraction
	rot := a.controller.Rotation()
	return eye, rot.Rotate(mgl64.Vec3{0, 0, 1}), rot.Rotate(mgl64.Vec3{0, 1, 0})
}

// SetPosition teleports the actor, discarding its velocity.
func (a *Actor) SetPosition(pos mgl64.Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.position = pos
	a.controller.SetVelocity(mgl64.Vec3{})
	a.grounding = a.world.Grounding(pos)
}

// AddImpulse queues a velocity change applied on the next tick.
func (a *Actor) AddImpulse(v mgl64.Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.AddVelocity(v)
}

// ApplyTuning swaps movement parameters at runtime, e.g. on config reload.
func (a *Actor) ApplyTuning(tuning motion.Tuning) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.SetTuning(tuning)
}
