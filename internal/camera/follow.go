package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/strider/internal/collision"
	"github.com/Versifine/strider/internal/mathx"
)

// Caster is the slice of the collision world the camera needs: sweeping a
// sphere back from the follow point to find obstructions.
type Caster interface {
	CastSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64) []collision.Hit
}

// FollowTarget is what the camera orbits. Forward seeds the orbit heading
// when the target is (re)assigned; up defines the orbit plane.
type FollowTarget interface {
	FollowPoint() (pos, forward, up mgl64.Vec3)
}

// FollowCamera orbits a target at a smoothed distance, zooms, and pulls in
// ahead of obstructing geometry. All smoothing uses exponential damping, so
// a zero sharpness freezes the corresponding quantity.
type FollowCamera struct {
	tuning Tuning
	caster Caster
	target FollowTarget

	planarDirection mgl64.Vec3
	pitch           float64
	rotation        mgl64.Quat

	followPosition  mgl64.Vec3
	targetDistance  float64
	currentDistance float64
	obstructed      bool

	position mgl64.Vec3

	ignored map[collision.BoxID]struct{}
}

func NewFollowCamera(tuning Tuning, caster Caster) *FollowCamera {
	return &FollowCamera{
		tuning:          tuning,
		caster:          caster,
		planarDirection: mgl64.Vec3{0, 0, 1},
		pitch:           tuning.DefaultPitchAngle,
		rotation:        mgl64.QuatIdent(),
		targetDistance:  tuning.DefaultDistance,
		currentDistance: tuning.DefaultDistance,
		ignored:         make(map[collision.BoxID]struct{}),
	}
}

func (c *FollowCamera) SetTuning(tuning Tuning) {
	c.tuning = tuning
	c.targetDistance = clamp(c.targetDistance, tuning.MinDistance, tuning.MaxDistance)
	c.pitch = clamp(c.pitch, tuning.MinPitchAngle, tuning.MaxPitchAngle)
}

// SetFollowTarget assigns the subject and snaps the orbit to it: heading
// from the target's forward, position and distances reset, no smoothing.
func (c *FollowCamera) SetFollowTarget(target FollowTarget) {
	c.target = target
	pos, forward, up := target.FollowPoint()

	planar := mathx.PlanarDirection(forward, up)
	if !mathx.NearlyZeroVec(planar) {
		c.planarDirection = planar
	}
	c.followPosition = pos
	c.targetDistance = clamp(c.targetDistance, c.tuning.MinDistance, c.tuning.MaxDistance)
	c.currentDistance = c.targetDistance
	c.rotation = mathx.LookRotation(c.planarDirection, mathx.Radians(c.pitch))
}

// IgnoreCollider excludes a collider from obstruction checks, typically the
// one attached to the follow target itself.
func (c *FollowCamera) IgnoreCollider(id collision.BoxID) {
	c.ignored[id] = struct{}{}
}

// Update advances the camera by one frame: orbit rotation, zoom, follow
// smoothing, obstruction handling, and final placement.
func (c *FollowCamera) Update(lookX, lookY, zoom, dt float64) {
	if c.target == nil {
		return
	}
	anchor, _, up := c.target.FollowPoint()

	if c.tuning.InvertX {
		lookX = -lookX
	}
	if c.tuning.InvertY {
		lookY = -lookY
	}

	// Orbit: yaw the planar heading around the target's up axis, then tilt.
	yaw := mgl64.QuatRotate(mathx.Radians(lookX*c.tuning.RotationSpeed), up)
	planar := mathx.PlanarDirection(yaw.Rotate(c.planarDirection), up)
	if !mathx.NearlyZeroVec(planar) {
		c.planarDirection = planar
	}
	c.pitch = clamp(c.pitch-lookY*c.tuning.RotationSpeed, c.tuning.MinPitchAngle, c.tuning.MaxPitchAngle)

	targetRotation := mathx.LookRotation(c.planarDirection, mathx.Radians(c.pitch))
	c.rotation = mathx.DampQuat(c.rotation, targetRotation, c.tuning.RotationSharpness, dt)

	// Zoom. While obstructed the visible distance is what the player sees,
	// so zooming starts from there rather than from the pre-obstruction goal.
	if zoom != 0 {
		if c.obstructed {
			c.targetDistance = c.currentDistance
		}
		c.targetDistance = clamp(c.targetDistance+zoom*c.tuning.ZoomSpeed, c.tuning.MinDistance, c.tuning.MaxDistance)
	}

	c.followPosition = mathx.DampVec3(c.followPosition, anchor, c.tuning.FollowingSharpness, dt)

	// Obstruction: sweep a sphere back along the view ray and pull the
	// camera in ahead of the nearest blocker.
	obstructionDistance := c.targetDistance
	c.obstructed = false
	back := c.rotation.Rotate(mgl64.Vec3{0, 0, 1}).Mul(-1)
	for _, hit := range c.caster.CastSphere(c.followPosition, c.tuning.ObstructionRadius, back, c.targetDistance) {
		if _, skip := c.ignored[hit.Box]; skip {
			continue
		}
		if hit.Distance <= 0 {
			continue
		}
		obstructionDistance = hit.Distance
		c.obstructed = true
		break
	}
	if c.obstructed {
		c.currentDistance = mathx.Damp(c.currentDistance, obstructionDistance, c.tuning.ObstructionSharpness, dt)
	} else {
		c.currentDistance = mathx.Damp(c.currentDistance, c.targetDistance, c.tuning.DistanceMovementSharpness, dt)
	}

	forward := c.rotation.Rotate(mgl64.Vec3{0, 0, 1})
	right := c.rotation.Rotate(mgl64.Vec3{1, 0, 0})
	camUp := c.rotation.Rotate(mgl64.Vec3{0, 1, 0})
	c.position = c.followPosition.
		Sub(forward.Mul(c.currentDistance)).
		Add(right.Mul(c.tuning.FramingOffset.X())).
		Add(camUp.Mul(c.tuning.FramingOffset.Y()))
}

func (c *FollowCamera) Position() mgl64.Vec3 { return c.position }

func (c *FollowCamera) Rotation() mgl64.Quat { return c.rotation }

func (c *FollowCamera) Forward() mgl64.Vec3 {
	return c.rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Distance is the current eye-to-subject distance after obstruction.
func (c *FollowCamera) Distance() float64 { return c.currentDistance }

func (c *FollowCamera) Obstructed() bool { return c.obstructed }
