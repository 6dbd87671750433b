package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/strider/internal/collision"
	"github.com/Versifine/strider/internal/mathx"
)

// How long grounding is suppressed after a jump, so liftoff is not
// immediately cancelled by re-snapping to the surface just left.
const jumpUngroundSeconds = 0.1

// Body is the collision-side surface the controller steers. The driver owns
// position integration; the controller only reads grounding and reshapes the
// capsule.
type Body interface {
	// Grounding returns the grounding snapshot for the current tick.
	Grounding() collision.GroundingStatus

	// ForceUnground suppresses grounding for the given duration.
	ForceUnground(seconds float64)

	// SetCapsule resizes the collision capsule.
	SetCapsule(radius, height, offset float64)

	// OverlapCapsule reports colliders a capsule of the given dimensions
	// would intersect at the body's current position.
	OverlapCapsule(radius, height, offset float64) []collision.BoxID
}

// Controller turns per-frame intents into velocity and orientation for a
// kinematic character body. It is driven once per physics tick in a fixed
// order: SetInputs, IntegrateVelocity, IntegrateRotation, then AfterUpdate
// once the body has moved.
type Controller struct {
	tuning Tuning
	body   Body

	velocity mgl64.Vec3
	rotation mgl64.Quat

	moveInput mgl64.Vec3
	lookInput mgl64.Vec3

	jumpRequested           bool
	jumpConsumed            bool
	jumpedThisFrame         bool
	doubleJumpConsumed      bool
	timeSinceJumpRequested  float64
	timeSinceLastAbleToJump float64

	canWallJump    bool
	wallJumpNormal mgl64.Vec3

	wantsCrouch bool
	isCrouching bool
	visualScale mgl64.Vec3

	pendingImpulse mgl64.Vec3
}

func NewController(tuning Tuning, body Body) *Controller {
	c := &Controller{
		tuning:      tuning,
		body:        body,
		rotation:    mgl64.QuatIdent(),
		visualScale: mgl64.Vec3{1, 1, 1},
	}
	body.SetCapsule(tuning.CapsuleRadius, tuning.CapsuleHeight, tuning.CapsuleHeight/2)
	return c
}

// SetTuning swaps movement parameters at runtime. The capsule is resized to
// match, honoring the current crouch state.
func (c *Controller) SetTuning(tuning Tuning) {
	c.tuning = tuning
	height := tuning.CapsuleHeight
	if c.isCrouching {
		height = tuning.CrouchedCapsuleHeight
	}
	c.body.SetCapsule(tuning.CapsuleRadius, height, height/2)
}

func (c *Controller) Tuning() Tuning { return c.tuning }

// up is the character's local up axis, which tracks body orientation when
// gravity alignment is enabled.
func (c *Controller) up() mgl64.Vec3 {
	return c.rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// SetInputs converts a camera-space intent into world-space movement and
// look vectors and latches the jump and crouch edges.
func (c *Controller) SetInputs(in Intent) {
	up := c.up()

	move := mathx.ClampMagnitude(mgl64.Vec3{in.MoveRight, 0, in.MoveForward}, 1)

	// Movement is relative to where the camera looks on the character's
	// horizontal plane. A camera pointing straight down has no planar
	// forward, so fall back to its up axis.
	camForward := in.CameraRotation.Rotate(mgl64.Vec3{0, 0, 1})
	planar := mathx.PlanarDirection(camForward, up)
	if mathx.NearlyZeroVec(planar) {
		camUp := in.CameraRotation.Rotate(mgl64.Vec3{0, 1, 0})
		planar = mathx.PlanarDirection(camUp, up)
	}

	c.moveInput = mathx.HeadingRotation(planar).Rotate(move)
	c.lookInput = planar

	if in.JumpPressed {
		c.timeSinceJumpRequested = 0
		c.jumpRequested = true
	}

	if in.CrouchPressed {
		c.wantsCrouch = true
		if !c.isCrouching {
			c.isCrouching = true
			h := c.tuning.CrouchedCapsuleHeight
			c.body.SetCapsule(c.tuning.CapsuleRadius, h, h/2)
			c.visualScale = mgl64.Vec3{1, h / c.tuning.CapsuleHeight, 1}
		}
	}
	if in.CrouchReleased {
		// Standing back up is deferred to AfterUpdate, where the expanded
		// capsule can be validated against the world.
		c.wantsCrouch = false
	}
}

// IntegrateVelocity advances the velocity by one tick: queued impulses,
// ground or air movement, gravity and drag, then jump arbitration.
func (c *Controller) IntegrateVelocity(dt float64) {
	grounding := c.body.Grounding()
	up := c.up()

	if !mathx.NearlyZeroVec(c.pendingImpulse) {
		c.velocity = c.velocity.Add(c.pendingImpulse)
		c.pendingImpulse = mgl64.Vec3{}
	}

	if grounding.IsStableOnGround {
		// Bend the current velocity to follow the slope, preserving speed,
		// then steer toward the reoriented input.
		c.velocity = mathx.TangentToSurface(c.velocity, grounding.GroundNormal, up)

		inputRight := c.moveInput.Cross(up)
		reoriented := grounding.GroundNormal.Cross(inputRight)
		if !mathx.NearlyZeroVec(reoriented) {
			reoriented = reoriented.Normalize().Mul(c.moveInput.Len())
		}
		target := reoriented.Mul(c.tuning.MaxStableMoveSpeed)
		c.velocity = mathx.DampVec3(c.velocity, target, c.tuning.StableMovementSharpness, dt)
	} else {
		if !mathx.NearlyZeroVec(c.moveInput) {
			target := c.moveInput.Mul(c.tuning.MaxAirMoveSpeed)

			// When sliding against an unstable surface, steer only along it
			// so air control cannot push the body into the obstruction.
			if grounding.FoundAnyGround {
				obstruction := up.Cross(grounding.GroundNormal).Cross(up)
				if !mathx.NearlyZeroVec(obstruction) {
					target = mathx.ProjectOnPlane(target, obstruction.Normalize())
				}
			}

			diff := target.Sub(c.velocity)
			if !mathx.NearlyZeroVec(c.tuning.Gravity) {
				diff = mathx.ProjectOnPlane(diff, c.tuning.Gravity.Normalize())
			}
			c.velocity = c.velocity.Add(diff.Mul(c.tuning.AirAccelerationSpeed * dt))
		}

		c.velocity = c.velocity.Add(c.tuning.Gravity.Mul(dt))
		c.velocity = c.velocity.Mul(1 / (1 + c.tuning.Drag*dt))
	}

	c.handleJumping(grounding, up, dt)

	// Wall-jump eligibility lives for exactly one arbitration.
	c.canWallJump = false
}

func (c *Controller) handleJumping(grounding collision.GroundingStatus, up mgl64.Vec3, dt float64) {
	c.jumpedThisFrame = false
	c.timeSinceJumpRequested += dt
	if !c.jumpRequested {
		return
	}

	// Double jump wins arbitration so a held-over request in the air does not
	// burn the primary jump.
	if c.tuning.AllowDoubleJump &&
		c.jumpConsumed && !c.doubleJumpConsumed && !c.groundedForJumping(grounding) {
		c.launch(up, up)
		c.doubleJumpConsumed = true
		return
	}

	canJump := !c.jumpConsumed &&
		(c.groundedForJumping(grounding) || c.timeSinceLastAbleToJump <= c.tuning.JumpPostGroundingGraceTime)
	if !c.canWallJump && !canJump {
		return
	}

	dir := up
	if c.canWallJump {
		dir = c.wallJumpNormal
	} else if grounding.FoundAnyGround && !grounding.IsStableOnGround {
		dir = grounding.GroundNormal
	}
	c.launch(dir, up)
	c.jumpConsumed = true
}

// launch applies a jump: the velocity component along up is replaced by the
// jump impulse along dir, leaving lateral motion untouched.
func (c *Controller) launch(dir, up mgl64.Vec3) {
	c.body.ForceUnground(jumpUngroundSeconds)
	c.velocity = c.velocity.
		Sub(up.Mul(c.velocity.Dot(up))).
		Add(dir.Mul(c.tuning.JumpSpeed))
	c.jumpRequested = false
	c.jumpedThisFrame = true
}

// groundedForJumping is the grounding definition jump arbitration uses:
// normally stable ground only, widened to any ground contact when jumping
// while sliding is allowed.
func (c *Controller) groundedForJumping(grounding collision.GroundingStatus) bool {
	if c.tuning.AllowJumpingWhenSliding {
		return grounding.FoundAnyGround
	}
	return grounding.IsStableOnGround
}

// IntegrateRotation smooths the body's heading toward the look direction and
// optionally re-aligns its up axis against gravity.
func (c *Controller) IntegrateRotation(dt float64) {
	if !mathx.NearlyZeroVec(c.lookInput) && c.tuning.OrientationSharpness > 0 {
		target := mathx.HeadingRotation(c.lookInput)
		c.rotation = mathx.DampQuat(c.rotation, target, c.tuning.OrientationSharpness, dt)
	}

	if c.tuning.OrientTowardsGravity && !mathx.NearlyZeroVec(c.tuning.Gravity) {
		down := c.tuning.Gravity.Normalize()
		align := mgl64.QuatBetweenVectors(c.up(), down.Mul(-1))
		c.rotation = align.Mul(c.rotation).Normalize()
	}
}

// AfterUpdate runs once the body has moved: stale jump requests are dropped,
// grace-period clocks tick, and a released crouch stands the capsule back up
// if there is room.
func (c *Controller) AfterUpdate(dt float64) {
	if c.jumpRequested && c.timeSinceJumpRequested > c.tuning.JumpPreGroundingGraceTime {
		c.jumpRequested = false
	}

	if c.groundedForJumping(c.body.Grounding()) {
		// A jump performed this very tick must not be refunded by the
		// grounding snapshot it launched from.
		if !c.jumpedThisFrame {
			c.jumpConsumed = false
			c.doubleJumpConsumed = false
		}
		c.timeSinceLastAbleToJump = 0
	} else {
		c.timeSinceLastAbleToJump += dt
	}

	if c.isCrouching && !c.wantsCrouch {
		full := c.tuning.CapsuleHeight
		c.body.SetCapsule(c.tuning.CapsuleRadius, full, full/2)
		if len(c.body.OverlapCapsule(c.tuning.CapsuleRadius, full, full/2)) > 0 {
			// No headroom; stay crouched.
			h := c.tuning.CrouchedCapsuleHeight
			c.body.SetCapsule(c.tuning.CapsuleRadius, h, h/2)
		} else {
			c.visualScale = mgl64.Vec3{1, 1, 1}
			c.isCrouching = false
		}
	}
}

// ReportWallHit marks a lateral obstruction hit during the move phase as a
// wall-jump surface. Only airborne hits count; the driver reports them after
// sweeping the body.
func (c *Controller) ReportWallHit(normal mgl64.Vec3) {
	if !c.tuning.AllowWallJump || mathx.NearlyZeroVec(normal) {
		return
	}
	if c.body.Grounding().IsStableOnGround {
		return
	}
	c.canWallJump = true
	c.wallJumpNormal = normal.Normalize()
}

// AddVelocity queues an impulse to be applied at the start of the next
// velocity integration.
func (c *Controller) AddVelocity(v mgl64.Vec3) {
	c.pendingImpulse = c.pendingImpulse.Add(v)
}

func (c *Controller) SetVelocity(v mgl64.Vec3) { c.velocity = v }

func (c *Controller) Velocity() mgl64.Vec3 { return c.velocity }

func (c *Controller) Rotation() mgl64.Quat { return c.rotation }

// VisualScale is the render-side squash applied while crouched. It does not
// affect collision.
func (c *Controller) VisualScale() mgl64.Vec3 { return c.visualScale }

func (c *Controller) IsCrouching() bool { return c.isCrouching }
