package motion

import "github.com/go-gl/mathgl/mgl64"

// Tuning holds every movement parameter of the controller. Values are
// clamped once, at configuration-load time, so per-tick code can assume
// validity.
type Tuning struct {
	MaxStableMoveSpeed      float64 `yaml:"max_stable_move_speed"`
	StableMovementSharpness float64 `yaml:"stable_movement_sharpness"`
	OrientationSharpness    float64 `yaml:"orientation_sharpness"`

	MaxAirMoveSpeed      float64 `yaml:"max_air_move_speed"`
	AirAccelerationSpeed float64 `yaml:"air_acceleration_speed"`
	Drag                 float64 `yaml:"drag"`

	JumpSpeed                  float64 `yaml:"jump_speed"`
	JumpPreGroundingGraceTime  float64 `yaml:"jump_pre_grounding_grace_time"`
	JumpPostGroundingGraceTime float64 `yaml:"jump_post_grounding_grace_time"`

	AllowJumpingWhenSliding bool `yaml:"allow_jumping_when_sliding"`
	AllowDoubleJump         bool `yaml:"allow_double_jump"`
	AllowWallJump           bool `yaml:"allow_wall_jump"`

	Gravity              mgl64.Vec3 `yaml:"gravity"`
	OrientTowardsGravity bool       `yaml:"orient_towards_gravity"`

	CapsuleRadius         float64 `yaml:"capsule_radius"`
	CapsuleHeight         float64 `yaml:"capsule_height"`
	CrouchedCapsuleHeight float64 `yaml:"crouched_capsule_height"`
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxStableMoveSpeed:      8,
		StableMovementSharpness: 15,
		OrientationSharpness:    10,

		MaxAirMoveSpeed:      8,
		AirAccelerationSpeed: 5,
		Drag:                 0.1,

		JumpSpeed:                  10,
		JumpPreGroundingGraceTime:  0.1,
		JumpPostGroundingGraceTime: 0.1,

		AllowJumpingWhenSliding: false,
		AllowDoubleJump:         true,
		AllowWallJump:           true,

		Gravity:              mgl64.Vec3{0, -30, 0},
		OrientTowardsGravity: false,

		CapsuleRadius:         0.3,
		CapsuleHeight:         1.8,
		CrouchedCapsuleHeight: 1.0,
	}
}

// Clamp pulls every field into its valid band. Degenerate values are defined
// behavior, not errors: zero sharpness freezes the smoothed quantity.
func (t *Tuning) Clamp() {
	t.MaxStableMoveSpeed = max0(t.MaxStableMoveSpeed)
	t.StableMovementSharpness = max0(t.StableMovementSharpness)
	t.OrientationSharpness = max0(t.OrientationSharpness)

	t.MaxAirMoveSpeed = max0(t.MaxAirMoveSpeed)
	t.AirAccelerationSpeed = max0(t.AirAccelerationSpeed)
	t.Drag = max0(t.Drag)

	t.JumpSpeed = max0(t.JumpSpeed)
	t.JumpPreGroundingGraceTime = max0(t.JumpPreGroundingGraceTime)
	t.JumpPostGroundingGraceTime = max0(t.JumpPostGroundingGraceTime)

	if t.CapsuleRadius <= 0 {
		t.CapsuleRadius = 0.3
	}
	if t.CapsuleHeight <= 0 {
		t.CapsuleHeight = 1.8
	}
	if t.CrouchedCapsuleHeight <= 0 || t.CrouchedCapsuleHeight > t.CapsuleHeight {
		t.CrouchedCapsuleHeight = t.CapsuleHeight / 2
	}
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
