package camera

import "github.com/go-gl/mathgl/mgl64"

// Tuning holds the follow-camera parameters. Angles are in degrees,
// distances in world units.
type Tuning struct {
	RotationSpeed     float64 `yaml:"rotation_speed"`
	RotationSharpness float64 `yaml:"rotation_sharpness"`
	MinPitchAngle     float64 `yaml:"min_pitch_angle"`
	MaxPitchAngle     float64 `yaml:"max_pitch_angle"`
	DefaultPitchAngle float64 `yaml:"default_pitch_angle"`
	InvertX           bool    `yaml:"invert_x"`
	InvertY           bool    `yaml:"invert_y"`

	FollowingSharpness float64 `yaml:"following_sharpness"`

	MinDistance               float64 `yaml:"min_distance"`
	MaxDistance               float64 `yaml:"max_distance"`
	DefaultDistance           float64 `yaml:"default_distance"`
	ZoomSpeed                 float64 `yaml:"zoom_speed"`
	DistanceMovementSharpness float64 `yaml:"distance_movement_sharpness"`

	ObstructionRadius    float64 `yaml:"obstruction_radius"`
	ObstructionSharpness float64 `yaml:"obstruction_sharpness"`

	// FramingOffset shifts the subject off-center in camera space: X to the
	// right, Y up.
	FramingOffset mgl64.Vec2 `yaml:"framing_offset"`
}

func DefaultTuning() Tuning {
	return Tuning{
		RotationSpeed:     10,
		RotationSharpness: 30,
		MinPitchAngle:     -90,
		MaxPitchAngle:     90,
		DefaultPitchAngle: 20,

		FollowingSharpness: 30,

		MinDistance:               1,
		MaxDistance:               12,
		DefaultDistance:           6,
		ZoomSpeed:                 2,
		DistanceMovementSharpness: 10,

		ObstructionRadius:    0.2,
		ObstructionSharpness: 60,
	}
}

func (t *Tuning) Clamp() {
	if t.MinPitchAngle < -90 {
		t.MinPitchAngle = -90
	}
	if t.MaxPitchAngle > 90 {
		t.MaxPitchAngle = 90
	}
	if t.MaxPitchAngle < t.MinPitchAngle {
		t.MaxPitchAngle = t.MinPitchAngle
	}
	t.DefaultPitchAngle = clamp(t.DefaultPitchAngle, t.MinPitchAngle, t.MaxPitchAngle)

	if t.MinDistance < 0 {
		t.MinDistance = 0
	}
	if t.MaxDistance < t.MinDistance {
		t.MaxDistance = t.MinDistance
	}
	t.DefaultDistance = clamp(t.DefaultDistance, t.MinDistance, t.MaxDistance)

	if t.ObstructionRadius < 0 {
		t.ObstructionRadius = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
