package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const zeroTolerance = 1e-9

// SmoothFactor is the fraction of the remaining distance to a target covered
// in dt at the given sharpness. It is bounded to [0,1): a sharpness (or dt)
// of zero yields 0, so the smoothed quantity freezes instead of dividing by
// zero, and the factor saturates toward 1 as sharpness grows.
func SmoothFactor(sharpness, dt float64) float64 {
	if sharpness <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-sharpness*dt)
}

// Damp moves current toward target by SmoothFactor(sharpness, dt). The result
// always lies on the segment between current and target.
func Damp(current, target, sharpness, dt float64) float64 {
	return current + (target-current)*SmoothFactor(sharpness, dt)
}

func DampVec3(current, target mgl64.Vec3, sharpness, dt float64) mgl64.Vec3 {
	return current.Add(target.Sub(current).Mul(SmoothFactor(sharpness, dt)))
}

func DampQuat(current, target mgl64.Quat, sharpness, dt float64) mgl64.Quat {
	f := SmoothFactor(sharpness, dt)
	if f <= 0 {
		return current
	}
	return mgl64.QuatSlerp(current, target, f).Normalize()
}

// ClampMagnitude shrinks v to the given length if it is longer. It never
// amplifies a shorter vector.
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if max <= 0 {
		return mgl64.Vec3{}
	}
	lenSq := v.Dot(v)
	if lenSq <= max*max || lenSq <= zeroTolerance {
		return v
	}
	return v.Mul(max / math.Sqrt(lenSq))
}

// ProjectOnPlane removes the component of v along the (unit) plane normal.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

// PlanarDirection projects v onto the plane perpendicular to up and
// normalizes it. Returns the zero vector when the projection is degenerate.
func PlanarDirection(v, up mgl64.Vec3) mgl64.Vec3 {
	planar := ProjectOnPlane(v, up)
	if planar.Dot(planar) <= zeroTolerance {
		return mgl64.Vec3{}
	}
	return planar.Normalize()
}

// TangentToSurface reorients dir along the surface described by normal,
// preserving magnitude, so that a direction bends to follow a slope instead
// of being flattened against it.
func TangentToSurface(dir, normal, up mgl64.Vec3) mgl64.Vec3 {
	lenSq := dir.Dot(dir)
	if lenSq <= zeroTolerance {
		return dir
	}
	right := dir.Cross(up)
	tangent := normal.Cross(right)
	tLenSq := tangent.Dot(tangent)
	if tLenSq <= zeroTolerance {
		return dir
	}
	return tangent.Mul(math.Sqrt(lenSq / tLenSq))
}

// HeadingRotation maps the +Z reference forward onto the given direction by
// the shortest arc. For planar directions this is a rotation about the
// vertical axis.
func HeadingRotation(dir mgl64.Vec3) mgl64.Quat {
	if dir.Dot(dir) <= zeroTolerance {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, dir)
}

// LookRotation composes a planar heading with a pitch about the local X axis.
// Positive pitch tilts the forward direction downward.
func LookRotation(planarDir mgl64.Vec3, pitchRad float64) mgl64.Quat {
	yaw := mgl64.QuatRotate(math.Atan2(planarDir.X(), planarDir.Z()), mgl64.Vec3{0, 1, 0})
	return yaw.Mul(mgl64.QuatRotate(pitchRad, mgl64.Vec3{1, 0, 0})).Normalize()
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func NearlyZero(v float64) bool {
	return math.Abs(v) <= zeroTolerance
}

func NearlyZeroVec(v mgl64.Vec3) bool {
	return v.Dot(v) <= zeroTolerance
}
