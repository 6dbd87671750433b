package mathx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func approxVec(t *testing.T, got, want mgl64.Vec3, tol float64, field string) {
	t.Helper()
	if got.Sub(want).Len() > tol {
		t.Fatalf("%s = %v, want %v (tol=%.8f)", field, got, want, tol)
	}
}

func TestSmoothFactor_Bounds(t *testing.T) {
	if got := SmoothFactor(0, 1.0/60); got != 0 {
		t.Fatalf("SmoothFactor(0, dt) = %v, want 0", got)
	}
	if got := SmoothFactor(15, 0); got != 0 {
		t.Fatalf("SmoothFactor(s, 0) = %v, want 0", got)
	}
	f := SmoothFactor(15, 1.0/60)
	if f <= 0 || f >= 1 {
		t.Fatalf("SmoothFactor = %v, want in (0,1)", f)
	}
	if SmoothFactor(30, 1.0/60) <= f {
		t.Fatalf("factor must grow with sharpness")
	}
}

func TestDamp_OneStepFromRest(t *testing.T) {
	got := Damp(0, 10, 15, 1.0/60)
	approxEqual(t, got, 2.2119921692859512, 1e-9, "Damp")
}

func TestDamp_ZeroSharpnessFreezes(t *testing.T) {
	approxEqual(t, Damp(3, 10, 0, 1.0/60), 3, 1e-12, "Damp")
}

func TestDampVec3_StaysOnSegment(t *testing.T) {
	from := mgl64.Vec3{1, 0, 0}
	to := mgl64.Vec3{1, 0, 10}
	got := DampVec3(from, to, 15, 1.0/60)
	approxEqual(t, got.X(), 1, 1e-12, "x")
	approxEqual(t, got.Z(), 2.2119921692859512, 1e-9, "z")
}

func TestDampQuat_ZeroFactorReturnsCurrent(t *testing.T) {
	current := mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0})
	got := DampQuat(current, mgl64.QuatIdent(), 0, 1.0/60)
	if got != current {
		t.Fatalf("DampQuat = %v, want unchanged %v", got, current)
	}
}

func TestClampMagnitude(t *testing.T) {
	long := mgl64.Vec3{3, 0, 4}
	approxEqual(t, ClampMagnitude(long, 1).Len(), 1, 1e-12, "clamped length")

	short := mgl64.Vec3{0.3, 0, 0.4}
	approxVec(t, ClampMagnitude(short, 1), short, 1e-12, "short vector")
}

func TestProjectOnPlane_RemovesNormalComponent(t *testing.T) {
	v := mgl64.Vec3{3, 5, 0}
	got := ProjectOnPlane(v, mgl64.Vec3{0, 1, 0})
	approxVec(t, got, mgl64.Vec3{3, 0, 0}, 1e-12, "projection")
}

func TestPlanarDirection_DegenerateIsZero(t *testing.T) {
	got := PlanarDirection(mgl64.Vec3{0, 7, 0}, mgl64.Vec3{0, 1, 0})
	if !NearlyZeroVec(got) {
		t.Fatalf("PlanarDirection = %v, want zero for vertical input", got)
	}
}

func TestTangentToSurface_BendsAlongSlopePreservingSpeed(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	normal := mgl64.Vec3{0, 1, -1}.Normalize() // 45 degrees rising along +Z
	dir := mgl64.Vec3{0, 0, 6}

	got := TangentToSurface(dir, normal, up)

	approxEqual(t, got.Len(), 6, 1e-9, "speed")
	if got.Y() <= 0 || got.Z() <= 0 {
		t.Fatalf("tangent = %v, want climbing along +Z", got)
	}
}

func TestTangentToSurface_FlatGroundIsIdentity(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	dir := mgl64.Vec3{2, 0, 3}
	approxVec(t, TangentToSurface(dir, up, up), dir, 1e-9, "tangent")
}

func TestHeadingRotation_MapsForwardOntoDirection(t *testing.T) {
	q := HeadingRotation(mgl64.Vec3{1, 0, 0})
	approxVec(t, q.Rotate(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{1, 0, 0}, 1e-9, "rotated forward")
}

func TestLookRotation_PositivePitchTiltsDown(t *testing.T) {
	q := LookRotation(mgl64.Vec3{0, 0, 1}, Radians(90))
	approxVec(t, q.Rotate(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0, -1, 0}, 1e-9, "forward")
}
