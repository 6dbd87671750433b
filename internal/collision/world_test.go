package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func floorWorld() *BoxWorld {
	return NewBoxWorld([]Box{
		{Min: mgl64.Vec3{-10, -1, -10}, Max: mgl64.Vec3{10, 0, 10}},
	})
}

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func TestGrounding_StableOnFloor(t *testing.T) {
	w := floorWorld()

	status := w.Grounding(mgl64.Vec3{0, 0, 0})

	if !status.IsStableOnGround || !status.FoundAnyGround {
		t.Fatalf("status = %+v, want stable ground", status)
	}
	approxEqual(t, status.GroundNormal.Y(), 1, 1e-9, "normal.y")
}

func TestGrounding_AirborneFindsNothing(t *testing.T) {
	w := floorWorld()

	status := w.Grounding(mgl64.Vec3{0, 1, 0})

	if status.FoundAnyGround {
		t.Fatalf("status = %+v, want no ground at height 1", status)
	}
}

func TestGrounding_LateralContactIsUnstable(t *testing.T) {
	w := floorWorld()
	w.AddBox(Box{Min: mgl64.Vec3{0.2, -1, -1}, Max: mgl64.Vec3{2, 5, 1}})

	// Hovering beside the tall box, off the floor.
	status := w.Grounding(mgl64.Vec3{0, 2, 0})

	if status.IsStableOnGround {
		t.Fatalf("status = %+v, wall contact must not be stable", status)
	}
	if !status.FoundAnyGround {
		t.Fatalf("status = %+v, want wall contact found", status)
	}
	approxEqual(t, status.GroundNormal.X(), -1, 1e-9, "normal.x")
	approxEqual(t, status.GroundNormal.Y(), 0, 1e-9, "normal.y")
}

func TestForceUnground_SuppressesUntilExpiry(t *testing.T) {
	w := floorWorld()

	w.ForceUnground(0.1)
	if w.Grounding(mgl64.Vec3{0, 0, 0}).FoundAnyGround {
		t.Fatalf("grounding found while suppressed")
	}

	// Shorter re-arm must not cut the window.
	w.ForceUnground(0.01)
	w.Advance(0.05)
	if w.Grounding(mgl64.Vec3{0, 0, 0}).FoundAnyGround {
		t.Fatalf("grounding found at 50ms of a 100ms window")
	}

	w.Advance(0.06)
	if !w.Grounding(mgl64.Vec3{0, 0, 0}).IsStableOnGround {
		t.Fatalf("grounding still suppressed after expiry")
	}
}

func TestSweep_FallLandsExactlyOnFloor(t *testing.T) {
	w := floorWorld()

	next, res := w.Sweep(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, -1, 0})

	approxEqual(t, next.Y(), 0, 1e-9, "position.y")
	if !res.BlockedY {
		t.Fatalf("BlockedY = false, want true")
	}
	if res.HitWall {
		t.Fatalf("HitWall = true for a vertical landing")
	}
}

func TestSweep_WallClipsLateralMotion(t *testing.T) {
	w := floorWorld()
	w.AddBox(Box{Min: mgl64.Vec3{2, 0, -1}, Max: mgl64.Vec3{3, 2, 1}})

	next, res := w.Sweep(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{5, 0, 0})

	approxEqual(t, next.X(), 2-w.Capsule().Radius, 1e-9, "position.x")
	if !res.BlockedX || !res.HitWall {
		t.Fatalf("result = %+v, want blocked lateral hit", res)
	}
	approxEqual(t, res.WallNormal.X(), -1, 1e-9, "wall normal.x")
}

func TestSweep_UnobstructedMoveIsExact(t *testing.T) {
	w := floorWorld()

	next, res := w.Sweep(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, -2})

	approxEqual(t, next.X(), 1, 1e-9, "position.x")
	approxEqual(t, next.Z(), -2, 1e-9, "position.z")
	if res.BlockedX || res.BlockedY || res.BlockedZ {
		t.Fatalf("result = %+v, want no blocking", res)
	}
}

func TestCastSphere_NearestFirstWithFaceNormal(t *testing.T) {
	w := NewBoxWorld([]Box{
		{Min: mgl64.Vec3{8, -1, -1}, Max: mgl64.Vec3{9, 1, 1}},
		{Min: mgl64.Vec3{4, -1, -1}, Max: mgl64.Vec3{5, 1, 1}},
	})

	hits := w.CastSphere(mgl64.Vec3{0, 0, 0}, 0.5, mgl64.Vec3{1, 0, 0}, 20)

	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	// The sphere's surface, not its center, touches the face.
	approxEqual(t, hits[0].Distance, 3.5, 1e-9, "hits[0].Distance")
	approxEqual(t, hits[0].Normal.X(), -1, 1e-9, "hits[0].Normal.x")
	approxEqual(t, hits[1].Distance, 7.5, 1e-9, "hits[1].Distance")
}

func TestCastSphere_RespectsMaxDistance(t *testing.T) {
	w := NewBoxWorld([]Box{
		{Min: mgl64.Vec3{4, -1, -1}, Max: mgl64.Vec3{5, 1, 1}},
	})

	hits := w.CastSphere(mgl64.Vec3{0, 0, 0}, 0.5, mgl64.Vec3{1, 0, 0}, 3)

	if len(hits) != 0 {
		t.Fatalf("len(hits) = %d, want 0 beyond max distance", len(hits))
	}
}

func TestCastSphere_StartingInsideReportsZeroDistance(t *testing.T) {
	w := NewBoxWorld([]Box{
		{Min: mgl64.Vec3{4, -1, -1}, Max: mgl64.Vec3{5, 1, 1}},
	})

	hits := w.CastSphere(mgl64.Vec3{4.5, 0, 0}, 0.2, mgl64.Vec3{1, 0, 0}, 10)

	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	approxEqual(t, hits[0].Distance, 0, 1e-9, "distance")
}

func TestOverlapCapsule_DetectsCeiling(t *testing.T) {
	w := floorWorld()
	ceiling := w.AddBox(Box{Min: mgl64.Vec3{-1, 1.2, -1}, Max: mgl64.Vec3{1, 2, 1}})

	ids := w.OverlapCapsule(mgl64.Vec3{0, 0, 0}, 0.3, 1.8, 0.9)
	if len(ids) != 1 || ids[0] != ceiling {
		t.Fatalf("ids = %v, want [%d]", ids, ceiling)
	}

	// The crouched capsule fits underneath.
	if ids := w.OverlapCapsule(mgl64.Vec3{0, 0, 0}, 0.3, 1.0, 0.5); len(ids) != 0 {
		t.Fatalf("ids = %v, want none for crouched capsule", ids)
	}
}
