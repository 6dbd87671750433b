package collision

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Tolerance used when comparing swept distances against geometry, so a
	// body resting exactly against a face is not treated as penetrating.
	axisTolerance = 1e-9

	// How far below the feet the grounding probe extends.
	groundProbeDistance = 0.001

	// A box top within this distance of the feet counts as walkable ground
	// rather than a lateral obstruction.
	groundSnapTolerance = 0.05
)

// BoxWorld is a static set of axis-aligned solids together with the
// character capsule, exposing the cast/overlap/grounding primitives the
// controller and camera consume. It is a reference collision engine for
// demos and tests; the contract is what matters, not the broadphase.
type BoxWorld struct {
	boxes   []Box
	capsule Capsule

	// Remaining window during which grounding is suppressed (jump liftoff).
	ungroundTimer float64
}

func NewBoxWorld(boxes []Box) *BoxWorld {
	w := &BoxWorld{boxes: boxes}
	w.capsule = Capsule{Radius: 0.3, Height: 1.8, Offset: 0.9}
	return w
}

func (w *BoxWorld) AddBox(b Box) BoxID {
	w.boxes = append(w.boxes, b)
	return BoxID(len(w.boxes) - 1)
}

func (w *BoxWorld) Boxes() []Box {
	return w.boxes
}

func (w *BoxWorld) SetCapsule(radius, height, offset float64) {
	w.capsule = Capsule{Radius: radius, Height: height, Offset: offset}
}

func (w *BoxWorld) Capsule() Capsule {
	return w.capsule
}

// ForceUnground suppresses grounding for the given duration so a jump
// impulse is not immediately cancelled by re-snapping to the ground.
func (w *BoxWorld) ForceUnground(seconds float64) {
	if seconds > w.ungroundTimer {
		w.ungroundTimer = seconds
	}
}

// Advance ticks down internal timers. Called once per physics tick by the
// driver before grounding is queried.
func (w *BoxWorld) Advance(dt float64) {
	if w.ungroundTimer > 0 {
		w.ungroundTimer -= dt
		if w.ungroundTimer < 0 {
			w.ungroundTimer = 0
		}
	}
}

// Grounding probes below the capsule at pos. A box whose top is at foot
// level yields stable ground; a box met laterally by the probe counts as
// found-but-unstable with a horizontal normal, which is the sliding case.
func (w *BoxWorld) Grounding(pos mgl64.Vec3) GroundingStatus {
	if w.ungroundTimer > 0 {
		return GroundingStatus{}
	}

	probe := w.capsule.aabbAt(pos)
	probe.Min[1] -= groundProbeDistance
	probe.Max[1] -= groundProbeDistance

	var status GroundingStatus
	feet := probe.Min.Y()
	for _, b := range w.boxes {
		if !probe.intersects(b) {
			continue
		}
		if b.Max.Y() <= feet+groundProbeDistance+groundSnapTolerance {
			return GroundingStatus{
				IsStableOnGround: true,
				FoundAnyGround:   true,
				GroundNormal:     mgl64.Vec3{0, 1, 0},
			}
		}
		if !status.FoundAnyGround {
			status.FoundAnyGround = true
			status.GroundNormal = sideNormal(probe, b)
		}
	}
	return status
}

// OverlapCapsule reports every box intersecting a capsule of the given
// dimensions placed at pos. Used by crouch-stand validation.
func (w *BoxWorld) OverlapCapsule(pos mgl64.Vec3, radius, height, offset float64) []BoxID {
	shape := Capsule{Radius: radius, Height: height, Offset: offset}
	aabb := shape.aabbAt(pos)
	var out []BoxID
	for i, b := range w.boxes {
		if aabb.intersects(b) {
			out = append(out, BoxID(i))
		}
	}
	return out
}

// CastSphere sweeps a sphere from origin along dir and returns all hits
// within maxDist, nearest first. A cast that starts inside a solid reports
// distance zero; callers decide whether zero-distance hits are meaningful.
func (w *BoxWorld) CastSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64) []Hit {
	if mathVecZero(dir) || maxDist <= 0 {
		return nil
	}
	dir = dir.Normalize()

	var hits []Hit
	for i, b := range w.boxes {
		t, normal, ok := rayBox(origin, dir, b.expanded(radius))
		if !ok || t > maxDist {
			continue
		}
		hits = append(hits, Hit{Box: BoxID(i), Distance: t, Normal: normal})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// SweepResult reports which axes of a swept move were blocked and, for
// lateral blocks, the obstruction normal the body ran into.
type SweepResult struct {
	BlockedX bool
	BlockedY bool
	BlockedZ bool

	HitWall    bool
	WallNormal mgl64.Vec3
}

// Sweep moves the capsule from pos by delta, resolving each axis separately
// (vertical first) so the body slides along obstructions instead of
// sticking to them.
func (w *BoxWorld) Sweep(pos, delta mgl64.Vec3) (mgl64.Vec3, SweepResult) {
	var res SweepResult
	next := pos

	next[1], res.BlockedY = w.resolveAxis(next, 1, delta.Y())
	next[0], res.BlockedX = w.resolveAxis(next, 0, delta.X())
	next[2], res.BlockedZ = w.resolveAxis(next, 2, delta.Z())

	if res.BlockedX || res.BlockedZ {
		res.HitWall = true
		var n mgl64.Vec3
		if res.BlockedX {
			n[0] = -sign(delta.X())
		}
		if res.BlockedZ {
			n[2] = -sign(delta.Z())
		}
		if !mathVecZero(n) {
			res.WallNormal = n.Normalize()
		}
	}
	return next, res
}

// resolveAxis returns the new coordinate on the given axis after moving by
// delta, clipped against every box overlapping the capsule on the other two
// axes, plus whether the move was blocked.
func (w *BoxWorld) resolveAxis(pos mgl64.Vec3, axis int, delta float64) (float64, bool) {
	if math.Abs(delta) <= axisTolerance {
		return pos[axis], false
	}

	aabb := w.capsule.aabbAt(pos)
	allowed := delta
	for _, b := range w.boxes {
		if !overlapsExcept(aabb, b, axis) {
			continue
		}
		if delta > 0 {
			gap := b.Min[axis] - aabb.Max[axis]
			if gap >= -axisTolerance && gap < allowed {
				allowed = math.Max(gap, 0)
			}
		} else {
			gap := b.Max[axis] - aabb.Min[axis]
			if gap <= axisTolerance && gap > allowed {
				allowed = math.Min(gap, 0)
			}
		}
	}
	blocked := math.Abs(allowed-delta) > axisTolerance
	return pos[axis] + allowed, blocked
}

// overlapsExcept reports whether the two boxes overlap on both axes other
// than the one being swept.
func overlapsExcept(a, b Box, axis int) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if a.Min[i]+axisTolerance >= b.Max[i] || a.Max[i]-axisTolerance <= b.Min[i] {
			return false
		}
	}
	return true
}

// sideNormal picks the horizontal push-out direction for a lateral contact:
// the axis of least penetration, pointing away from the box.
func sideNormal(a, b Box) mgl64.Vec3 {
	centerA := a.Min.Add(a.Max).Mul(0.5)
	centerB := b.Min.Add(b.Max).Mul(0.5)

	penX := math.Min(a.Max.X()-b.Min.X(), b.Max.X()-a.Min.X())
	penZ := math.Min(a.Max.Z()-b.Min.Z(), b.Max.Z()-a.Min.Z())
	if penX <= penZ {
		return mgl64.Vec3{sign(centerA.X() - centerB.X()), 0, 0}
	}
	return mgl64.Vec3{0, 0, sign(centerA.Z() - centerB.Z())}
}

func rayBox(origin, dir mgl64.Vec3, b Box) (float64, mgl64.Vec3, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	entryAxis := -1
	entrySign := 0.0

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) <= axisTolerance {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}
		if t1 > tmin {
			tmin = t1
			entryAxis = i
			entrySign = s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}

	if tmax < 0 {
		return 0, mgl64.Vec3{}, false
	}
	if tmin < 0 || entryAxis < 0 {
		// Started inside the solid.
		return 0, mgl64.Vec3{}, true
	}
	var normal mgl64.Vec3
	normal[entryAxis] = entrySign
	return tmin, normal, true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func mathVecZero(v mgl64.Vec3) bool {
	return v.Dot(v) <= axisTolerance
}
