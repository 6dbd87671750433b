package collision

import "github.com/go-gl/mathgl/mgl64"

// BoxID identifies a collider inside a BoxWorld. IDs are stable for the
// lifetime of the world and opaque to consumers.
type BoxID int

// Hit is a single shape-cast result.
type Hit struct {
	Box      BoxID
	Distance float64
	Normal   mgl64.Vec3
}

// GroundingStatus is the per-tick result of the grounding probe.
// IsStableOnGround is strictly stronger than FoundAnyGround: a body sliding
// against a wall or a too-steep surface has found ground without being
// stable on it.
type GroundingStatus struct {
	IsStableOnGround bool
	FoundAnyGround   bool
	GroundNormal     mgl64.Vec3
}

// Capsule describes the character collision volume. Positions in this
// package refer to the feet point; the capsule occupies the vertical band
// [offset-height/2, offset+height/2] above it, so the usual offset is
// height/2.
type Capsule struct {
	Radius float64
	Height float64
	Offset float64
}

// AABB of the capsule placed at pos.
func (c Capsule) aabbAt(pos mgl64.Vec3) Box {
	bottom := pos.Y() + c.Offset - c.Height/2
	return Box{
		Min: mgl64.Vec3{pos.X() - c.Radius, bottom, pos.Z() - c.Radius},
		Max: mgl64.Vec3{pos.X() + c.Radius, bottom + c.Height, pos.Z() + c.Radius},
	}
}

// Box is an axis-aligned solid.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (b Box) intersects(o Box) bool {
	return b.Min.X() < o.Max.X() && b.Max.X() > o.Min.X() &&
		b.Min.Y() < o.Max.Y() && b.Max.Y() > o.Min.Y() &&
		b.Min.Z() < o.Max.Z() && b.Max.Z() > o.Min.Z()
}

func (b Box) expanded(r float64) Box {
	return Box{
		Min: b.Min.Sub(mgl64.Vec3{r, r, r}),
		Max: b.Max.Add(mgl64.Vec3{r, r, r}),
	}
}
