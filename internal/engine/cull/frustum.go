// Package cull answers visibility questions for chunk geometry: frustum
// tests against chunk bounds and a per-face direction heuristic. All tests
// are conservative; geometry is never culled when it could be visible.
package cull

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
)

// Plane is a normalized half-space: Normal·p + D >= 0 on the visible side.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// distance returns the signed distance from p to the plane.
func (pl Plane) distance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Frustum is the six clip planes of a view-projection transform.
type Frustum [6]Plane

// NewFrustum extracts the planes from the combined view-projection matrix,
// reading them off the matrix rows and normalizing each.
func NewFrustum(viewProj mgl32.Mat4) Frustum {
	r0 := viewProj.Row(0)
	r1 := viewProj.Row(1)
	r2 := viewProj.Row(2)
	r3 := viewProj.Row(3)

	var f Frustum
	rows := [6]mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}
	for i, r := range rows {
		n := mgl32.Vec3{r.X(), r.Y(), r.Z()}
		l := n.Len()
		if l > 0 {
			f[i] = Plane{Normal: n.Mul(1 / l), D: r.W() / l}
		}
	}
	return f
}

// ContainsAABB reports whether the box intersects the frustum. For each
// plane only the corner farthest along the plane normal is tested; if that
// corner is outside, the whole box is.
func (f Frustum) ContainsAABB(min, max mgl32.Vec3) bool {
	for _, pl := range f {
		p := min
		if pl.Normal.X() >= 0 {
			p[0] = max.X()
		}
		if pl.Normal.Y() >= 0 {
			p[1] = max.Y()
		}
		if pl.Normal.Z() >= 0 {
			p[2] = max.Z()
		}
		if pl.distance(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsSphere reports whether the sphere intersects the frustum.
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, pl := range f {
		if pl.distance(center) < -radius {
			return false
		}
	}
	return true
}

// ChunkAABB returns the world-space bounds of a chunk.
func ChunkAABB(coord world.ChunkCoord) (min, max mgl32.Vec3) {
	min = mgl32.Vec3{
		float32(coord.X * world.ChunkSize),
		float32(coord.Y * world.ChunkSize),
		float32(coord.Z * world.ChunkSize),
	}
	max = min.Add(mgl32.Vec3{world.ChunkSize, world.ChunkSize, world.ChunkSize})
	return min, max
}
