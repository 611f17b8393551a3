package cull

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
)

// Stats counts the outcomes of visibility tests since the last reset.
type Stats struct {
	Tested  uint64
	Visible uint64
	Culled  uint64
}

// Culler holds the current frustum and camera position and accumulates
// statistics. Not safe for concurrent use; the render side owns it.
type Culler struct {
	frustum Frustum
	camera  mgl32.Vec3
	stats   Stats
}

// NewCuller creates a Culler with a degenerate frustum that passes
// everything until the first update.
func NewCuller() *Culler {
	return &Culler{}
}

// Update recomputes the frustum from a view and projection matrix and
// records the camera position for directional tests.
func (c *Culler) Update(view, proj mgl32.Mat4, camera mgl32.Vec3) {
	c.frustum = NewFrustum(proj.Mul4(view))
	c.camera = camera
}

// AABBVisible tests a box against the frustum.
func (c *Culler) AABBVisible(min, max mgl32.Vec3) bool {
	return c.count(c.frustum.ContainsAABB(min, max))
}

// SphereVisible tests a sphere against the frustum.
func (c *Culler) SphereVisible(center mgl32.Vec3, radius float32) bool {
	return c.count(c.frustum.ContainsSphere(center, radius))
}

// ChunkVisible tests a chunk's bounds against the frustum.
func (c *Culler) ChunkVisible(coord world.ChunkCoord) bool {
	min, max := ChunkAABB(coord)
	return c.count(c.frustum.ContainsAABB(min, max))
}

// FaceVisible reports whether faces of the given direction in a chunk can
// face the camera. Lateral directions use the sign of the normal against
// the camera-to-center vector. Vertical directions compare the camera
// height against the chunk slab instead: every up face in the chunk is
// visible as soon as the camera is above the chunk floor, and likewise for
// down faces below the ceiling.
func (c *Culler) FaceVisible(coord world.ChunkCoord, face int) bool {
	min, max := ChunkAABB(coord)

	var visible bool
	switch face {
	case world.FaceUp:
		visible = c.camera.Y() > min.Y()
	case world.FaceDown:
		visible = c.camera.Y() < max.Y()
	default:
		o := world.FaceOffsets[face]
		normal := mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
		center := min.Add(max).Mul(0.5)
		visible = normal.Dot(center.Sub(c.camera)) < 0
	}
	return c.count(visible)
}

// Stats returns the counters accumulated since the last ResetStats.
func (c *Culler) Stats() Stats {
	return c.stats
}

// ResetStats clears the counters, typically once per frame.
func (c *Culler) ResetStats() {
	c.stats = Stats{}
}

func (c *Culler) count(visible bool) bool {
	c.stats.Tested++
	if visible {
		c.stats.Visible++
	} else {
		c.stats.Culled++
	}
	return visible
}
