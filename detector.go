package stance

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/stance/terrain"
)

// CollidablePoint is the per-point contact sample produced by detection.
// Points are stored in a fixed-size slice indexed by contact id; the slice
// keeps its shape whether a point is in contact or not.
type CollidablePoint struct {
	// Position is the corrected gap proxy [0, 0, dot(h, n̂)], not the world
	// position of the point.
	Position mgl64.Vec3
	// Velocity is the mixed-frame linear velocity of the point.
	Velocity mgl64.Vec3
	// Link is the index of the link owning the point.
	Link int
	// Depth is the signed penetration depth; negative means interpenetrating.
	Depth float64
	// Active reports whether the point is in contact (Depth < 0).
	Active bool
}

// detectContacts projects each collidable point against the terrain. The
// vertical gap h = [0, 0, z − height] is projected onto the surface normal,
// which captures only the vertical component of the true signed distance; an
// approximation valid for near-flat terrain. Each point is handled
// independently across the worker pool.
func detectContacts(ground terrain.Terrain, model Model, positions, velocities []mgl64.Vec3, workers int) []CollidablePoint {
	points := make([]CollidablePoint, len(positions))

	task(workers, points, func(i int, point *CollidablePoint) {
		p := positions[i]
		normal := ground.NormalAt(p.X(), p.Y())
		gap := mgl64.Vec3{0, 0, p.Z() - ground.HeightAt(p.X(), p.Y())}
		depth := gap.Dot(normal)

		point.Position = mgl64.Vec3{0, 0, depth}
		point.Velocity = velocities[i]
		point.Link = model.ParentLink(i)
		point.Depth = depth
		point.Active = depth < 0
	})

	return points
}
