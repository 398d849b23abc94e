// Package terrain provides the ground surfaces collidable points are tested
// against. A terrain is a height field queried at horizontal coordinates;
// implementations only need a height and a surface normal, so new terrain
// types are additional implementations of the Terrain interface.
package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Terrain is a height-field ground surface.
type Terrain interface {
	// HeightAt returns the terrain height at the given horizontal coordinates.
	HeightAt(x, y float64) float64
	// NormalAt returns the outward surface normal at the given horizontal coordinates.
	NormalAt(x, y float64) mgl64.Vec3
}

// Flat is the default terrain: zero height everywhere, normal +Z.
type Flat struct{}

func (Flat) HeightAt(x, y float64) float64 {
	return 0
}

func (Flat) NormalAt(x, y float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, 1}
}

// Plane is an inclined planar terrain passing through Origin with the given
// unit normal.
type Plane struct {
	Normal mgl64.Vec3
	Origin mgl64.Vec3
}

// NewPlane builds a planar terrain, normalizing the normal vector.
func NewPlane(normal, origin mgl64.Vec3) Plane {
	return Plane{Normal: normal.Normalize(), Origin: origin}
}

// HeightAt solves the plane equation n·(p−o) = 0 for z. A near-vertical plane
// has no height function; the origin height is returned instead of dividing
// by zero.
func (p Plane) HeightAt(x, y float64) float64 {
	n := p.Normal
	if math.Abs(n.Z()) < 1e-12 {
		return p.Origin.Z()
	}

	d := n.Dot(p.Origin)
	return (d - n.X()*x - n.Y()*y) / n.Z()
}

func (p Plane) NormalAt(x, y float64) mgl64.Vec3 {
	return p.Normal
}
