// Package spatial implements the frame transforms applied to solved contact
// forces. Contact forces are solved in the mixed frame of each contact point
// (co-located with the point, orientation-aligned with the world), so mapping
// them to the world inertial frame uses the dual adjoint of the contact pose
// with its rotation replaced by identity.
package spatial

import "github.com/go-gl/mathgl/mgl64"

// Wrench is a 6D spatial force: a linear force and the moment it induces
// about the world origin.
type Wrench struct {
	Linear  mgl64.Vec3
	Angular mgl64.Vec3
}

// Translation returns the translation column of a homogeneous transform.
func Translation(pose mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{pose.At(0, 3), pose.At(1, 3), pose.At(2, 3)}
}

// MixedToInertial expresses a mixed-frame contact force in the world inertial
// frame. With the rotation part of the pose replaced by identity, the
// transposed dual adjoint applied to [f, 0] leaves the linear force unchanged
// and adds the lever-arm moment of the contact translation.
func MixedToInertial(pose mgl64.Mat4, force mgl64.Vec3) Wrench {
	p := Translation(pose)

	return Wrench{
		Linear:  force,
		Angular: p.Cross(force),
	}
}
