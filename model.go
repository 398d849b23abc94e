// Package stance computes contact forces between the collidable points of an
// articulated rigid-body system and a terrain surface, using a quasi-rigid
// (impedance-regularized) contact model.
//
// The pipeline is a pure function of its inputs: contact detection against
// the terrain, per-contact impedance regularization, assembly of the Delassus
// operator from the system mass matrix and contact jacobians, an iterative
// least-squares force solve, and a frame transform of the result into the
// world inertial frame. Nothing is carried between invocations and no
// numeric edge case raises an error: near-singular mass matrices, vanishing
// impedances and non-converging solves all degrade gracefully.
package stance

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"github.com/akmonengine/stance/solver"
)

// VelocityRepresentation selects the reference frame generalized velocities
// and jacobians are expressed in.
type VelocityRepresentation int

const (
	// Inertial expresses velocities in the world inertial frame.
	Inertial VelocityRepresentation = iota
	// Body expresses velocities in the body-fixed frame.
	Body
	// Mixed expresses velocities in a frame co-located with the body but
	// orientation-aligned with the world.
	Mixed
)

// Model provides the articulated-body quantities consumed by a contact
// model. Implementations own the kinematics and dynamics algorithms; this
// package only consumes their results.
type Model interface {
	// MassMatrix returns the free-floating mass matrix M (n×n, symmetric
	// positive semi-definite, possibly near-singular).
	MassMatrix(data Data) mat.Matrix
	// BiasForces returns the free-floating bias forces h (n).
	BiasForces(data Data) *mat.VecDense
	// ContactJacobian returns the stacked linear jacobian of the collidable
	// points (3k×n).
	ContactJacobian(data Data) *mat.Dense
	// ContactJacobianDerivative returns J̇ (3k×n).
	ContactJacobianDerivative(data Data) *mat.Dense
	// ContactTransforms returns the pose W_H_C of each collidable point.
	ContactTransforms(data Data) []mgl64.Mat4
	// ParentLink returns the index of the link owning collidable point i.
	ParentLink(point int) int
	// LinkInertia returns the 3×3 inertia tensor of a link.
	LinkInertia(link int) mgl64.Mat3
}

// Data is the per-step kinematic state of a Model.
type Data interface {
	// GeneralizedVelocity returns ν (n) in the active representation.
	GeneralizedVelocity() *mat.VecDense
	// SwitchVelocityRepresentation switches the active representation and
	// returns the function restoring the previous one. Callers defer it so
	// the representation is restored on every exit path.
	SwitchVelocityRepresentation(r VelocityRepresentation) (restore func())
}

// Diagnostics is the auxiliary output of a contact-force computation. It is
// opaque to the simulator loop; tests and logs inspect it.
type Diagnostics struct {
	// Active flags which collidable points were in contact.
	Active []bool
	// Solve reports the outcome of the embedded force solve.
	Solve solver.Report
}

// ContactModel turns per-point kinematics into world-frame contact forces.
// Interchangeable contact models (rigid, soft, quasi-rigid) implement this
// contract so a simulator can switch models without special cases; the
// quasi-rigid implementation is QuasiRigid.
//
// No error is returned: contact models handle numeric edge cases by
// clamping and least-squares fallbacks, never by failing.
type ContactModel interface {
	ComputeContactForces(positions, velocities []mgl64.Vec3, model Model, data Data) ([]mgl64.Vec3, Diagnostics)
}
