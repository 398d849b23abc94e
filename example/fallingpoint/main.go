// Command fallingpoint drops a single point mass on flat terrain and prints
// the contact force computed by the quasi-rigid model at every step.
package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"github.com/akmonengine/stance"
)

const (
	mass    = 10.0
	gravity = 9.81
	dt      = 0.001
	steps   = 25
)

// pointMass is a one-link system with three translational degrees of freedom
// and a single collidable point at the link origin.
type pointMass struct {
	position mgl64.Vec3
	velocity mgl64.Vec3
}

func (p *pointMass) MassMatrix(stance.Data) mat.Matrix {
	return mat.NewDiagDense(3, []float64{mass, mass, mass})
}

func (p *pointMass) BiasForces(stance.Data) *mat.VecDense {
	return mat.NewVecDense(3, []float64{0, 0, mass * gravity})
}

func (p *pointMass) ContactJacobian(stance.Data) *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func (p *pointMass) ContactJacobianDerivative(stance.Data) *mat.Dense {
	return mat.NewDense(3, 3, nil)
}

func (p *pointMass) ContactTransforms(stance.Data) []mgl64.Mat4 {
	return []mgl64.Mat4{mgl64.Translate3D(p.position.X(), p.position.Y(), p.position.Z())}
}

func (p *pointMass) ParentLink(point int) int {
	return 0
}

func (p *pointMass) LinkInertia(link int) mgl64.Mat3 {
	return mgl64.Ident3()
}

func (p *pointMass) GeneralizedVelocity() *mat.VecDense {
	return mat.NewVecDense(3, []float64{p.velocity.X(), p.velocity.Y(), p.velocity.Z()})
}

func (p *pointMass) SwitchVelocityRepresentation(stance.VelocityRepresentation) (restore func()) {
	// A point mass has no orientation: every representation coincides.
	return func() {}
}

func main() {
	body := &pointMass{position: mgl64.Vec3{0, 0, 0.005}}
	contact := stance.NewQuasiRigid(stance.DefaultParameters())

	for step := 0; step < steps; step++ {
		forces, diag := contact.ComputeContactForces(
			[]mgl64.Vec3{body.position},
			[]mgl64.Vec3{body.velocity},
			body, body,
		)

		// Semi-implicit Euler with the contact force applied to the link.
		accel := forces[0].Mul(1 / mass).Add(mgl64.Vec3{0, 0, -gravity})
		body.velocity = body.velocity.Add(accel.Mul(dt))
		body.position = body.position.Add(body.velocity.Mul(dt))

		fmt.Printf("t=%5.3fs z=%+.6f vz=%+.4f fz=%8.3f active=%v iterations=%d\n",
			float64(step)*dt, body.position.Z(), body.velocity.Z(),
			forces[0].Z(), diag.Active[0], diag.Solve.Iterations)
	}
}
