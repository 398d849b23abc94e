package stance

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// pointMassModel is a minimal articulated system for tests: k collidable
// points attached to a single point-mass link with n = 3 degrees of freedom,
// so the contact jacobian is k stacked identity blocks.
type pointMassModel struct {
	mass    float64
	gravity float64
	inertia mgl64.Mat3
	points  int
}

func newPointMassModel(mass float64, points int) *pointMassModel {
	return &pointMassModel{
		mass:    mass,
		gravity: 9.81,
		inertia: mgl64.Ident3(),
		points:  points,
	}
}

func (m *pointMassModel) MassMatrix(Data) mat.Matrix {
	d := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		d.Set(i, i, m.mass)
	}
	return d
}

func (m *pointMassModel) BiasForces(Data) *mat.VecDense {
	return mat.NewVecDense(3, []float64{0, 0, m.mass * m.gravity})
}

func (m *pointMassModel) ContactJacobian(Data) *mat.Dense {
	j := mat.NewDense(3*m.points, 3, nil)
	for p := 0; p < m.points; p++ {
		for i := 0; i < 3; i++ {
			j.Set(3*p+i, i, 1)
		}
	}
	return j
}

func (m *pointMassModel) ContactJacobianDerivative(Data) *mat.Dense {
	return mat.NewDense(3*m.points, 3, nil)
}

func (m *pointMassModel) ContactTransforms(Data) []mgl64.Mat4 {
	poses := make([]mgl64.Mat4, m.points)
	for i := range poses {
		poses[i] = mgl64.Ident4()
	}
	return poses
}

func (m *pointMassModel) ParentLink(point int) int {
	return 0
}

func (m *pointMassModel) LinkInertia(link int) mgl64.Mat3 {
	return m.inertia
}

// fixedData holds a constant generalized velocity and tracks the active
// velocity representation.
type fixedData struct {
	vel  *mat.VecDense
	repr VelocityRepresentation
}

func newFixedData() *fixedData {
	return &fixedData{vel: mat.NewVecDense(3, nil), repr: Inertial}
}

func (d *fixedData) GeneralizedVelocity() *mat.VecDense {
	return d.vel
}

func (d *fixedData) SwitchVelocityRepresentation(r VelocityRepresentation) (restore func()) {
	previous := d.repr
	d.repr = r
	return func() { d.repr = previous }
}
