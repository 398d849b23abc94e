package stance

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/akmonengine/stance/delassus"
	"github.com/akmonengine/stance/solver"
	"github.com/akmonengine/stance/spatial"
	"github.com/akmonengine/stance/terrain"
)

const DEFAULT_WORKERS = 1

// QuasiRigid is the quasi-rigid contact model: a smooth impedance curve
// substitutes for hard complementarity constraints, and the contact forces
// are the minimizer of the regularized Delassus system.
type QuasiRigid struct {
	Parameters Parameters
	// Terrain is the ground surface points collide with (flat by default).
	Terrain terrain.Terrain
	// Solver minimizes the assembled force problem.
	Solver solver.Solver
	// Workers bounds the goroutines used for the per-contact stages.
	Workers int

	Log *zap.Logger
}

// NewQuasiRigid builds a quasi-rigid contact model over flat terrain with
// the default force solver. The logger is a no-op until replaced.
func NewQuasiRigid(params Parameters) *QuasiRigid {
	return &QuasiRigid{
		Parameters: params,
		Terrain:    terrain.Flat{},
		Solver:     solver.NewLBFGS(),
		Workers:    DEFAULT_WORKERS,
		Log:        zap.NewNop(),
	}
}

// ComputeContactForces computes one world-frame 3D force per collidable
// point. positions and velocities are the mixed-frame world positions and
// linear velocities of the points; model and data supply the articulated
// system they belong to. Points not in contact yield an exactly zero force.
func (m *QuasiRigid) ComputeContactForces(positions, velocities []mgl64.Vec3, model Model, data Data) ([]mgl64.Vec3, Diagnostics) {
	k := len(positions)
	if k == 0 {
		return nil, Diagnostics{}
	}
	workers := max(DEFAULT_WORKERS, m.Workers)

	points := detectContacts(m.Terrain, model, positions, velocities, workers)

	aRef := make([]float64, 3*k)
	reg := make([]float64, 3*k)
	active := make([]bool, k)
	task(workers, points, func(i int, point *CollidablePoint) {
		a, r := m.Parameters.regularize(*point, model.LinkInertia(point.Link))
		copy(aRef[3*i:3*i+3], a[:])
		reg[3*i], reg[3*i+1], reg[3*i+2] = r, r, r
		active[i] = point.Active
	})

	jac, jacDot, massMatrix, bias, vel, poses := readMixed(model, data)

	// Mask on copies so the provider's jacobians stay untouched.
	jac = mat.DenseCopyOf(jac)
	jacDot = mat.DenseCopyOf(jacDot)
	delassus.ZeroContactRows(jac, active)
	delassus.ZeroContactRows(jacDot, active)

	system := delassus.Assemble(massMatrix, jac, jacDot, bias, vel, aRef, reg)

	x, report := m.Solver.Solve(system.A, system.B)
	m.Log.Debug("contact force solve",
		zap.Int("contacts", k),
		zap.Int("iterations", report.Iterations),
		zap.Bool("converged", report.Converged),
		zap.Float64("objective", report.Objective))

	forces := make([]mgl64.Vec3, k)
	for i := range forces {
		mixed := mgl64.Vec3{x[3*i], x[3*i+1], x[3*i+2]}
		forces[i] = spatial.MixedToInertial(poses[i], mixed).Linear
	}

	return forces, Diagnostics{Active: active, Solve: report}
}

// readMixed reads every system quantity under the mixed velocity
// representation, restoring the previous representation on exit.
func readMixed(model Model, data Data) (jac, jacDot *mat.Dense, massMatrix mat.Matrix, bias, vel *mat.VecDense, poses []mgl64.Mat4) {
	restore := data.SwitchVelocityRepresentation(Mixed)
	defer restore()

	jac = model.ContactJacobian(data)
	jacDot = model.ContactJacobianDerivative(data)
	massMatrix = model.MassMatrix(data)
	bias = model.BiasForces(data)
	vel = data.GeneralizedVelocity()
	poses = model.ContactTransforms(data)

	return jac, jacDot, massMatrix, bias, vel, poses
}
