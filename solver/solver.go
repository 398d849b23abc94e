// Package solver minimizes the assembled contact-force problem ‖Ax + b‖².
//
// The minimizer is treated as a pluggable black box behind the Solver
// interface, parameterized by an iteration cap and a gradient tolerance.
// Alternative minimizers can be substituted without touching the assembly
// logic.
package solver

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Report describes the outcome of a solve.
type Report struct {
	Iterations int
	Converged  bool
	// Objective is ‖Ax + b‖² at the returned iterate.
	Objective float64
}

// Solver minimizes ‖Ax + b‖² over x, starting from x = 0.
// Implementations never fail: the best iterate found is always returned,
// converged or not.
type Solver interface {
	Solve(a mat.Matrix, b *mat.VecDense) ([]float64, Report)
}

// LBFGS minimizes the force problem with a bounded limited-memory BFGS
// iteration. A line-search failure aborts the line search, not the solve.
type LBFGS struct {
	// MaxIterations caps the major iterations of the minimizer.
	MaxIterations int
	// Tolerance is the gradient-norm threshold declaring convergence.
	Tolerance float64
	// History is the number of (s, y) correction pairs kept.
	History int
}

// NewLBFGS returns a solver with the default iteration cap, tolerance and
// history size.
func NewLBFGS() *LBFGS {
	return &LBFGS{
		MaxIterations: 100,
		Tolerance:     1e-10,
		History:       10,
	}
}

func (s *LBFGS) Solve(a mat.Matrix, b *mat.VecDense) ([]float64, Report) {
	n := b.Len()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			r := residual(a, b, x)
			return mat.Dot(r, r)
		},
		Grad: func(grad, x []float64) {
			// ∇‖Ax+b‖² = 2 Aᵀ (Ax+b)
			r := residual(a, b, x)
			g := mat.NewVecDense(n, grad)
			g.MulVec(a.T(), r)
			g.ScaleVec(2, g)
		},
	}

	// The minimizer spends one major iteration on the starting location
	// before taking a step, so the cap is shifted by one to bound the number
	// of actual steps.
	settings := &optimize.Settings{
		MajorIterations:   s.MaxIterations + 1,
		GradientThreshold: s.Tolerance,
	}
	method := &optimize.LBFGS{Store: s.History}

	x := make([]float64, n)
	result, err := optimize.Minimize(problem, x, settings, method)
	if result == nil {
		// The minimizer could not take a single step; x = 0 is the best iterate.
		return x, Report{}
	}

	copy(x, result.X)

	return x, Report{
		Iterations: max(0, result.Stats.MajorIterations-1),
		Converged:  err == nil && result.Status != optimize.IterationLimit,
		Objective:  result.F,
	}
}

func residual(a mat.Matrix, b *mat.VecDense, x []float64) *mat.VecDense {
	r := mat.NewVecDense(b.Len(), nil)
	r.MulVec(a, mat.NewVecDense(len(x), x))
	r.AddVec(r, b)

	return r
}
