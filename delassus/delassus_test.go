package delassus

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func identityJacobian(contacts, dofs int) *mat.Dense {
	j := mat.NewDense(3*contacts, dofs, nil)
	for p := 0; p < contacts; p++ {
		for i := 0; i < 3; i++ {
			j.Set(3*p+i, i, 1)
		}
	}
	return j
}

func TestZeroContactRows(t *testing.T) {
	j := identityJacobian(2, 3)

	ZeroContactRows(j, []bool{false, true})

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if j.At(r, c) != 0 {
				t.Errorf("masked row %d has nonzero entry at column %d: %v", r, c, j.At(r, c))
			}
		}
	}
	// The active contact's rows are untouched.
	for i := 0; i < 3; i++ {
		if j.At(3+i, i) != 1 {
			t.Errorf("active contact row %d lost its entry", 3+i)
		}
	}
}

func TestAssembleSingleContact(t *testing.T) {
	// M = m·I, J = I, J̇ = 0: G = (1/m)·I and a_free = −h/m.
	m := 4.0
	massMatrix := mat.NewDense(3, 3, []float64{m, 0, 0, 0, m, 0, 0, 0, m})
	jac := identityJacobian(1, 3)
	jacDot := mat.NewDense(3, 3, nil)
	bias := mat.NewVecDense(3, []float64{0, 0, m * 9.81})
	vel := mat.NewVecDense(3, nil)
	aRef := []float64{0, 0, -2.5}
	reg := []float64{0.1, 0.1, 0.1}

	system := Assemble(massMatrix, jac, jacDot, bias, vel, aRef, reg)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1/m + 0.1
			}
			if !scalar.EqualWithinAbs(system.A.At(i, j), want, 1e-12) {
				t.Errorf("A[%d,%d] = %v, want %v", i, j, system.A.At(i, j), want)
			}
		}
	}

	// b = a_free − a_ref = [0, 0, −9.81 + 2.5]
	if !scalar.EqualWithinAbs(system.B.AtVec(2), -9.81+2.5, 1e-12) {
		t.Errorf("b[2] = %v, want %v", system.B.AtVec(2), -9.81+2.5)
	}
	if system.B.AtVec(0) != 0 || system.B.AtVec(1) != 0 {
		t.Errorf("tangential b = (%v, %v), want zero", system.B.AtVec(0), system.B.AtVec(1))
	}
}

func TestAssembleDriftTerm(t *testing.T) {
	massMatrix := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	jac := identityJacobian(1, 3)
	jacDot := mat.NewDense(3, 3, []float64{0, 0, 0, 0, 0, 0, 0, 0, 2})
	bias := mat.NewVecDense(3, nil)
	vel := mat.NewVecDense(3, []float64{0, 0, 3})

	system := Assemble(massMatrix, jac, jacDot, bias, vel, make([]float64, 3), make([]float64, 3))

	// a_free = J̇·ν = [0, 0, 6]
	if !scalar.EqualWithinAbs(system.B.AtVec(2), 6, 1e-12) {
		t.Errorf("b[2] = %v, want 6", system.B.AtVec(2))
	}
}

func TestAssembleMaskedContactDecoupled(t *testing.T) {
	// Two contacts on the same 3-DoF system, the second masked: its rows and
	// columns of A and its entries of b must be exactly zero before solving.
	massMatrix := mat.NewDense(3, 3, []float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	jac := identityJacobian(2, 3)
	jacDot := mat.NewDense(6, 3, nil)
	active := []bool{true, false}
	ZeroContactRows(jac, active)
	bias := mat.NewVecDense(3, []float64{0, 0, 19.62})
	vel := mat.NewVecDense(3, nil)
	aRef := []float64{0, 0, -1, 0, 0, 0}
	reg := []float64{0.2, 0.2, 0.2, 0, 0, 0}

	system := Assemble(massMatrix, jac, jacDot, bias, vel, aRef, reg)

	for r := 3; r < 6; r++ {
		if system.B.AtVec(r) != 0 {
			t.Errorf("b[%d] = %v, want zero for masked contact", r, system.B.AtVec(r))
		}
		for c := 0; c < 6; c++ {
			if system.A.At(r, c) != 0 {
				t.Errorf("A[%d,%d] = %v, want zero row for masked contact", r, c, system.A.At(r, c))
			}
			if system.A.At(c, r) != 0 {
				t.Errorf("A[%d,%d] = %v, want zero column for masked contact", c, r, system.A.At(c, r))
			}
		}
	}
}

func TestAssembleSingularMassMatrix(t *testing.T) {
	// A rank-deficient mass matrix must degrade to the least-squares
	// pseudo-inverse instead of producing NaNs.
	massMatrix := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 0})
	jac := identityJacobian(1, 3)
	jacDot := mat.NewDense(3, 3, nil)
	bias := mat.NewVecDense(3, []float64{1, 1, 1})
	vel := mat.NewVecDense(3, nil)

	system := Assemble(massMatrix, jac, jacDot, bias, vel, make([]float64, 3), make([]float64, 3))

	for i := 0; i < 3; i++ {
		if math.IsNaN(system.B.AtVec(i)) || math.IsInf(system.B.AtVec(i), 0) {
			t.Errorf("b[%d] = %v, want finite", i, system.B.AtVec(i))
		}
		for j := 0; j < 3; j++ {
			if math.IsNaN(system.A.At(i, j)) || math.IsInf(system.A.At(i, j), 0) {
				t.Errorf("A[%d,%d] = %v, want finite", i, j, system.A.At(i, j))
			}
		}
	}

	// The dropped direction contributes nothing to the Delassus operator.
	if !scalar.EqualWithinAbs(system.A.At(2, 2), 0, 1e-12) {
		t.Errorf("A[2,2] = %v, want zero for the singular direction", system.A.At(2, 2))
	}
}

func TestAssembleZeroMassMatrix(t *testing.T) {
	massMatrix := mat.NewDense(2, 2, nil)
	jac := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 0, 0})
	jacDot := mat.NewDense(3, 2, nil)
	bias := mat.NewVecDense(2, []float64{1, -1})
	vel := mat.NewVecDense(2, nil)

	system := Assemble(massMatrix, jac, jacDot, bias, vel, make([]float64, 3), make([]float64, 3))

	var sum float64
	for i := 0; i < 3; i++ {
		sum += math.Abs(system.B.AtVec(i))
		for j := 0; j < 3; j++ {
			sum += math.Abs(system.A.At(i, j))
		}
	}
	if sum != 0 || math.IsNaN(sum) {
		t.Errorf("zero mass matrix should assemble an all-zero system, got magnitude %v", sum)
	}
}
