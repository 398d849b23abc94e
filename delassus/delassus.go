// Package delassus assembles the linear problem whose solution is the set of
// contact forces: the Delassus operator of the contact points plus the
// impedance regularization, against the free contact acceleration minus the
// reference acceleration.
//
// The mass matrix of an articulated system can be singular or severely
// ill-conditioned, so every product with M⁻¹ goes through a singular-value
// pseudo-inverse instead of an explicit inversion.
package delassus

import "gonum.org/v1/gonum/mat"

// rankTol scales the singular-value cutoff of the mass-matrix pseudo-inverse.
const rankTol = 1e-12

// System is the assembled least-squares problem min ‖Ax + b‖².
type System struct {
	// A = G + R, with G the Delassus operator and R the regularization diagonal (3k×3k).
	A *mat.Dense
	// B = a_free − a_ref (3k).
	B *mat.VecDense
}

// ZeroContactRows zeroes the three jacobian rows of every inactive contact.
// Masked rows remove the contact's coupling and free acceleration from the
// assembled system without changing its shape.
func ZeroContactRows(jac *mat.Dense, active []bool) {
	_, cols := jac.Dims()
	for i, on := range active {
		if on {
			continue
		}
		for r := 3 * i; r < 3*i+3; r++ {
			for c := 0; c < cols; c++ {
				jac.Set(r, c, 0)
			}
		}
	}
}

// Assemble builds the force problem from the mass matrix, the pre-masked
// contact jacobian and its derivative, the bias forces, the generalized
// velocity, and the per-component reference acceleration and regularization
// weights:
//
//	G = J M⁺ Jᵀ
//	a_free = J M⁺ (−h) + J̇ ν
//	A = G + diag(reg)
//	b = a_free − a_ref
func Assemble(massMatrix mat.Matrix, jac, jacDot *mat.Dense, bias, vel *mat.VecDense, aRef, reg []float64) System {
	rows, _ := jac.Dims()
	n := bias.Len()

	mInv := pseudoInverse(massMatrix)

	// G = J M⁺ Jᵀ
	var mInvJt mat.Dense
	mInvJt.Mul(mInv, jac.T())
	var g mat.Dense
	g.Mul(jac, &mInvJt)

	// a_free = J M⁺ (−h) + J̇ ν
	negBias := mat.NewVecDense(n, nil)
	negBias.ScaleVec(-1, bias)
	var accel mat.VecDense
	accel.MulVec(mInv, negBias)
	freeAccel := mat.NewVecDense(rows, nil)
	freeAccel.MulVec(jac, &accel)
	var drift mat.VecDense
	drift.MulVec(jacDot, vel)
	freeAccel.AddVec(freeAccel, &drift)

	a := mat.NewDense(rows, rows, nil)
	a.Add(&g, mat.NewDiagDense(rows, reg))

	b := mat.NewVecDense(rows, nil)
	b.AddScaledVec(freeAccel, -1, mat.NewVecDense(rows, aRef))

	return System{A: a, B: b}
}

// pseudoInverse computes the Moore-Penrose inverse A⁺ = V Σ⁺ Uᵀ, dropping
// singular values below the rank tolerance. A zero matrix yields a zero
// pseudo-inverse rather than an error.
func pseudoInverse(a mat.Matrix) *mat.Dense {
	rows, cols := a.Dims()

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return mat.NewDense(cols, rows, nil)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	cut := rankTol * float64(max(rows, cols)) * values[0]
	inv := make([]float64, len(values))
	for i, s := range values {
		if s > cut && s > 0 {
			inv[i] = 1 / s
		}
	}

	var vs mat.Dense
	vs.Mul(&v, mat.NewDiagDense(len(inv), inv))
	var pinv mat.Dense
	pinv.Mul(&vs, u.T())

	return &pinv
}
