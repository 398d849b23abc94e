package stance

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// impedanceEps guards the division by the impedance as ξ → 0.
const impedanceEps = 1e-12

// impedance evaluates the contact impedance ξ at the given penetration depth.
// The normalized depth x = |depth|/width runs through a two-piece smooth
// power curve, a monotone S-shaped transition from 0 to 1 across
// [0, midpoint, 1]:
//
//	x < midpoint:  y = x^p / midpoint^(p−1)
//	x ≥ midpoint:  y = 1 − (1−x)^p / (1−midpoint)^(p−1)
//
// The result is clamped to [MinImpedance, MaxImpedance]; at the end of the
// curve's domain (x ≥ 1) the impedance saturates to MaxImpedance rather than
// extrapolating.
func (p Parameters) impedance(depth float64) float64 {
	x := math.Abs(depth) / p.Width
	if x >= 1 {
		return p.MaxImpedance
	}

	var y float64
	if x < p.Midpoint {
		y = math.Pow(x, p.Power) / math.Pow(p.Midpoint, p.Power-1)
	} else {
		y = 1 - math.Pow(1-x, p.Power)/math.Pow(1-p.Midpoint, p.Power-1)
	}

	xi := p.MinImpedance + y*(p.MaxImpedance-p.MinImpedance)

	return math.Min(math.Max(xi, p.MinImpedance), p.MaxImpedance)
}

// coefficients derives the effective stiffness/damping pair (K_f, D_f).
// Non-positive Stiffness/Damping values act as direct spring and damper
// coefficients; positive values switch to a critically-damped-style pair
// derived from the time constant and damping ratio. Both branches yield
// finite, non-negative coefficients for in-range parameters.
func (p Parameters) coefficients() (kf, df float64) {
	if p.Stiffness <= 0 {
		kf = -p.Stiffness / (p.MaxImpedance * p.MaxImpedance)
	} else {
		kf = 1 / math.Pow(p.MaxImpedance*p.TimeConstant*p.DampingRatio, 2)
	}

	if p.Damping <= 0 {
		df = -p.Damping / p.MaxImpedance
	} else {
		df = 2 / (p.MaxImpedance * p.TimeConstant)
	}

	return kf, df
}

// regularize computes the reference acceleration and the regularization
// weight of a single contact. The reference acceleration is the
// Baumgarte-style stabilization term −(D_f·v + K_f·ξ·g); the weight shrinks
// as the impedance rises, so stiff contacts approach the rigid solution.
// Inactive contacts are fully decoupled: both terms are zero.
func (p Parameters) regularize(point CollidablePoint, inertia mgl64.Mat3) (aRef mgl64.Vec3, reg float64) {
	if !point.Active {
		return mgl64.Vec3{}, 0
	}

	xi := p.impedance(point.Depth)
	kf, df := p.coefficients()

	for i := 0; i < 3; i++ {
		aRef[i] = -(df*point.Velocity[i] + kf*xi*point.Position[i])
	}

	// The weight is uniform across the three force components: normal and
	// both tangential directions share the same regularization.
	mu := p.Friction
	inv := inertia.Inv()
	meanInvInertia := (inv.At(0, 0) + inv.At(1, 1) + inv.At(2, 2)) / 3
	reg = (2 * mu * mu * (1 - xi) / (xi + impedanceEps)) * (1 + mu*mu) * meanInvInertia

	return aRef, reg
}
