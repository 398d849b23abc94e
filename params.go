package stance

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Default parameter values of the quasi-rigid contact model.
const (
	DefaultTimeConstant = 0.01
	DefaultDampingRatio = 1.0
	DefaultMinImpedance = 0.9
	DefaultMaxImpedance = 0.95
	DefaultWidth        = 1e-4
	DefaultMidpoint     = 0.0
	DefaultPower        = 0.0
	DefaultStiffness    = 0.0
	DefaultDamping      = 0.0
	DefaultFriction     = 0.5
)

// Parameters configure the quasi-rigid contact model: the shape of the
// impedance curve, the stiffness/damping of the soft constraint, and the
// friction coefficient. Parameters is a plain value type: two instances
// compare equal iff every field matches, so a Parameters can serve as a
// cache key together with Hash.
//
// Construction never rejects out-of-range values; callers check Valid
// explicitly.
type Parameters struct {
	// TimeConstant is the settling time constant τ of the soft constraint.
	TimeConstant float64
	// DampingRatio is the adimensional damping coefficient ζ.
	DampingRatio float64
	// MinImpedance and MaxImpedance bound the contact impedance ξ.
	MinImpedance float64
	MaxImpedance float64
	// Width scales penetration depth before it enters the impedance curve.
	Width float64
	// Midpoint and Power shape the two-piece transition of the impedance curve.
	Midpoint float64
	Power    float64
	// Stiffness and Damping select the coefficient parameterization: kept at
	// or below zero they act as a direct spring/damper pair, positive values
	// switch to the τ/ζ settling-time derivation.
	Stiffness float64
	Damping   float64
	// Friction is the friction coefficient μ.
	Friction float64
}

// DefaultParameters returns Parameters with every field at its default.
// Override individual fields before use.
func DefaultParameters() Parameters {
	return Parameters{
		TimeConstant: DefaultTimeConstant,
		DampingRatio: DefaultDampingRatio,
		MinImpedance: DefaultMinImpedance,
		MaxImpedance: DefaultMaxImpedance,
		Width:        DefaultWidth,
		Midpoint:     DefaultMidpoint,
		Power:        DefaultPower,
		Stiffness:    DefaultStiffness,
		Damping:      DefaultDamping,
		Friction:     DefaultFriction,
	}
}

// Valid reports whether every parameter invariant holds:
// τ ≥ 0, ζ ≥ 0, 0 ≤ d_min ≤ d_max ≤ 1, width ≥ 0, midpoint ≥ 0,
// power ≥ 0, stiffness ≥ 0, damping ≥ 0, μ ≥ 0.
func (p Parameters) Valid() bool {
	return p.TimeConstant >= 0 &&
		p.DampingRatio >= 0 &&
		p.MinImpedance >= 0 &&
		p.MaxImpedance <= 1 &&
		p.MinImpedance <= p.MaxImpedance &&
		p.Width >= 0 &&
		p.Midpoint >= 0 &&
		p.Power >= 0 &&
		p.Stiffness >= 0 &&
		p.Damping >= 0 &&
		p.Friction >= 0
}

// Hash returns a content hash over all fields. Together with native struct
// equality it lets Parameters act as a memoization key.
func (p Parameters) Hash() uint64 {
	fields := [...]float64{
		p.TimeConstant,
		p.DampingRatio,
		p.MinImpedance,
		p.MaxImpedance,
		p.Width,
		p.Midpoint,
		p.Power,
		p.Stiffness,
		p.Damping,
		p.Friction,
	}

	h := fnv.New64a()
	var buf [8]byte
	for _, f := range fields {
		// Adding zero maps -0 to +0, keeping the hash consistent with native
		// equality, under which the two compare equal.
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f+0))
		h.Write(buf[:])
	}

	return h.Sum64()
}
