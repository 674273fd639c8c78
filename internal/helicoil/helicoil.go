// Package helicoil provides the EN 13906-1 formula set for hot-coiled
// helical compression springs, material descriptors with diameter-dependent
// stress limits, and a reportable per-coil record with a delimited-text codec.
//
// Units throughout: lengths in mm, forces in N, moduli and stresses in MPa.
package helicoil

import (
	"errors"
	"math"
)

var (
	// ErrInvalidGeometry marks coil geometry the formula set is undefined
	// for (non-positive dimensions, spring index <= 1). Callers probing a
	// design space treat it as "reject this point", not as a failure.
	ErrInvalidGeometry = errors.New("helicoil: invalid coil geometry")

	// ErrNoBucklingPoint marks a spring that stays laterally stable over
	// its whole travel, so no buckling deflection exists.
	ErrNoBucklingPoint = errors.New("helicoil: spring has no buckling point")
)

// SolidLength returns the length of a spring compressed coil-to-coil.
// Ends closed and ground, two inactive end coils.
func SolidLength(coils, d float64) float64 {
	return (coils + 2.0) * d
}

// MinReserveLength returns Sa, the sum of minimum inter-coil gaps that must
// remain above the solid length in service (hot-coiled rule).
func MinReserveLength(D, d, coils float64) float64 {
	return 0.02 * coils * (D + d)
}

// AxialRate returns the spring rate in N/mm.
func AxialRate(G, d, D, coils float64) float64 {
	return G * d * d * d * d / (8.0 * D * D * D * coils)
}

// StaticAxialStress returns the uncorrected torsional stress under axial
// load F.
func StaticAxialStress(D, d, F float64) float64 {
	return 8.0 * D * F / (math.Pi * d * d * d)
}

// ValidateCoil is the domain boundary for the formula set. It rejects
// geometry a root finder may probe on its way to a solution so the caller
// can back off the step instead of propagating NaN. The comparisons are
// negated so that NaN inputs fail them.
func ValidateCoil(D, d, coils float64) error {
	if !(d > 0) || !(coils > 0) || !(D > d) {
		return ErrInvalidGeometry
	}
	if math.IsInf(D, 0) || math.IsInf(d, 0) || math.IsInf(coils, 0) {
		return ErrInvalidGeometry
	}
	return nil
}

// BucklingDeflection returns the axial deflection at which a spring of free
// length L0 and mean diameter D becomes laterally unstable. The end
// condition coefficient describes the end restraint (1.0 = guided ends).
func BucklingDeflection(G, E, D, L0, endCondition float64) (float64, error) {
	if !(D > 0) || !(L0 > 0) || !(endCondition > 0) || !(E > G) || !(G > 0) {
		return 0, ErrInvalidGeometry
	}
	if math.IsInf(D, 0) || math.IsInf(L0, 0) || math.IsInf(E, 0) || math.IsInf(G, 0) {
		return 0, ErrInvalidGeometry
	}
	ge := G / E
	slender := math.Pi * D / (endCondition * L0)
	disc := 1.0 - (1.0-ge)/(0.5+ge)*slender*slender
	if disc < 0 {
		return 0, ErrNoBucklingPoint
	}
	return L0 * 0.5 / (1.0 - ge) * (1.0 - math.Sqrt(disc)), nil
}
