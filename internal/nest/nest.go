// Package nest sizes a two-coil compression spring nest to a defined design
// length. Seven unknowns (outer diameter, both wire diameters, both active
// coil counts, both free lengths) are driven to a consistent design by a
// nonlinear root finder over seven simultaneous constraints: combined rate,
// minimum length per coil, length at design load, solid stress reserve per
// coil, and inner coil lateral stability.
package nest

import (
	"fmt"

	"github.com/coilworks/coilnest/internal/helicoil"
	"github.com/coilworks/coilnest/internal/solver"
)

// Nest is one design problem. Solves are pure functions of the
// configuration, so a Nest is safe to share across goroutines.
type Nest struct {
	cfg Config
}

// New validates the configuration and returns the design problem.
func New(cfg Config) (*Nest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Nest{cfg: cfg}, nil
}

// Config returns the configuration the nest was built with.
func (n *Nest) Config() Config { return n.cfg }

// preload is the contact state of the nest before external load is applied:
// the coil with the greater free length is compressed against the shorter
// one and carries an initial force.
type preload struct {
	outerForce    float64
	innerForce    float64
	contactLength float64 // length at which both coils carry load
}

// resolvePreload picks the preloaded coil. Equal free lengths route to the
// inner branch with zero force on both; the branch direction fixes the sign
// conventions used downstream, so it must not change.
func resolvePreload(ro, ri, l0o, l0i float64) preload {
	if l0o > l0i {
		return preload{outerForce: ro * (l0o - l0i), contactLength: l0i}
	}
	return preload{innerForce: ri * (l0i - l0o), contactLength: l0o}
}

// Residual writes the seven constraint residuals at x into v. The vector x
// is [OD, do, No, L0o, di, Ni, L0i]; v is zero exactly at a valid design.
// A non-nil error marks x as outside the formula domain (the root finder
// may probe such points) and rejects the step.
func (n *Nest) Residual(x, v []float64) error {
	c := n.cfg
	OD, do, No, L0o := x[0], x[1], x[2], x[3]
	di, Ni, L0i := x[4], x[5], x[6]

	minServiceLen := c.DesignLength - c.MaxCompression
	minLength := minServiceLen - c.CompressionReserve

	// Nested layout: outer wire on both sides, the radial clearance, then
	// the inner wire, before reaching the inner mean diameter.
	Do := OD - do
	Di := Do - do - 2*c.RadialCoilGap - di

	if err := helicoil.ValidateCoil(Do, do, No); err != nil {
		return err
	}
	if err := helicoil.ValidateCoil(Di, di, Ni); err != nil {
		return err
	}
	if !(L0o > 0) || !(L0i > 0) {
		return helicoil.ErrInvalidGeometry
	}

	lco := helicoil.SolidLength(No, do)
	lci := helicoil.SolidLength(Ni, di)
	minLengthO := lco + helicoil.MinReserveLength(Do, do, No)
	minLengthI := lci + helicoil.MinReserveLength(Di, di, Ni)

	ro := helicoil.AxialRate(c.Material.ShearModulus, do, Do, No)
	ri := helicoil.AxialRate(c.Material.ShearModulus, di, Di, Ni)

	pre := resolvePreload(ro, ri, L0o, L0i)
	f2 := c.DesignLoad - pre.outerForce - pre.innerForce
	lengthAtLoad := pre.contactLength - f2/(ro+ri)

	solidStressO := helicoil.StaticAxialStress(Do, do, ro*(L0o-lco))
	solidStressI := helicoil.StaticAxialStress(Di, di, ri*(L0i-lci))

	buckDefln, err := helicoil.BucklingDeflection(
		c.Material.ShearModulus, c.Material.ElasticModulus, Di, L0i, c.EndCondition)
	if err != nil {
		return err
	}

	v[0] = ro + ri - c.AxialRate
	v[1] = minLengthO - minLength
	v[2] = minLengthI - minLength
	v[3] = lengthAtLoad - c.DesignLength
	v[4] = (c.Material.SolidStressLimit(do) - solidStressO) - c.SolidStressReserve
	v[5] = (c.Material.SolidStressLimit(di) - solidStressI) - c.SolidStressReserve
	v[6] = (L0i - buckDefln) - minServiceLen
	return nil
}

// Solution is a converged design: the raw solution vector, the solver state
// at convergence, and the two derived coil records.
type Solution struct {
	X          [7]float64
	Outer      helicoil.CoilData
	Inner      helicoil.CoilData
	Diagnostic solver.Diagnostic
}

// SolveError reports a failed solve together with the solver's last state,
// so the caller can inspect the final iterate or retry from another guess.
type SolveError struct {
	Diagnostic *solver.Diagnostic
	Err        error
}

func (e *SolveError) Error() string {
	if e.Diagnostic != nil {
		return fmt.Sprintf("nest: no solution: %v (iterations=%d, residual norm=%.3e)",
			e.Err, e.Diagnostic.Iterations, e.Diagnostic.Norm)
	}
	return fmt.Sprintf("nest: no solution: %v", e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }

// Solve drives the residual to zero from the configured initial guess, then
// derives the per-coil loads at the design length and packages both coil
// records. Failure returns a *SolveError, never a panic.
func (n *Nest) Solve() (*Solution, error) {
	c := n.cfg
	diag, err := solver.Solve(n.Residual, c.InitialGuess[:], solver.Options{})
	if err != nil {
		return nil, &SolveError{Diagnostic: diag, Err: err}
	}

	var x [7]float64
	copy(x[:], diag.X)
	OD, do, No, L0o := x[0], x[1], x[2], x[3]
	di, Ni, L0i := x[4], x[5], x[6]

	Do := OD - do
	Di := Do - do - 2*c.RadialCoilGap - di
	ro := helicoil.AxialRate(c.Material.ShearModulus, do, Do, No)
	ri := helicoil.AxialRate(c.Material.ShearModulus, di, Di, Ni)

	pre := resolvePreload(ro, ri, L0o, L0i)
	fo := pre.outerForce + ro*(pre.contactLength-c.DesignLength)
	fi := pre.innerForce + ri*(pre.contactLength-c.DesignLength)

	minLen := c.DesignLength - c.MaxCompression
	return &Solution{
		X: x,
		Outer: helicoil.NewCoilData("Outer Coil", do, Do, No, fo,
			c.DesignLength, minLen, c.LoCycleAmplitude, c.HiCycleAmplitude, c.Material),
		Inner: helicoil.NewCoilData("Inner Coil", di, Di, Ni, fi,
			c.DesignLength, minLen, c.LoCycleAmplitude, c.HiCycleAmplitude, c.Material),
		Diagnostic: *diag,
	}, nil
}
