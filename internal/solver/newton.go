// Package solver finds roots of square systems of nonlinear equations with
// a damped Newton iteration. The Jacobian is approximated by forward
// differences, so callers only supply the residual function itself.
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Func evaluates the residual at x, writing the result into fvec. Both
// slices have the system dimension. A non-nil error marks x as outside the
// function's domain; the solver rejects the step and retries a shorter one
// instead of propagating undefined values.
type Func func(x, fvec []float64) error

var (
	// ErrNoConvergence means the iteration budget ran out before the
	// residual norm dropped below tolerance.
	ErrNoConvergence = errors.New("solver: iteration budget exhausted")

	// ErrStalled means no damped step could reduce the residual norm.
	ErrStalled = errors.New("solver: stalled, no descent step found")

	// ErrSingularJacobian means the linearized system could not be solved.
	ErrSingularJacobian = errors.New("solver: singular jacobian")

	// ErrDomain means the residual is undefined at the initial guess.
	ErrDomain = errors.New("solver: residual undefined at initial guess")
)

const (
	defaultMaxIterations = 200
	defaultTolerance     = 1e-8
	defaultMinStep       = 1e-12

	// relative forward-difference step for the Jacobian
	jacobianStep = 1e-7
)

// Options bound the iteration. Zero values select the defaults.
type Options struct {
	MaxIterations int     // iteration cap, default 200
	Tolerance     float64 // residual infinity-norm target, default 1e-8
	MinStep       float64 // smallest line-search damping factor, default 1e-12
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	if o.MinStep <= 0 {
		o.MinStep = defaultMinStep
	}
	return o
}

// Diagnostic is the solver state at exit: the last iterate and residual,
// returned on success and on failure alike so callers can report or retry.
type Diagnostic struct {
	X           []float64
	Residual    []float64
	Norm        float64 // residual infinity-norm at X
	Iterations  int
	Evaluations int
}

// Solve drives f to zero starting from x0. On success the returned
// diagnostic holds the root; on failure it holds the last iterate and the
// error says why the iteration stopped. Convergence is not guaranteed for
// arbitrary starting points.
func Solve(f Func, x0 []float64, opts Options) (*Diagnostic, error) {
	o := opts.withDefaults()
	n := len(x0)

	diag := &Diagnostic{
		X:        append([]float64(nil), x0...),
		Residual: make([]float64, n),
	}

	x := append([]float64(nil), x0...)
	fx := make([]float64, n)
	if err := f(x, fx); err != nil {
		diag.Evaluations = 1
		diag.Norm = math.Inf(1)
		return diag, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	diag.Evaluations = 1
	norm := infNorm(fx)

	jac := mat.NewDense(n, n, nil)
	rhs := mat.NewVecDense(n, nil)
	step := mat.NewVecDense(n, nil)
	xt := make([]float64, n)
	ft := make([]float64, n)
	var lu mat.LU

	for iter := 0; ; iter++ {
		diag.snapshot(x, fx, norm, iter)
		if norm <= o.Tolerance {
			return diag, nil
		}
		if iter >= o.MaxIterations {
			return diag, ErrNoConvergence
		}

		// Forward-difference Jacobian column by column. If the forward
		// probe leaves the domain, probe backwards instead.
		for j := 0; j < n; j++ {
			h := jacobianStep * math.Max(math.Abs(x[j]), 1.0)
			copy(xt, x)
			xt[j] = x[j] + h
			err := f(xt, ft)
			diag.Evaluations++
			if err != nil {
				h = -h
				xt[j] = x[j] + h
				if err := f(xt, ft); err != nil {
					diag.snapshot(x, fx, norm, iter)
					return diag, fmt.Errorf("%w: jacobian column %d: %v", ErrStalled, j, err)
				}
				diag.Evaluations++
			}
			for i := 0; i < n; i++ {
				jac.Set(i, j, (ft[i]-fx[i])/h)
			}
		}

		for i := 0; i < n; i++ {
			rhs.SetVec(i, -fx[i])
		}
		lu.Factorize(jac)
		if err := lu.SolveVecTo(step, false, rhs); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				diag.snapshot(x, fx, norm, iter)
				return diag, ErrSingularJacobian
			}
		}

		// Backtracking: halve the step until the residual norm drops.
		// A domain error or a non-finite residual rejects the trial point.
		accepted := false
		for lambda := 1.0; lambda >= o.MinStep; lambda *= 0.5 {
			for i := 0; i < n; i++ {
				xt[i] = x[i] + lambda*step.AtVec(i)
			}
			err := f(xt, ft)
			diag.Evaluations++
			if err != nil {
				continue
			}
			if tn := infNorm(ft); tn < norm {
				copy(x, xt)
				copy(fx, ft)
				norm = tn
				accepted = true
				break
			}
		}
		if !accepted {
			diag.snapshot(x, fx, norm, iter)
			return diag, ErrStalled
		}
	}
}

func (d *Diagnostic) snapshot(x, fx []float64, norm float64, iter int) {
	copy(d.X, x)
	copy(d.Residual, fx)
	d.Norm = norm
	d.Iterations = iter
}

// infNorm treats any non-finite entry as an infinite norm, so NaN residuals
// can never pass the convergence check or win the line search.
func infNorm(v []float64) float64 {
	max := 0.0
	for _, val := range v {
		a := math.Abs(val)
		if math.IsNaN(a) || math.IsInf(a, 1) {
			return math.Inf(1)
		}
		if a > max {
			max = a
		}
	}
	return max
}
