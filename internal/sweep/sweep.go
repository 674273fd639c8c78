// Package sweep solves a nest design repeatedly while stepping the solid
// stress reserve, the margin that dominates how large the nest must be.
// Iterations are independent: each gets a fresh configuration copy, so the
// sweep can run sequentially or fanned out across goroutines.
package sweep

import (
	"math"
	"sync"

	"github.com/coilworks/coilnest/internal/nest"
)

// Point is the outcome of one sweep iteration.
type Point struct {
	SolidStressReserve float64
	Solution           *nest.Solution
	Err                error
}

// Solved reports whether the iteration converged.
func (p Point) Solved() bool { return p.Err == nil && p.Solution != nil }

// OD returns the nest outer diameter, NaN when the solve failed.
func (p Point) OD() float64 {
	if !p.Solved() {
		return math.NaN()
	}
	return p.Solution.Outer.OuterDiameter
}

// FreeLengthDelta returns outer minus inner free length, NaN when the
// solve failed.
func (p Point) FreeLengthDelta() float64 {
	if !p.Solved() {
		return math.NaN()
	}
	return p.Solution.Outer.FreeLength - p.Solution.Inner.FreeLength
}

// Values enumerates start, start+step, ... through stop inclusive.
func Values(start, stop, step float64) []float64 {
	if step <= 0 || stop < start {
		return nil
	}
	var out []float64
	for v := start; v <= stop+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}

// Run solves the nest once per reserve value, sequentially.
func Run(cfg nest.Config, reserves []float64) []Point {
	points := make([]Point, len(reserves))
	for i, r := range reserves {
		points[i] = solveOne(cfg, r)
	}
	return points
}

// RunParallel fans the iterations out across goroutines. There is no
// ordering dependency between iterations; results keep the input order.
func RunParallel(cfg nest.Config, reserves []float64) []Point {
	points := make([]Point, len(reserves))
	var wg sync.WaitGroup
	for i, r := range reserves {
		wg.Add(1)
		go func(i int, r float64) {
			defer wg.Done()
			points[i] = solveOne(cfg, r)
		}(i, r)
	}
	wg.Wait()
	return points
}

func solveOne(cfg nest.Config, reserve float64) Point {
	p := Point{SolidStressReserve: reserve}
	n, err := nest.New(cfg.WithSolidStressReserve(reserve))
	if err != nil {
		p.Err = err
		return p
	}
	p.Solution, p.Err = n.Solve()
	return p
}
