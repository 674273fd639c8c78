package nest

import (
	"fmt"

	"github.com/coilworks/coilnest/internal/helicoil"
)

// Config fixes the operating point, the safety margins and the starting
// vector for one solve. It is a value type: a solve never mutates it, and
// sweep iterations each take their own copy.
type Config struct {
	Material           helicoil.Material
	EndCondition       float64    // buckling end restraint coefficient, (0, 1]
	AxialRate          float64    // target combined rate, N/mm
	DesignLoad         float64    // N
	DesignLength       float64    // length at the design load, mm
	RadialCoilGap      float64    // inner-to-outer radial clearance, mm
	MaxCompression     float64    // travel below design length, mm
	LoCycleAmplitude   float64    // mm
	HiCycleAmplitude   float64    // mm
	CompressionReserve float64    // length reserve above solid at full travel, mm
	SolidStressReserve float64    // stress margin below the material limit, MPa
	InitialGuess       [7]float64 // [OD, do, No, L0o, di, Ni, L0i]
}

// Validate fails fast on malformed configuration, before any solver work,
// so the caller can tell bad input from solver non-convergence.
func (c Config) Validate() error {
	if c.Material.ShearModulus <= 0 || c.Material.ElasticModulus <= 0 {
		return fmt.Errorf("nest: material %q needs positive elastic constants", c.Material.Name)
	}
	if c.EndCondition <= 0 || c.EndCondition > 1 {
		return fmt.Errorf("nest: end condition must be in (0, 1], got %g", c.EndCondition)
	}
	positives := []struct {
		name  string
		value float64
	}{
		{"axial rate", c.AxialRate},
		{"design load", c.DesignLoad},
		{"design length", c.DesignLength},
		{"radial coil gap", c.RadialCoilGap},
		{"max compression", c.MaxCompression},
		{"lo cycle amplitude", c.LoCycleAmplitude},
		{"hi cycle amplitude", c.HiCycleAmplitude},
		{"compression reserve", c.CompressionReserve},
		{"solid stress reserve", c.SolidStressReserve},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("nest: %s must be positive, got %g", p.name, p.value)
		}
	}
	if c.MaxCompression >= c.DesignLength {
		return fmt.Errorf("nest: max compression %g exceeds design length %g", c.MaxCompression, c.DesignLength)
	}
	for i, v := range c.InitialGuess {
		if v <= 0 {
			return fmt.Errorf("nest: initial guess component %d must be positive, got %g", i, v)
		}
	}
	return nil
}

// WithSolidStressReserve returns a copy with the stress reserve replaced.
// Sweeps use it to keep every iteration on its own configuration.
func (c Config) WithSolidStressReserve(v float64) Config {
	c.SolidStressReserve = v
	return c
}
