// Package config reads and writes nest design files in YAML and binds them
// to the solver's configuration type.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coilworks/coilnest/internal/helicoil"
	"github.com/coilworks/coilnest/internal/nest"
)

type Config struct {
	Material           string    `yaml:"material"`
	EndCondition       float64   `yaml:"end_condition"`
	AxialRate          float64   `yaml:"axial_rate"`
	DesignLoad         float64   `yaml:"design_load"`
	DesignLength       float64   `yaml:"design_length"`
	RadialCoilGap      float64   `yaml:"radial_coil_gap"`
	MaxCompression     float64   `yaml:"max_compression"`
	LoCycleAmplitude   float64   `yaml:"lo_cycle_defln_amplitude"`
	HiCycleAmplitude   float64   `yaml:"hi_cycle_defln_amplitude"`
	CompressionReserve float64   `yaml:"compression_defln_reserve"`
	SolidStressReserve float64   `yaml:"solid_stress_reserve"`
	InitialGuess       []float64 `yaml:"initial_guess"`
}

// DefaultConfig is the reference primary-suspension nest.
func DefaultConfig() *Config {
	return &Config{
		Material:           "prEN10089",
		EndCondition:       0.7,
		AxialRate:          280.0,
		DesignLoad:         34760.0,
		DesignLength:       367.8,
		RadialCoilGap:      8.0,
		MaxCompression:     45.0,
		LoCycleAmplitude:   35.0,
		HiCycleAmplitude:   25.0,
		CompressionReserve: 20.0,
		SolidStressReserve: 70.0,
		InitialGuess:       []float64{200.0, 30.0, 8.0, 500.0, 20.0, 11.0, 500.0},
	}
}

// Load reads a design file, leaving omitted fields at their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a design file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToNest binds the material name and returns a validated solver
// configuration.
func (c *Config) ToNest() (nest.Config, error) {
	m, err := helicoil.MaterialByName(c.Material)
	if err != nil {
		return nest.Config{}, err
	}
	if len(c.InitialGuess) != 7 {
		return nest.Config{}, fmt.Errorf(
			"config: initial_guess needs 7 values [OD, do, No, L0o, di, Ni, L0i], got %d",
			len(c.InitialGuess))
	}
	nc := nest.Config{
		Material:           m,
		EndCondition:       c.EndCondition,
		AxialRate:          c.AxialRate,
		DesignLoad:         c.DesignLoad,
		DesignLength:       c.DesignLength,
		RadialCoilGap:      c.RadialCoilGap,
		MaxCompression:     c.MaxCompression,
		LoCycleAmplitude:   c.LoCycleAmplitude,
		HiCycleAmplitude:   c.HiCycleAmplitude,
		CompressionReserve: c.CompressionReserve,
		SolidStressReserve: c.SolidStressReserve,
	}
	copy(nc.InitialGuess[:], c.InitialGuess)
	if err := nc.Validate(); err != nil {
		return nest.Config{}, err
	}
	return nc, nil
}
