package sweep

import (
	"math"
	"testing"

	"github.com/coilworks/coilnest/internal/helicoil"
	"github.com/coilworks/coilnest/internal/nest"
)

func referenceConfig() nest.Config {
	return nest.Config{
		Material:           helicoil.PrEN10089,
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
		InitialGuess:       [7]float64{200.0, 30.0, 8.0, 500.0, 20.0, 11.0, 500.0},
	}
}

func TestValues(t *testing.T) {
	vals := Values(10, 110, 10)
	if len(vals) != 11 {
		t.Fatalf("expected 11 values, got %d", len(vals))
	}
	if vals[0] != 10 {
		t.Errorf("expected first value 10, got %f", vals[0])
	}
	if math.Abs(vals[10]-110) > 1e-9 {
		t.Errorf("expected last value 110, got %f", vals[10])
	}
}

func TestValuesEmptyRanges(t *testing.T) {
	if vals := Values(100, 10, 10); vals != nil {
		t.Errorf("descending range should be empty, got %v", vals)
	}
	if vals := Values(10, 100, 0); vals != nil {
		t.Errorf("zero step should be empty, got %v", vals)
	}
}

func TestSweepMonotonicOD(t *testing.T) {
	points := Run(referenceConfig(), Values(10, 110, 10))

	for _, p := range points {
		if !p.Solved() {
			t.Fatalf("reserve %.0f did not solve: %v", p.SolidStressReserve, p.Err)
		}
	}

	// a larger required stress reserve can never shrink the nest
	for i := 1; i < len(points); i++ {
		if points[i].OD() < points[i-1].OD()-1e-6 {
			t.Errorf("OD decreased from %.4f to %.4f at reserve %.0f",
				points[i-1].OD(), points[i].OD(), points[i].SolidStressReserve)
		}
	}
}

func TestRunParallelMatchesRun(t *testing.T) {
	reserves := Values(40, 80, 20)

	seq := Run(referenceConfig(), reserves)
	par := RunParallel(referenceConfig(), reserves)

	if len(seq) != len(par) {
		t.Fatalf("length mismatch: %d vs %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i].Solved() != par[i].Solved() {
			t.Fatalf("iteration %d: solved mismatch", i)
		}
		if math.Abs(seq[i].OD()-par[i].OD()) > 1e-9 {
			t.Errorf("iteration %d: OD mismatch %.9f vs %.9f", i, seq[i].OD(), par[i].OD())
		}
	}
}

func TestFailedPointAccessors(t *testing.T) {
	cfg := referenceConfig()
	cfg.AxialRate = -1 // invalid, fails at config validation

	points := Run(cfg, []float64{70})
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	p := points[0]
	if p.Solved() {
		t.Fatal("expected failed point")
	}
	if !math.IsNaN(p.OD()) || !math.IsNaN(p.FreeLengthDelta()) {
		t.Error("failed point accessors must return NaN")
	}
}
