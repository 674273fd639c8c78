package helicoil

import (
	"errors"
	"math"
	"testing"
)

func TestSolidLength(t *testing.T) {
	got := SolidLength(8, 30)
	if got != 300 {
		t.Errorf("expected solid length 300, got %f", got)
	}
}

func TestMinReserveLength(t *testing.T) {
	got := MinReserveLength(170, 30, 8)
	if math.Abs(got-32.0) > 1e-12 {
		t.Errorf("expected reserve length 32, got %f", got)
	}
}

func TestAxialRate(t *testing.T) {
	// G*d^4 / (8*D^3*n) with G=78500, d=30, D=170, n=8
	got := AxialRate(78500, 30, 170, 8)
	expected := 202.2218
	if math.Abs(got-expected) > 1e-3 {
		t.Errorf("expected rate %.4f, got %.4f", expected, got)
	}
}

func TestStaticAxialStress(t *testing.T) {
	// 8*D*F / (pi*d^3) with D=170, d=30, F=10000
	got := StaticAxialStress(170, 30, 10000)
	expected := 160.335
	if math.Abs(got-expected) > 1e-2 {
		t.Errorf("expected stress %.3f, got %.3f", expected, got)
	}
}

func TestBucklingDeflection_Slender(t *testing.T) {
	got, err := BucklingDeflection(78500, 206000, 104, 500, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got <= 0 || got >= 500 {
		t.Errorf("deflection should be within the free length, got %f", got)
	}
	if got < 100 || got > 200 {
		t.Errorf("deflection out of expected band [100, 200], got %f", got)
	}
}

func TestBucklingDeflection_SquatSpringStable(t *testing.T) {
	_, err := BucklingDeflection(78500, 206000, 300, 300, 0.7)
	if !errors.Is(err, ErrNoBucklingPoint) {
		t.Errorf("expected ErrNoBucklingPoint, got %v", err)
	}
}

func TestBucklingDeflection_InvalidInputs(t *testing.T) {
	tests := []struct {
		name             string
		g, e, d, l0, end float64
	}{
		{"negative diameter", 78500, 206000, -10, 500, 0.7},
		{"nan diameter", 78500, 206000, math.NaN(), 500, 0.7},
		{"nan free length", 78500, 206000, 104, math.NaN(), 0.7},
		{"infinite free length", 78500, 206000, 104, math.Inf(1), 0.7},
		{"shear above elastic", 206000, 78500, 104, 500, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BucklingDeflection(tt.g, tt.e, tt.d, tt.l0, tt.end)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
			if math.IsNaN(got) {
				t.Error("deflection must never be NaN")
			}
		})
	}
}

func TestValidateCoil(t *testing.T) {
	tests := []struct {
		name    string
		d, wire float64
		coils   float64
		wantErr bool
	}{
		{"valid", 170, 30, 8, false},
		{"zero wire", 170, 0, 8, true},
		{"negative coils", 170, 30, -1, true},
		{"mean below wire", 25, 30, 8, true},
		{"nan mean diameter", math.NaN(), 30, 8, true},
		{"nan wire diameter", 170, math.NaN(), 8, true},
		{"nan coils", 170, 30, math.NaN(), true},
		{"infinite mean diameter", math.Inf(1), 30, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoil(tt.d, tt.wire, tt.coils)
			if tt.wantErr && !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMaterialTensileStrength(t *testing.T) {
	m := PrEN10089

	if got := m.TensileStrength(5); got != 1450 {
		t.Errorf("below-table diameter should clamp to 1450, got %f", got)
	}
	if got := m.TensileStrength(150); got != 1170 {
		t.Errorf("above-table diameter should clamp to 1170, got %f", got)
	}
	// halfway between the 25mm (1400) and 40mm (1350) entries
	if got := m.TensileStrength(32.5); math.Abs(got-1375) > 1e-9 {
		t.Errorf("expected interpolated Rm 1375, got %f", got)
	}
}

func TestSolidStressLimit(t *testing.T) {
	m := PrEN10089
	got := m.SolidStressLimit(32.5)
	expected := 0.56 * 1375
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected limit %f, got %f", expected, got)
	}
}

func TestMaterialByName(t *testing.T) {
	m, err := MaterialByName("prEN10089")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ShearModulus != 78500 {
		t.Errorf("expected G 78500, got %f", m.ShearModulus)
	}

	if _, err := MaterialByName("unobtainium"); err == nil {
		t.Error("expected error for unknown material")
	}
}
