package helicoil

import (
	"math"
	"strings"
	"testing"
)

func testRecord() CoilData {
	return NewCoilData("Outer Coil", 30, 170, 8, 20000, 367.8, 322.8, 35, 25, PrEN10089)
}

func TestNewCoilDataDerivedFields(t *testing.T) {
	c := testRecord()

	if c.OuterDiameter != 200 {
		t.Errorf("expected OD 200, got %f", c.OuterDiameter)
	}
	if c.InnerDiameter != 140 {
		t.Errorf("expected ID 140, got %f", c.InnerDiameter)
	}
	if c.SolidLength != 300 {
		t.Errorf("expected solid length 300, got %f", c.SolidLength)
	}

	// free length recovers the design point: L0 = L + F/R
	expectedFree := 367.8 + 20000/c.Rate
	if math.Abs(c.FreeLength-expectedFree) > 1e-9 {
		t.Errorf("expected free length %f, got %f", expectedFree, c.FreeLength)
	}

	if c.StressLimit <= c.SolidStress {
		// not a rule for arbitrary records, but this one is a sane coil
		t.Errorf("expected stress limit %f above solid stress %f", c.StressLimit, c.SolidStress)
	}
	if c.Material != "prEN10089" {
		t.Errorf("expected material prEN10089, got %s", c.Material)
	}
}

func TestCoilDataCSVRoundTrip(t *testing.T) {
	c := testRecord()

	data, err := c.MarshalCSV()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	parsed, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if parsed != c {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", parsed, c)
	}
}

func TestCoilDataCSVFieldOrder(t *testing.T) {
	c := testRecord()
	data, err := c.MarshalCSV()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != len(csvFields) {
		t.Fatalf("expected %d rows, got %d", len(csvFields), len(lines))
	}
	for i, name := range csvFields {
		if !strings.HasPrefix(lines[i], name+",") {
			t.Errorf("row %d: expected field %q, got %q", i, name, lines[i])
		}
	}
}

func TestParseCSVRejectsUnknownField(t *testing.T) {
	if _, err := ParseCSV([]byte("bogus_field,1.0\n")); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestParseCSVRejectsMalformedValue(t *testing.T) {
	if _, err := ParseCSV([]byte("rate,not-a-number\n")); err == nil {
		t.Error("expected error for malformed value")
	}
}
