package helicoil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CoilData is the reportable record for one solved coil. It is derived once
// from a converged design and read-only afterwards.
type CoilData struct {
	Label            string
	WireDiameter     float64
	MeanDiameter     float64
	OuterDiameter    float64
	InnerDiameter    float64
	ActiveCoils      float64
	Rate             float64
	Load             float64 // carried load at design length, N
	DesignLength     float64
	MinLength        float64 // minimum service length
	FreeLength       float64
	SolidLength      float64
	CoilGap          float64 // axial gap per coil at minimum service length
	SolidStress      float64
	StressLimit      float64
	LoCycleAmplitude float64
	HiCycleAmplitude float64
	Material         string
}

// NewCoilData packages a solved coil's geometry and load into a record,
// deriving the free length, solid length and stress figures from the
// formula set.
func NewCoilData(label string, d, D, coils, F, designLength, minLength, loAmp, hiAmp float64, m Material) CoilData {
	rate := AxialRate(m.ShearModulus, d, D, coils)
	solid := SolidLength(coils, d)
	free := designLength + F/rate
	return CoilData{
		Label:            label,
		WireDiameter:     d,
		MeanDiameter:     D,
		OuterDiameter:    D + d,
		InnerDiameter:    D - d,
		ActiveCoils:      coils,
		Rate:             rate,
		Load:             F,
		DesignLength:     designLength,
		MinLength:        minLength,
		FreeLength:       free,
		SolidLength:      solid,
		CoilGap:          (minLength - solid) / coils,
		SolidStress:      StaticAxialStress(D, d, rate*(free-solid)),
		StressLimit:      m.SolidStressLimit(d),
		LoCycleAmplitude: loAmp,
		HiCycleAmplitude: hiAmp,
		Material:         m.Name,
	}
}

// csvFields fixes the field set and order existing consumers of the
// delimited records rely on.
var csvFields = []string{
	"label",
	"wire_diameter",
	"mean_diameter",
	"outer_diameter",
	"inner_diameter",
	"active_coils",
	"rate",
	"load",
	"design_length",
	"min_length",
	"free_length",
	"solid_length",
	"coil_gap",
	"solid_stress",
	"stress_limit",
	"lo_cycle_amplitude",
	"hi_cycle_amplitude",
	"material",
}

func (c *CoilData) fieldPointers() map[string]*float64 {
	return map[string]*float64{
		"wire_diameter":      &c.WireDiameter,
		"mean_diameter":      &c.MeanDiameter,
		"outer_diameter":     &c.OuterDiameter,
		"inner_diameter":     &c.InnerDiameter,
		"active_coils":       &c.ActiveCoils,
		"rate":               &c.Rate,
		"load":               &c.Load,
		"design_length":      &c.DesignLength,
		"min_length":         &c.MinLength,
		"free_length":        &c.FreeLength,
		"solid_length":       &c.SolidLength,
		"coil_gap":           &c.CoilGap,
		"solid_stress":       &c.SolidStress,
		"stress_limit":       &c.StressLimit,
		"lo_cycle_amplitude": &c.LoCycleAmplitude,
		"hi_cycle_amplitude": &c.HiCycleAmplitude,
	}
}

// MarshalCSV serializes the record as one "field,value" row per field.
// Floats use the shortest representation that parses back exactly.
func (c CoilData) MarshalCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	ptrs := c.fieldPointers()
	for _, name := range csvFields {
		var value string
		switch name {
		case "label":
			value = c.Label
		case "material":
			value = c.Material
		default:
			value = strconv.FormatFloat(*ptrs[name], 'f', -1, 64)
		}
		if err := w.Write([]string{name, value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCSV reconstructs a record serialized by MarshalCSV.
func ParseCSV(data []byte) (CoilData, error) {
	var c CoilData
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2
	rows, err := r.ReadAll()
	if err != nil {
		return CoilData{}, fmt.Errorf("helicoil: malformed coil record: %w", err)
	}
	ptrs := c.fieldPointers()
	for _, row := range rows {
		name, value := row[0], row[1]
		switch name {
		case "label":
			c.Label = value
		case "material":
			c.Material = value
		default:
			ptr, ok := ptrs[name]
			if !ok {
				return CoilData{}, fmt.Errorf("helicoil: unknown coil record field %q", name)
			}
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return CoilData{}, fmt.Errorf("helicoil: field %q: %w", name, err)
			}
			*ptr = v
		}
	}
	return c, nil
}
