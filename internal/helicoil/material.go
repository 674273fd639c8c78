package helicoil

import (
	"fmt"
	"sort"
)

// rmPoint is one entry of a tensile-strength-by-bar-diameter table.
type rmPoint struct {
	d  float64 // bar diameter, mm
	rm float64 // minimum tensile strength, MPa
}

// Material describes a spring steel: elastic constants plus the tensile
// strength table the solid stress limit is derived from. Values are never
// mutated after construction.
type Material struct {
	Name           string
	ShearModulus   float64 // G, MPa
	ElasticModulus float64 // E, MPa
	tensile        []rmPoint
}

// TensileStrength returns Rm for wire diameter d, linearly interpolated
// from the material table and clamped at the table ends.
func (m Material) TensileStrength(d float64) float64 {
	t := m.tensile
	if len(t) == 0 {
		return 0
	}
	if d <= t[0].d {
		return t[0].rm
	}
	if d >= t[len(t)-1].d {
		return t[len(t)-1].rm
	}
	i := sort.Search(len(t), func(i int) bool { return t[i].d >= d })
	lo, hi := t[i-1], t[i]
	frac := (d - lo.d) / (hi.d - lo.d)
	return lo.rm + frac*(hi.rm-lo.rm)
}

// SolidStressLimit returns the allowable torsional stress with the spring
// compressed to solid, 56% of Rm for quenched and tempered steel.
func (m Material) SolidStressLimit(d float64) float64 {
	return 0.56 * m.TensileStrength(d)
}

// PrEN10089 is hot-rolled quenched-and-tempered spring steel (51CrV4 class).
var PrEN10089 = Material{
	Name:           "prEN10089",
	ShearModulus:   78500,
	ElasticModulus: 206000,
	tensile: []rmPoint{
		{10, 1450},
		{16, 1430},
		{25, 1400},
		{40, 1350},
		{63, 1270},
		{80, 1220},
		{100, 1170},
	},
}

var materials = map[string]Material{
	PrEN10089.Name: PrEN10089,
}

// MaterialByName looks a material up for configuration binding.
func MaterialByName(name string) (Material, error) {
	m, ok := materials[name]
	if !ok {
		return Material{}, fmt.Errorf("helicoil: unknown material %q (available: %v)", name, MaterialNames())
	}
	return m, nil
}

// MaterialNames returns the registered material names, sorted.
func MaterialNames() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
