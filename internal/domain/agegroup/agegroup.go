// Package agegroup defines the competitive age-band catalog and the
// assignment of exact ages and age ranges to bands.
package agegroup

import (
	"math"

	"github.com/okian/paceline/internal/domain/normalize"
)

// Group is one inclusive age band. Max may be +Inf for open bands like 80+.
type Group struct {
	Label string
	Min   float64
	Max   float64
}

// Open reports whether the band has no upper bound.
func (g Group) Open() bool {
	return math.IsInf(g.Max, 1)
}

// Contains reports whether an exact age falls inside the band.
func (g Group) Contains(age float64) bool {
	return age >= g.Min && age <= g.Max
}

// Overlaps reports whether an inclusive age range overlaps the band.
func (g Group) Overlaps(min, max float64) bool {
	return min <= g.Max && max >= g.Min
}

// Catalog is a fixed, ordered set of bands. The order matters: a row is
// assigned to the first band it overlaps, and to that band only.
type Catalog []Group

// DefaultCatalog returns the deployment catalog covering the supported
// competitive age range.
func DefaultCatalog() Catalog {
	return Catalog{
		{Label: "30-34", Min: 30, Max: 34},
		{Label: "35-39", Min: 35, Max: 39},
		{Label: "40-44", Min: 40, Max: 44},
		{Label: "45-49", Min: 45, Max: 49},
		{Label: "50-54", Min: 50, Max: 54},
		{Label: "55-59", Min: 55, Max: 59},
		{Label: "60-64", Min: 60, Max: 64},
		{Label: "65-69", Min: 65, Max: 69},
		{Label: "70-74", Min: 70, Max: 74},
		{Label: "75-79", Min: 75, Max: 79},
		{Label: "80-84", Min: 80, Max: 84},
		{Label: "85-89", Min: 85, Max: 89},
		{Label: "90-94", Min: 90, Max: 94},
	}
}

// GroupFor returns the index of the first band the age point belongs to.
// Exact ages use containment; ranges use overlap. Rows with no usable age
// belong to no band.
func (c Catalog) GroupFor(a normalize.AgePoint) (int, bool) {
	switch a.Kind {
	case normalize.AgeExact:
		for i, g := range c {
			if g.Contains(a.Exact) {
				return i, true
			}
		}
	case normalize.AgeRange:
		for i, g := range c {
			if g.Overlaps(a.Min, a.Max) {
				return i, true
			}
		}
	case normalize.AgeNone:
	}
	return 0, false
}
