// Package unitconv maps every recognized unit of measure to its canonical
// base unit (g for weight, ml for volume, piece for count) and converts
// quantities between the two. The table is static reference data.
package unitconv

import (
	"errors"
	"fmt"
	"math"
)

// Kind is the category of measurement a unit belongs to.
type Kind string

const (
	KindWeight Kind = "WEIGHT"
	KindVolume Kind = "VOLUME"
	KindCount  Kind = "COUNT"
)

// Base unit names, one per kind.
const (
	BaseWeight = "g"
	BaseVolume = "ml"
	BaseCount  = "piece"
)

var ErrUnknownUnit = errors.New("unknown unit")

type unitDef struct {
	kind   Kind
	base   string
	factor float64 // 1 <unit> = factor <base units>
}

var units = map[string]unitDef{
	// weight (base = g)
	"mg": {KindWeight, BaseWeight, 0.001},
	"g":  {KindWeight, BaseWeight, 1},
	"kg": {KindWeight, BaseWeight, 1000},
	"oz": {KindWeight, BaseWeight, 28.349523125},
	"lb": {KindWeight, BaseWeight, 453.59237},

	// volume (base = ml)
	"ml":    {KindVolume, BaseVolume, 1},
	"l":     {KindVolume, BaseVolume, 1000},
	"litre": {KindVolume, BaseVolume, 1000},
	"tsp":   {KindVolume, BaseVolume, 4.92892159375},
	"tbsp":  {KindVolume, BaseVolume, 14.78676478125},
	"cup":   {KindVolume, BaseVolume, 236.5882365},

	// count (base = piece)
	"piece":  {KindCount, BaseCount, 1},
	"pcs":    {KindCount, BaseCount, 1},
	"pair":   {KindCount, BaseCount, 2},
	"dozen":  {KindCount, BaseCount, 12},
	"packet": {KindCount, BaseCount, 1},
}

// Known reports whether name is in the conversion table.
func Known(name string) bool {
	_, ok := units[name]
	return ok
}

// KindOf returns the measurement kind of a unit.
func KindOf(name string) (Kind, error) {
	def, ok := units[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return def.kind, nil
}

// BaseUnit returns the canonical base unit name a unit converts to.
func BaseUnit(name string) (string, error) {
	def, ok := units[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return def.base, nil
}

// ToBase converts a quantity expressed in the given unit to whole base
// units, rounding half-up. Rounding is always in this one direction so a
// value survives a display round trip when the factor is integral.
func ToBase(qty float64, name string) (int64, error) {
	def, ok := units[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	scaled := qty * def.factor
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) || math.Abs(scaled) > math.MaxInt64/2 {
		return 0, fmt.Errorf("conversion overflow: %v %s", qty, name)
	}
	return int64(math.Floor(scaled + 0.5)), nil
}

// FromBase re-expresses a base-unit quantity in the given unit, for display.
func FromBase(qty int64, name string) (float64, error) {
	def, ok := units[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return float64(qty) / def.factor, nil
}

// Names returns every recognized unit name with its kind, for seeding the
// unit catalog.
func Names() map[string]Kind {
	out := make(map[string]Kind, len(units))
	for name, def := range units {
		out[name] = def.kind
	}
	return out
}
