package metadata

import (
	"fmt"
	"strings"
)

type Unit string

const (
	UnitPieces       Unit = "Pieces"
	UnitBags         Unit = "Bags"
	UnitCubicMeters  Unit = "Cubic Meters"
	UnitSquareMeters Unit = "Square Meters"
	UnitKilograms    Unit = "Kilograms"
	UnitTons         Unit = "Tons"
	UnitLiters       Unit = "Liters"
	UnitMeters       Unit = "Meters"
)

var units = []Unit{
	UnitPieces,
	UnitBags,
	UnitCubicMeters,
	UnitSquareMeters,
	UnitKilograms,
	UnitTons,
	UnitLiters,
	UnitMeters,
}

// Units returns the selectable units of measurement in display order.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

func (u Unit) IsValid() bool {
	for _, known := range units {
		if u == known {
			return true
		}
	}
	return false
}

// NewUnit matches value case-insensitively against the known units and
// returns the canonical spelling.
func NewUnit(value string) (Unit, error) {
	normalized := strings.Join(strings.Fields(value), " ")
	for _, known := range units {
		if strings.EqualFold(normalized, string(known)) {
			return known, nil
		}
	}

	return Unit(normalized), fmt.Errorf("unit %q not valid, only valid values are: %s", value, joinUnits())
}

func (u Unit) String() string {
	return string(u)
}

func joinUnits() string {
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, string(u))
	}
	return strings.Join(names, ", ")
}
