// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// UnitConverter converts activity quantities between units.
type UnitConverter interface {
	Convert(value float64, fromUnit, toUnit string) (float64, error)
	IsRecognized(unit string) bool
}
