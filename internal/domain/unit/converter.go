package unit

import (
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

var defaultRegistry = MustNewRegistry()

// Default returns the process-wide registry built at package initialisation.
func Default() *Registry {
	return defaultRegistry
}

// Convert expresses value, measured in fromUnit, in toUnit.
//
// Identical unit strings short-circuit and return value unchanged without
// consulting the registry. Otherwise both strings must parse and share the
// same dimension.
func (r *Registry) Convert(value float64, fromUnit, toUnit string) (float64, error) {
	if fromUnit == toUnit {
		return value, nil
	}

	from, err := r.Parse(fromUnit)
	if err != nil {
		return 0, domainerror.NewUnitUndefinedError(fromUnit)
	}
	to, err := r.Parse(toUnit)
	if err != nil {
		return 0, domainerror.NewUnitUndefinedError(toUnit)
	}

	if !from.Compatible(to) {
		return 0, domainerror.NewIncompatibleDimensionsError(fromUnit, toUnit)
	}

	return value * from.Scale / to.Scale, nil
}

// IsRecognized reports whether the expression resolves to a unit.
func (r *Registry) IsRecognized(expr string) bool {
	_, err := r.Parse(expr)
	return err == nil
}

// Convert uses the default registry.
func Convert(value float64, fromUnit, toUnit string) (float64, error) {
	return defaultRegistry.Convert(value, fromUnit, toUnit)
}

// IsRecognized uses the default registry.
func IsRecognized(expr string) bool {
	return defaultRegistry.IsRecognized(expr)
}

// DimensionOf returns the dimension of a unit expression from the default registry.
func DimensionOf(expr string) (Dimension, error) {
	u, err := defaultRegistry.Parse(expr)
	if err != nil {
		return Dimension{}, domainerror.NewUnitUndefinedError(expr)
	}
	return u.Dimension, nil
}
