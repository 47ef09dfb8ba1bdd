// Package unit implements dimensional unit conversion for activity quantities.
//
// Units are parsed into a scale relative to SI base units and a vector of base
// dimension exponents. Two units convert only when their vectors are equal.
package unit

import (
	"fmt"
	"math"
	"strings"
)

// BaseDimension indexes a base quantity in a Dimension vector.
type BaseDimension int

const (
	Length BaseDimension = iota
	Mass
	Time
	Current
	Temperature
	Amount
	Luminosity

	numBaseDimensions
)

var baseDimensionNames = [numBaseDimensions]string{
	"length", "mass", "time", "current", "temperature", "substance", "luminosity",
}

// Dimension holds the exponent of each base dimension.
type Dimension [numBaseDimensions]int8

// Dimensionless is the zero vector.
var Dimensionless Dimension

// String renders the dimension as a product of bracketed base names, e.g. "[length]^3".
func (d Dimension) String() string {
	var parts []string
	for i, exp := range d {
		switch {
		case exp == 0:
			continue
		case exp == 1:
			parts = append(parts, "["+baseDimensionNames[i]+"]")
		default:
			parts = append(parts, fmt.Sprintf("[%s]^%d", baseDimensionNames[i], exp))
		}
	}
	if len(parts) == 0 {
		return "dimensionless"
	}
	return strings.Join(parts, " * ")
}

// add and scale report false when an exponent leaves the int8 range.
func (d Dimension) add(o Dimension) (Dimension, bool) {
	for i := range d {
		sum := int(d[i]) + int(o[i])
		if sum < math.MinInt8 || sum > math.MaxInt8 {
			return d, false
		}
		d[i] = int8(sum)
	}
	return d, true
}

func (d Dimension) scale(n int) (Dimension, bool) {
	if n < math.MinInt8 || n > math.MaxInt8 {
		return d, false
	}
	for i := range d {
		p := int(d[i]) * n
		if p < math.MinInt8 || p > math.MaxInt8 {
			return d, false
		}
		d[i] = int8(p)
	}
	return d, true
}

// Unit is a parsed unit expression: multiply a value by Scale to express it in SI base units.
type Unit struct {
	Scale     float64
	Dimension Dimension
}

func base(dim BaseDimension, scale float64) Unit {
	var d Dimension
	d[dim] = 1
	return Unit{Scale: scale, Dimension: d}
}

var errExponentRange = fmt.Errorf("%w: exponent out of range", errSyntax)

func (u Unit) mul(o Unit) (Unit, error) {
	d, ok := u.Dimension.add(o.Dimension)
	if !ok {
		return Unit{}, errExponentRange
	}
	return Unit{Scale: u.Scale * o.Scale, Dimension: d}, nil
}

func (u Unit) div(o Unit) (Unit, error) {
	inv, ok := o.Dimension.scale(-1)
	if !ok {
		return Unit{}, errExponentRange
	}
	d, ok := u.Dimension.add(inv)
	if !ok {
		return Unit{}, errExponentRange
	}
	return Unit{Scale: u.Scale / o.Scale, Dimension: d}, nil
}

func (u Unit) pow(n int) (Unit, error) {
	d, ok := u.Dimension.scale(n)
	if !ok {
		return Unit{}, errExponentRange
	}
	return Unit{Scale: math.Pow(u.Scale, float64(n)), Dimension: d}, nil
}

// Compatible reports whether values in u can be expressed in o.
func (u Unit) Compatible(o Unit) bool {
	return u.Dimension == o.Dimension
}
