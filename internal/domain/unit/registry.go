package unit

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type prefix struct {
	name  string
	scale float64
}

// Long prefixes are tried before short ones so "millimeter" never resolves as "m" + "illimeter".
var (
	longPrefixes = []prefix{
		{"yotta", 1e24}, {"zetta", 1e21}, {"exa", 1e18}, {"peta", 1e15}, {"tera", 1e12},
		{"giga", 1e9}, {"mega", 1e6}, {"kilo", 1e3}, {"hecto", 1e2}, {"deca", 1e1}, {"deka", 1e1},
		{"deci", 1e-1}, {"centi", 1e-2}, {"milli", 1e-3}, {"micro", 1e-6}, {"nano", 1e-9},
		{"pico", 1e-12}, {"femto", 1e-15},
	}
	shortPrefixes = []prefix{
		{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
		{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"da", 1e1},
		{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"µ", 1e-6}, {"u", 1e-6}, {"n", 1e-9},
		{"p", 1e-12}, {"f", 1e-15},
	}
)

// definition registers a unit by name, its aliases, and an expression over
// previously registered units.
type definition struct {
	name    string
	expr    string
	aliases []string
}

// definitions are applied in order; every expression may only reference units defined above it.
var definitions = []definition{
	// length
	{"foot", "0.3048 meter", []string{"ft", "feet"}},
	{"inch", "foot / 12", []string{"inches"}},
	{"yard", "3 foot", []string{"yd"}},
	{"mile", "1760 yard", []string{"mi"}},
	{"nautical_mile", "1852 meter", []string{"nmi"}},

	// area
	{"square_meter", "meter^2", []string{"square_metre", "sqm"}},
	{"hectare", "10000 meter^2", []string{"ha"}},
	{"acre", "4046.8564224 meter^2", nil},

	// volume
	{"cubic_meter", "meter^3", []string{"cubic_metre"}},
	{"liter", "0.001 meter^3", []string{"litre", "L", "l"}},
	{"gallon", "3.78541 liter", []string{"gal", "US_gallon", "us_gallon"}},
	{"imperial_gallon", "4.54609 liter", []string{"UK_gallon", "uk_gallon", "imp_gal"}},
	{"barrel", "42 gallon", []string{"bbl"}},
	{"cubic_foot", "foot^3", []string{"cf", "cu_ft"}},

	// mass
	{"tonne", "1000 kilogram", []string{"t", "metric_ton"}},
	{"pound", "0.45359237 kilogram", []string{"lb", "lbs"}},
	{"ounce", "pound / 16", []string{"oz"}},
	{"short_ton", "2000 pound", []string{"ton", "US_ton"}},
	{"long_ton", "2240 pound", []string{"UK_ton"}},

	// time
	{"minute", "60 second", []string{"min"}},
	{"hour", "60 minute", []string{"h", "hr"}},
	{"day", "24 hour", nil},
	{"week", "7 day", nil},
	{"year", "365.25 day", []string{"yr"}},

	// mechanics and energy
	{"newton", "kilogram meter / second^2", []string{"N"}},
	{"pascal", "newton / meter^2", []string{"Pa"}},
	{"bar", "100000 pascal", nil},
	{"joule", "newton meter", []string{"J"}},
	{"watt", "joule / second", []string{"W"}},
	{"watt_hour", "watt hour", []string{"Wh"}},
	{"calorie", "4.184 joule", []string{"cal"}},
	{"british_thermal_unit", "1055.05585262 joule", []string{"BTU", "Btu", "btu"}},
	{"therm", "100000 british_thermal_unit", []string{"thm"}},

	// transport activity
	{"passenger_kilometer", "kilometer", []string{"pkm", "passenger_km"}},
	{"tonne_kilometer", "tonne kilometer", []string{"tkm", "tonne_km"}},
}

// Registry resolves unit names and expressions. It is read-only after construction
// and safe for concurrent use.
type Registry struct {
	units map[string]Unit
	names []string
}

// NewRegistry builds a registry holding the SI base units, the prefixes, and the
// built-in definitions.
func NewRegistry() (*Registry, error) {
	r := &Registry{units: make(map[string]Unit)}

	r.add(base(Length, 1), "meter", "metre", "m")
	r.add(base(Mass, 1e-3), "gram", "g")
	r.add(base(Time, 1), "second", "sec", "s")
	r.add(base(Current, 1), "ampere", "A")
	r.add(base(Temperature, 1), "kelvin", "K")
	r.add(base(Amount, 1), "mole", "mol")
	r.add(base(Luminosity, 1), "candela", "cd")
	r.add(Unit{Scale: 1}, "dimensionless")

	for _, def := range definitions {
		u, err := r.parse(def.expr)
		if err != nil {
			return nil, fmt.Errorf("define %s: %w", def.name, err)
		}
		r.add(u, append([]string{def.name}, def.aliases...)...)
	}

	sort.Strings(r.names)
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on a bad definition.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) add(u Unit, names ...string) {
	for _, n := range names {
		r.units[n] = u
	}
	r.names = append(r.names, names[0])
}

// Names returns the canonical names of all registered units, sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Parse resolves a unit expression such as "kWh", "m^3", "kg/km" or "US_gallon".
func (r *Registry) Parse(expr string) (Unit, error) {
	if strings.TrimSpace(expr) == "" {
		return Unit{}, errSyntax
	}
	u, err := r.parse(expr)
	if err != nil {
		return Unit{}, err
	}
	if !(u.Scale > 0) || math.IsInf(u.Scale, 0) {
		return Unit{}, fmt.Errorf("%w: scale must be positive and finite", errSyntax)
	}
	return u, nil
}

func (r *Registry) parse(expr string) (Unit, error) {
	tokens, err := lex(expr)
	if err != nil {
		return Unit{}, err
	}
	p := &parser{tokens: tokens, lookup: r.lookup}
	return p.parse()
}

// lookup resolves a single identifier: exact name, then SI-prefixed name,
// then trailing-digit exponent ("m3"), then plural ("liters").
func (r *Registry) lookup(name string) (Unit, bool) {
	if u, ok := r.resolve(name); ok {
		return u, true
	}

	if i := strings.LastIndexFunc(name, func(c rune) bool { return c < '0' || c > '9' }); i >= 0 && i < len(name)-1 {
		exp, err := strconv.Atoi(name[i+1:])
		if err == nil {
			if u, ok := r.resolve(name[:i+1]); ok {
				if powered, err := u.pow(exp); err == nil {
					return powered, true
				}
			}
		}
	}

	if len(name) > 2 && strings.HasSuffix(name, "s") {
		if u, ok := r.resolve(strings.TrimSuffix(name, "s")); ok {
			return u, true
		}
	}

	return Unit{}, false
}

func (r *Registry) resolve(name string) (Unit, bool) {
	if u, ok := r.units[name]; ok {
		return u, true
	}
	for _, set := range [][]prefix{longPrefixes, shortPrefixes} {
		for _, p := range set {
			rest, found := strings.CutPrefix(name, p.name)
			if !found || rest == "" {
				continue
			}
			if u, ok := r.units[rest]; ok {
				return Unit{Scale: u.Scale * p.scale, Dimension: u.Dimension}, true
			}
		}
	}
	return Unit{}, false
}
