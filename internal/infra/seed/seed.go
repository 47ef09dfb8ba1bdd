// Package seed loads the emission factor catalogue used to populate the factor table.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carbon-tracker/backend/internal/application/usecase/factor"
)

//go:embed factors.yaml
var embedded []byte

// Catalogue is the on-disk layout of a factor file.
type Catalogue struct {
	Version int           `yaml:"version"`
	Factors []FactorEntry `yaml:"factors"`
}

// FactorEntry is one factor in the catalogue.
type FactorEntry struct {
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	Scope       int     `yaml:"scope"`
	FactorValue float64 `yaml:"factor_value"`
	Unit        string  `yaml:"unit"`
	CO2eUnit    string  `yaml:"co2e_unit,omitempty"`
	Source      string  `yaml:"source,omitempty"`
}

// Default returns the embedded catalogue.
func Default() ([]factor.CreateFactorInput, error) {
	return Parse(bytes.NewReader(embedded))
}

// LoadFile reads a catalogue from path, or the embedded one when path is empty.
func LoadFile(path string) ([]factor.CreateFactorInput, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open factor catalogue: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a catalogue. Unknown keys are rejected so typos do not silently drop data.
func Parse(r io.Reader) ([]factor.CreateFactorInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalogue
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode factor catalogue: %w", err)
	}
	if c.Version != 1 {
		return nil, fmt.Errorf("unsupported factor catalogue version %d", c.Version)
	}
	if len(c.Factors) == 0 {
		return nil, fmt.Errorf("factor catalogue is empty")
	}

	out := make([]factor.CreateFactorInput, len(c.Factors))
	for i, e := range c.Factors {
		out[i] = factor.CreateFactorInput{
			Name:        e.Name,
			Category:    e.Category,
			Scope:       e.Scope,
			FactorValue: e.FactorValue,
			Unit:        e.Unit,
			CO2eUnit:    e.CO2eUnit,
			Source:      e.Source,
		}
	}
	return out, nil
}
