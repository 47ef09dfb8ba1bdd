package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/carbon-tracker/backend/internal/application/usecase/factor"
	"github.com/carbon-tracker/backend/internal/domain/unit"
)

func TestDefault_IsValidCatalogue(t *testing.T) {
	inputs, err := Default()
	require.NoError(t, err)
	assert.Len(t, inputs, 20)

	scopes := map[int]int{}
	for _, in := range inputs {
		scopes[in.Scope]++
		assert.True(t, unit.IsRecognized(in.Unit), "%s: %s", in.Name, in.Unit)
	}
	assert.Positive(t, scopes[1])
	assert.Positive(t, scopes[2])
	assert.Positive(t, scopes[3])

	repo := adaptertest.NewFactorRepository()
	seeded, err := factor.NewSeedFactorsUseCase(repo, unit.Default()).Execute(context.Background(), inputs)
	require.NoError(t, err)
	assert.Len(t, seeded, 20)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "version: 1\nfactors:\n  - name: x\n    colour: red\n", "colour"},
		{"wrong version", "version: 2\nfactors:\n  - name: x\n", "version 2"},
		{"empty", "version: 1\nfactors: []\n", "empty"},
		{"not yaml", "version: [", "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.yaml")
	doc := "version: 1\nfactors:\n  - name: Diesel\n    category: fuel\n    scope: 1\n    factor_value: 2.68\n    unit: liter\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	inputs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Diesel", inputs[0].Name)
	assert.Equal(t, 2.68, inputs[0].FactorValue)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	embedded, err := LoadFile("")
	require.NoError(t, err)
	assert.Len(t, embedded, 20)
}
