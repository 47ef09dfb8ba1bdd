package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/config"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/infra/db"
	"github.com/carbon-tracker/backend/internal/integration/persistence"
)

func sqliteOptions(t *testing.T) (Options, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "carbon.db")
	opts := Options{
		Config: &config.Config{Database: config.DatabaseConfig{ConnectMaxElapsed: time.Second}},
		OpenDB: func(ctx context.Context, cfg *config.DatabaseConfig) (*db.Database, error) {
			return db.Open(ctx, sqlite.Open(dsn), cfg)
		},
	}
	return opts, dsn
}

func execute(t *testing.T, opts Options, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmdWithOptions(opts)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConvertCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"megawatt hours", []string{"convert", "2", "MWh", "kWh"}, "2 MWh = 2000 kWh\n"},
		{"identity", []string{"convert", "42", "widgets", "widgets"}, "42 widgets = 42 widgets\n"},
		{"tonnes", []string{"convert", "1.5", "tonne", "kg"}, "1.5 tonne = 1500 kg\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, Options{}, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConvertCmd_Errors(t *testing.T) {
	_, err := execute(t, Options{}, "convert", "abc", "kg", "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a number")

	_, err = execute(t, Options{}, "convert", "1", "kg", "meter")
	assert.ErrorIs(t, err, domainerror.ErrIncompatibleDimensions)

	_, err = execute(t, Options{}, "convert", "1", "kg")
	assert.Error(t, err)
}

func TestSeedCmd_EmbeddedCatalogue(t *testing.T) {
	opts, dsn := sqliteOptions(t)

	out, err := execute(t, opts, "seed")
	require.NoError(t, err)
	assert.Regexp(t, `^Seeded \d+ emission factors\n$`, out)

	database, err := db.Open(context.Background(), sqlite.Open(dsn), &config.DatabaseConfig{ConnectMaxElapsed: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	factors, err := persistence.NewEmissionFactorRepository(database.DB()).List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, factors)
}

func TestSeedCmd_FileReplacesCatalogue(t *testing.T) {
	opts, _ := sqliteOptions(t)

	_, err := execute(t, opts, "seed")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "factors.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`version: 1
factors:
  - name: Diesel
    scope: 1
    category: fuel
    unit: liter
    factor_value: 2.68
    source: test
`), 0o600))

	out, err := execute(t, opts, "seed", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "Seeded 1 emission factors\n", out)
}

func TestSeedCmd_InvalidCatalogueLeavesStoreUntouched(t *testing.T) {
	opts, dsn := sqliteOptions(t)

	_, err := execute(t, opts, "seed")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`version: 1
factors:
  - name: Mystery
    scope: 1
    category: fuel
    unit: widgets
    factor_value: 1
    source: test
`), 0o600))

	_, err = execute(t, opts, "seed", "-f", file)
	require.Error(t, err)

	database, err := db.Open(context.Background(), sqlite.Open(dsn), &config.DatabaseConfig{ConnectMaxElapsed: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	factors, err := persistence.NewEmissionFactorRepository(database.DB()).List(context.Background())
	require.NoError(t, err)
	assert.Greater(t, len(factors), 1)
}

func TestMigrateCmd(t *testing.T) {
	opts, _ := sqliteOptions(t)

	out, err := execute(t, opts, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "Migrations applied\n", out)
}
