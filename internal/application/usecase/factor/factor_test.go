package factor

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/unit"
)

func dieselInput() CreateFactorInput {
	return CreateFactorInput{
		Name:        "Diesel",
		Category:    "Stationary Combustion",
		Scope:       1,
		FactorValue: 2.68,
		Unit:        "liter",
		Source:      "EPA 2023",
	}
}

func TestCreateFactor(t *testing.T) {
	repo := adaptertest.NewFactorRepository()
	uc := NewCreateFactorUseCase(repo, unit.Default())

	f, err := uc.Execute(context.Background(), dieselInput())

	require.NoError(t, err)
	assert.Equal(t, entity.Scope1, f.Scope)
	assert.Equal(t, entity.CO2eUnitKg, f.CO2eUnit)

	stored, err := repo.FindByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diesel", stored.Name)
}

func TestCreateFactor_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateFactorInput)
		field  string
	}{
		{"blank name", func(in *CreateFactorInput) { in.Name = " " }, "name"},
		{"blank category", func(in *CreateFactorInput) { in.Category = "" }, "category"},
		{"scope zero", func(in *CreateFactorInput) { in.Scope = 0 }, "scope"},
		{"scope four", func(in *CreateFactorInput) { in.Scope = 4 }, "scope"},
		{"zero value", func(in *CreateFactorInput) { in.FactorValue = 0 }, "factor_value"},
		{"negative value", func(in *CreateFactorInput) { in.FactorValue = -1 }, "factor_value"},
		{"NaN value", func(in *CreateFactorInput) { in.FactorValue = math.NaN() }, "factor_value"},
		{"unknown unit", func(in *CreateFactorInput) { in.Unit = "barrels of fun" }, "unit"},
		{"zero scaled unit", func(in *CreateFactorInput) { in.Unit = "0 liter" }, "unit"},
		{"negative scaled unit", func(in *CreateFactorInput) { in.Unit = "-1 liter" }, "unit"},
		{"non kg basis", func(in *CreateFactorInput) { in.CO2eUnit = "t CO2e" }, "co2e_unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := adaptertest.NewFactorRepository()
			uc := NewCreateFactorUseCase(repo, unit.Default())
			in := dieselInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerror.ErrInvalidFactor))
			var emissionErr *domainerror.EmissionError
			require.ErrorAs(t, err, &emissionErr)
			assert.Equal(t, tt.field, emissionErr.Field)

			all, _ := repo.List(context.Background())
			assert.Empty(t, all)
		})
	}
}

func TestListFactors_OrderedByCategoryThenName(t *testing.T) {
	repo := adaptertest.NewFactorRepository(
		entity.NewEmissionFactor("Petrol", "Mobile Combustion", entity.Scope1, 2.31, "liter", ""),
		entity.NewEmissionFactor("Diesel", "Stationary Combustion", entity.Scope1, 2.68, "liter", ""),
		entity.NewEmissionFactor("Diesel", "Mobile Combustion", entity.Scope1, 2.68, "liter", ""),
	)
	uc := NewListFactorsUseCase(repo)

	factors, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, factors, 3)
	assert.Equal(t, "Mobile Combustion/Diesel", factors[0].Category+"/"+factors[0].Name)
	assert.Equal(t, "Mobile Combustion/Petrol", factors[1].Category+"/"+factors[1].Name)
	assert.Equal(t, "Stationary Combustion/Diesel", factors[2].Category+"/"+factors[2].Name)
}

func TestSeedFactors(t *testing.T) {
	t.Run("replaces the catalogue", func(t *testing.T) {
		old := entity.NewEmissionFactor("Old", "Legacy", entity.Scope3, 1, "kg", "")
		repo := adaptertest.NewFactorRepository(old)
		uc := NewSeedFactorsUseCase(repo, unit.Default())

		seeded, err := uc.Execute(context.Background(), []CreateFactorInput{dieselInput()})

		require.NoError(t, err)
		require.Len(t, seeded, 1)
		all, _ := repo.List(context.Background())
		require.Len(t, all, 1)
		assert.Equal(t, "Diesel", all[0].Name)
	})

	t.Run("one invalid factor leaves the store untouched", func(t *testing.T) {
		old := entity.NewEmissionFactor("Old", "Legacy", entity.Scope3, 1, "kg", "")
		repo := adaptertest.NewFactorRepository(old)
		uc := NewSeedFactorsUseCase(repo, unit.Default())
		bad := dieselInput()
		bad.Unit = "widgets"

		_, err := uc.Execute(context.Background(), []CreateFactorInput{dieselInput(), bad})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidFactor))
		all, _ := repo.List(context.Background())
		require.Len(t, all, 1)
		assert.Equal(t, old.ID, all[0].ID)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := adaptertest.NewFactorRepository()
		repo.Err = errors.New("read-only")
		uc := NewSeedFactorsUseCase(repo, unit.Default())

		_, err := uc.Execute(context.Background(), []CreateFactorInput{dieselInput()})

		assert.True(t, errors.Is(err, domainerror.ErrPersistenceFailed))
	})
}
