package emission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

func TestListInputs(t *testing.T) {
	factor := entity.NewEmissionFactor("Diesel", "Stationary Combustion", entity.Scope1, 2.68, "liter", "EPA")
	factors := adaptertest.NewFactorRepository(factor)
	inputs := adaptertest.NewUserInputRepository(factors)
	userID := uuid.New()

	ctx := context.Background()
	for day := 1; day <= 25; day++ {
		d := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		require.NoError(t, inputs.Create(ctx, entity.NewUserInput(userID, factor.ID, 1, "liter", d, 2.68)))
	}
	require.NoError(t, inputs.Create(ctx, entity.NewUserInput(uuid.New(), factor.ID, 1, "liter", time.Now(), 2.68)))

	uc := NewListInputsUseCase(inputs)

	t.Run("defaults to first page of twenty", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListInputsInput{UserID: userID})
		require.NoError(t, err)
		assert.Len(t, out.Inputs, DefaultPerPage)
		assert.Equal(t, int64(25), out.TotalItems)
		assert.Equal(t, 2, out.TotalPages)
		assert.Equal(t, 1, out.CurrentPage)
		assert.Equal(t, 25, out.Inputs[0].DatePeriodStart.Day())
	})

	t.Run("last partial page", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListInputsInput{UserID: userID, Page: 2, PerPage: 20})
		require.NoError(t, err)
		assert.Len(t, out.Inputs, 5)
		assert.Equal(t, 1, out.Inputs[len(out.Inputs)-1].DatePeriodStart.Day())
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListInputsInput{UserID: userID, Page: 9})
		require.NoError(t, err)
		assert.Empty(t, out.Inputs)
		assert.Equal(t, 9, out.CurrentPage)
	})

	t.Run("page size is capped", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListInputsInput{UserID: userID, PerPage: 1000})
		require.NoError(t, err)
		assert.Equal(t, MaxPerPage, out.PerPage)
		assert.Equal(t, 1, out.TotalPages)
	})

	t.Run("user without records", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListInputsInput{UserID: uuid.New()})
		require.NoError(t, err)
		assert.Empty(t, out.Inputs)
		assert.Zero(t, out.TotalPages)
	})

	t.Run("store failure", func(t *testing.T) {
		inputs.QueryErr = errors.New("boom")
		defer func() { inputs.QueryErr = nil }()

		_, err := uc.Execute(ctx, ListInputsInput{UserID: userID})
		assert.True(t, errors.Is(err, domainerror.ErrPersistenceFailed))
	})
}
