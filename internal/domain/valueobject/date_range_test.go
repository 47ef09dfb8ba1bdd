package valueobject

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	t.Run("single day range is valid", func(t *testing.T) {
		r, err := NewDateRange(date(2024, 3, 1), date(2024, 3, 1))
		require.NoError(t, err)
		assert.True(t, r.Contains(date(2024, 3, 1)))
	})

	t.Run("truncates time of day", func(t *testing.T) {
		r, err := NewDateRange(
			time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
			time.Date(2024, 1, 31, 1, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 1, 1), r.Start)
		assert.Equal(t, date(2024, 1, 31), r.End)
		assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		_, err := NewDateRange(date(2024, 2, 1), date(2024, 1, 31))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidDateRange))
		assert.True(t, errors.Is(err, domainerror.ErrInvalidInput))
	})
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantField string
	}{
		{"bad start", "2024/01/01", "2024-01-31", "start_date"},
		{"bad end", "2024-01-01", "tomorrow", "end_date"},
		{"inverted", "2024-02-01", "2024-01-01", "start_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateRange(tt.start, tt.end)
			var emissionErr *domainerror.EmissionError
			require.ErrorAs(t, err, &emissionErr)
			assert.Equal(t, tt.wantField, emissionErr.Field)
		})
	}

	r, err := ParseDateRange("2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.False(t, r.Contains(date(2025, 1, 1)))
	assert.False(t, r.Contains(date(2023, 12, 31)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-03", MonthKey(date(2024, 3, 15)))
	assert.Equal(t, "1999-12", MonthKey(date(1999, 12, 31)))
}
