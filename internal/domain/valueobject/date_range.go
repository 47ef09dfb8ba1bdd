// Package valueobject contains immutable value types shared across use cases.
package valueobject

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// DateLayout is the calendar date format accepted at the boundary.
const DateLayout = "2006-01-02"

// MonthLayout keys a monthly bucket.
const MonthLayout = "2006-01"

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates an inclusive range of the calendar dates of start and end.
func NewDateRange(start, end time.Time) (*DateRange, error) {
	s, e := entity.CalendarDate(start), entity.CalendarDate(end)
	if s.After(e) {
		return nil, &domainerror.EmissionError{
			Code:    domainerror.ErrCodeInvalidDateRange,
			Message: domainerror.ErrInvalidDateRange.Error(),
			Field:   "start_date",
		}
	}
	return &DateRange{Start: s, End: e}, nil
}

// ParseDateRange parses two YYYY-MM-DD strings into a range.
func ParseDateRange(start, end string) (*DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, domainerror.NewInvalidInputError("start_date", "must be a date formatted YYYY-MM-DD")
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, domainerror.NewInvalidInputError("end_date", "must be a date formatted YYYY-MM-DD")
	}
	return NewDateRange(s, e)
}

// Contains reports whether the calendar date of t falls within the range.
func (r *DateRange) Contains(t time.Time) bool {
	d := entity.CalendarDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// MonthKey returns the YYYY-MM bucket of t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}
