package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodRangeWeek(t *testing.T) {
	// Wednesday 2026-03-18 falls in the week of Monday the 16th
	start, end := PeriodWeek.Range(time.Date(2026, 3, 18, 15, 42, 0, 0, time.UTC))
	assert.Equal(t, date(2026, 3, 16), start)
	assert.Equal(t, date(2026, 3, 22), end)

	// Sunday belongs to the week that started the previous Monday
	start, end = PeriodWeek.Range(date(2026, 3, 22))
	assert.Equal(t, date(2026, 3, 16), start)
	assert.Equal(t, date(2026, 3, 22), end)

	// a Monday starts its own week
	start, _ = PeriodWeek.Range(date(2026, 3, 16))
	assert.Equal(t, date(2026, 3, 16), start)
}

func TestPeriodRangeMonth(t *testing.T) {
	start, end := PeriodMonth.Range(date(2026, 2, 14))
	assert.Equal(t, date(2026, 2, 1), start)
	assert.Equal(t, date(2026, 2, 28), end)

	start, end = PeriodMonth.Range(date(2024, 2, 10))
	assert.Equal(t, date(2024, 2, 1), start)
	assert.Equal(t, date(2024, 2, 29), end)
}

func TestPeriodIsValid(t *testing.T) {
	assert.True(t, PeriodWeek.IsValid())
	assert.True(t, PeriodMonth.IsValid())
	assert.False(t, Period("year").IsValid())
	assert.False(t, Period("").IsValid())
}
