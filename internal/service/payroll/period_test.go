package payroll

import (
	"testing"
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod_DefaultCutoff(t *testing.T) {
	settings := payroll.PayrollSettings{CutoffDay: 20}

	start, end, err := ResolvePeriod("2025-04", settings)
	require.NoError(t, err)

	assert.Equal(t, day(2025, time.March, 21), start)
	assert.Equal(t, day(2025, time.April, 20), end)
}

func TestResolvePeriod_JanuarySpansYears(t *testing.T) {
	settings := payroll.PayrollSettings{CutoffDay: 20}

	start, end, err := ResolvePeriod("2025-01", settings)
	require.NoError(t, err)

	assert.Equal(t, day(2024, time.December, 21), start)
	assert.Equal(t, day(2025, time.January, 20), end)
}

func TestResolvePeriod_YearOverride(t *testing.T) {
	settings := payroll.PayrollSettings{
		CutoffDay:          20,
		CutoffDayOverrides: map[int]int{2024: 25},
	}

	// 2024 periods use the historical cutoff.
	start, end, err := ResolvePeriod("2024-06", settings)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.May, 26), start)
	assert.Equal(t, day(2024, time.June, 25), end)

	// Other years keep the configured day.
	_, end, err = ResolvePeriod("2025-06", settings)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.June, 20), end)
}

func TestResolvePeriod_OutOfRangeCutoffFallsBack(t *testing.T) {
	settings := payroll.PayrollSettings{CutoffDay: 31}

	_, end, err := ResolvePeriod("2025-02", settings)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.February, payroll.DefaultCutoffDay), end)
}

func TestResolvePeriod_InvalidToken(t *testing.T) {
	settings := payroll.PayrollSettings{CutoffDay: 20}

	_, _, err := ResolvePeriod("April 2025", settings)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, _, err = ResolvePeriod("2025-13", settings)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPeriodWorkingDays(t *testing.T) {
	// Mon Apr 7 through Fri Apr 11 2025: five weekdays.
	count := PeriodWorkingDays(day(2025, time.April, 7), day(2025, time.April, 11), nil)
	assert.Equal(t, 5, count)

	count = PeriodWorkingDays(day(2025, time.April, 7), day(2025, time.April, 11),
		[]time.Time{day(2025, time.April, 9)})
	assert.Equal(t, 4, count)
}
