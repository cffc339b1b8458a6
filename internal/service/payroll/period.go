package payroll

import (
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
)

// ResolvePeriod turns a "YYYY-MM" token into concrete period bounds using
// the company cutoff day: the window runs from the day after the cutoff
// in the previous month through the cutoff day of the period month.
func ResolvePeriod(period string, settings payroll.PayrollSettings) (time.Time, time.Time, error) {
	t, err := payroll.ParsePeriod(period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	cutoff := settings.CutoffForYear(t.Year())
	if cutoff < 1 || cutoff > 28 {
		cutoff = payroll.DefaultCutoffDay
	}

	end := time.Date(t.Year(), t.Month(), cutoff, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -1, 0).AddDate(0, 0, 1)

	return start, end, nil
}

// PeriodWorkingDays counts the weekdays in the period window, excluding
// the company's holiday calendar.
func PeriodWorkingDays(start, end time.Time, holidays []time.Time) int {
	return workingDays(start, end, holidays)
}
