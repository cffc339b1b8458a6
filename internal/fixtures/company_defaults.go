package fixtures

import (
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT PAYROLL SETTINGS
// ==========================================

// DefaultPayrollSettings returns the settings applied when a company has
// not configured payroll yet. Generation never fails on missing settings;
// it runs on these values instead.
func DefaultPayrollSettings(companyID string) payroll.PayrollSettings {
	return payroll.PayrollSettings{
		CompanyID: companyID,

		CutoffDay:          payroll.DefaultCutoffDay,
		CutoffDayOverrides: map[int]int{},

		HealthSalaryCap:  decimal.NewFromInt(12_000_000),
		PensionSalaryCap: decimal.RequireFromString("10042300"),

		AbsenceRate:          decimal.NewFromInt(1),
		UnpaidLeaveRate:      decimal.NewFromInt(1),
		LatePerDayRate:       decimal.RequireFromString("0.5"),
		LatePerMinuteRate:    decimal.Zero,
		LateToleranceMinutes: 0,

		WorkHoursPerDay: 8,
		ProrationMethod: payroll.ProrationCalendarDay,
	}
}

// ==========================================
// DEFAULT HOLIDAY CALENDAR
// ==========================================

// GetDefaultHolidays returns the Indonesian national holidays seeded for a
// new company for the given year. Companies adjust these afterwards; joint
// leave days (cuti bersama) change every year by ministerial decree.
func GetDefaultHolidays(year int) []time.Time {
	d := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	return []time.Time{
		d(time.January, 1),   // New Year
		d(time.May, 1),       // Labour Day
		d(time.June, 1),      // Pancasila Day
		d(time.August, 17),   // Independence Day
		d(time.December, 25), // Christmas
	}
}
