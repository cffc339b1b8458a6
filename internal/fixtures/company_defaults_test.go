package fixtures_test

import (
	"testing"
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/fixtures"
	payrollcalc "github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPayrollSettings(t *testing.T) {
	s := fixtures.DefaultPayrollSettings("company-1")

	assert.Equal(t, "company-1", s.CompanyID)
	assert.Equal(t, payroll.DefaultCutoffDay, s.CutoffDay)
	assert.True(t, s.HealthSalaryCap.Equal(decimal.NewFromInt(12_000_000)))
	assert.True(t, s.PensionSalaryCap.Equal(decimal.RequireFromString("10042300")))

	// Attendance deduction rates: absence and unpaid leave cost a full
	// day, a late day costs half a day, per-minute billing is opt-in.
	assert.True(t, s.AbsenceRate.Equal(decimal.NewFromInt(1)))
	assert.True(t, s.UnpaidLeaveRate.Equal(decimal.NewFromInt(1)))
	assert.True(t, s.LatePerDayRate.Equal(decimal.RequireFromString("0.5")), "got %s", s.LatePerDayRate)
	assert.True(t, s.LatePerMinuteRate.IsZero())
	assert.Equal(t, 0, s.LateToleranceMinutes)

	assert.Equal(t, 8, s.WorkHoursPerDay)
	assert.Equal(t, payroll.ProrationCalendarDay, s.ProrationMethod)
}

func TestDefaultPayrollSettings_LateDaysDeduct(t *testing.T) {
	calc := payrollcalc.NewDeductionCalculator()

	result := calc.Calculate(payrollcalc.DeductionInput{
		BasicSalary:         decimal.NewFromInt(6_200_000),
		WorkingDaysInPeriod: 20,
		PeriodStart:         time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC),
		PeriodEnd:           time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
		Attendance:          payroll.AttendanceSummary{LateDays: 3},
		Settings:            fixtures.DefaultPayrollSettings("company-1"),
	})

	// Daily rate 310,000; three late days at the 50% default.
	require.Len(t, result.Items, 1)
	assert.Equal(t, payroll.DeductionLateness, result.Items[0].Type)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(465_000)), "got %s", result.Total)
}

func TestGetDefaultHolidays(t *testing.T) {
	holidays := fixtures.GetDefaultHolidays(2025)

	require.NotEmpty(t, holidays)
	for _, h := range holidays {
		assert.Equal(t, 2025, h.Year())
	}
}
