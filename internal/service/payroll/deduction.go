package payroll

import (
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// DeductionInput - attendance exceptions plus approved adjustment records
// for one employee-period, already filtered to the employee by the caller.
type DeductionInput struct {
	BasicSalary         decimal.Decimal
	WorkingDaysInPeriod int
	PeriodStart         time.Time
	PeriodEnd           time.Time
	Attendance          payroll.AttendanceSummary
	Adjustments         []payroll.AdjustmentRecord
	Settings            payroll.PayrollSettings
}

// DeductionCalculator converts attendance exceptions and adjustment
// records into itemized currency deductions. Stateless.
type DeductionCalculator struct {
}

func NewDeductionCalculator() *DeductionCalculator {
	return &DeductionCalculator{}
}

func (c *DeductionCalculator) Calculate(in DeductionInput) payroll.DeductionResult {
	var result payroll.DeductionResult
	result.Total = decimal.Zero

	dailyRate := decimal.Zero
	if in.WorkingDaysInPeriod > 0 {
		dailyRate = in.BasicSalary.Div(decimal.NewFromInt(int64(in.WorkingDaysInPeriod)))
	}

	addItem := func(t payroll.DeductionType, amount decimal.Decimal, sourceID *string) {
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		amount = amount.Round(0)
		result.Total = result.Total.Add(amount)
		if amount.IsZero() {
			return
		}
		result.Items = append(result.Items, payroll.DeductionItem{Type: t, Amount: amount, SourceID: sourceID})
	}

	// Absence
	absence := dailyRate.
		Mul(decimal.NewFromInt(int64(in.Attendance.AbsentDays))).
		Mul(in.Settings.AbsenceRate)
	addItem(payroll.DeductionAbsence, absence, nil)

	// Lateness: per-minute when minute data and a nonzero per-minute rate
	// exist, per-day otherwise.
	addItem(payroll.DeductionLateness, c.latenessAmount(dailyRate, in), nil)

	// Unpaid leave
	unpaid := dailyRate.
		Mul(decimal.NewFromInt(int64(in.Attendance.UnpaidLeaveDays))).
		Mul(in.Settings.UnpaidLeaveRate)
	addItem(payroll.DeductionUnpaidLeave, unpaid, nil)

	// Approved adjustments, including recurring records whose effective
	// window covers the period.
	for _, adj := range in.Adjustments {
		if !adjustmentApplies(adj, in.PeriodStart, in.PeriodEnd) {
			continue
		}
		id := adj.ID
		addItem(adj.Type, adj.Amount, &id)
	}

	return result
}

func (c *DeductionCalculator) latenessAmount(dailyRate decimal.Decimal, in DeductionInput) decimal.Decimal {
	perMinuteRate := in.Settings.LatePerMinuteRate
	if in.Attendance.LateMinutes > 0 && perMinuteRate.IsPositive() {
		chargeable := in.Attendance.LateMinutes - in.Settings.LateToleranceMinutes
		if chargeable <= 0 {
			return decimal.Zero
		}
		workHours := in.Settings.WorkHoursPerDay
		if workHours <= 0 {
			workHours = 8
		}
		hourlyRate := dailyRate.Div(decimal.NewFromInt(int64(workHours)))
		perMinute := hourlyRate.Div(decimal.NewFromInt(60))
		return perMinute.Mul(decimal.NewFromInt(int64(chargeable))).Mul(perMinuteRate)
	}

	return dailyRate.
		Mul(decimal.NewFromInt(int64(in.Attendance.LateDays))).
		Mul(in.Settings.LatePerDayRate)
}

// adjustmentApplies reports whether an adjustment record belongs to the
// period. One-off records apply when their effective start falls inside
// the period; recurring records apply when their window overlaps it.
func adjustmentApplies(adj payroll.AdjustmentRecord, periodStart, periodEnd time.Time) bool {
	start := truncateToDate(adj.EffectiveStart)
	ps := truncateToDate(periodStart)
	pe := truncateToDate(periodEnd)

	if !adj.IsRecurring {
		return !start.Before(ps) && !start.After(pe)
	}

	if start.After(pe) {
		return false
	}
	if adj.EffectiveEnd != nil && truncateToDate(*adj.EffectiveEnd).Before(ps) {
		return false
	}
	return true
}
