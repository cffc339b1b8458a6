package payroll

import (
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ProrationInput - everything needed to compute a period factor for one
// employee. Holidays only matter for the working-day method.
type ProrationInput struct {
	PeriodStart     time.Time
	PeriodEnd       time.Time
	JoinDate        time.Time
	ResignDate      *time.Time
	UnpaidLeaveDays int
	Method          payroll.ProrationMethod
	Holidays        []time.Time
	// CustomFactor bypasses date math entirely when set; it is clamped
	// to [0,1].
	CustomFactor *decimal.Decimal
}

// ProrationCalculator computes the fraction of a pay period actually
// worked. Stateless.
type ProrationCalculator struct {
}

func NewProrationCalculator() *ProrationCalculator {
	return &ProrationCalculator{}
}

func (c *ProrationCalculator) Calculate(in ProrationInput) payroll.ProrationResult {
	if in.CustomFactor != nil {
		factor := clampFactor(*in.CustomFactor)
		return payroll.ProrationResult{
			Factor:     factor,
			TotalDays:  0,
			ActualDays: decimal.Zero,
			Method:     payroll.ProrationCustom,
			IsProrated: !factor.Equal(decimal.NewFromInt(1)),
			Reasons:    []string{"custom factor"},
		}
	}

	method := in.Method
	if method != payroll.ProrationCalendarDay {
		method = payroll.ProrationWorkingDay
	}

	totalDays := c.countDays(in.PeriodStart, in.PeriodEnd, method, in.Holidays)

	// Clamp the employment window to the period.
	var reasons []string
	windowStart := in.PeriodStart
	if in.JoinDate.After(in.PeriodStart) {
		windowStart = in.JoinDate
		reasons = append(reasons, "join mid-period")
	}
	windowEnd := in.PeriodEnd
	if in.ResignDate != nil && in.ResignDate.Before(in.PeriodEnd) {
		windowEnd = *in.ResignDate
		reasons = append(reasons, "resign mid-period")
	}

	worked := 0
	if !windowStart.After(windowEnd) {
		worked = c.countDays(windowStart, windowEnd, method, in.Holidays)
	}

	// Unpaid leave reduces the numerator, never the denominator.
	actual := decimal.NewFromInt(int64(worked - in.UnpaidLeaveDays))
	if actual.IsNegative() {
		actual = decimal.Zero
	}
	if in.UnpaidLeaveDays > 0 {
		reasons = append(reasons, "unpaid leave")
	}

	if totalDays == 0 {
		return payroll.ProrationResult{
			Factor:     decimal.Zero,
			ActualDays: decimal.Zero,
			TotalDays:  0,
			Method:     method,
			IsProrated: true,
			Reasons:    reasons,
		}
	}

	total := decimal.NewFromInt(int64(totalDays))
	factor := decimal.NewFromInt(1)
	prorated := actual.LessThan(total)
	if prorated {
		factor = actual.Div(total)
	}

	return payroll.ProrationResult{
		Factor:     clampFactor(factor),
		ActualDays: actual,
		TotalDays:  totalDays,
		Method:     method,
		IsProrated: prorated,
		Reasons:    reasons,
	}
}

func (c *ProrationCalculator) countDays(start, end time.Time, method payroll.ProrationMethod, holidays []time.Time) int {
	if method == payroll.ProrationCalendarDay {
		return calendarDays(start, end)
	}
	return workingDays(start, end, holidays)
}

// calendarDays counts days between two dates, inclusive.
func calendarDays(start, end time.Time) int {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// workingDays counts weekdays between two dates inclusive, skipping the
// supplied holidays.
func workingDays(start, end time.Time, holidays []time.Time) int {
	start = truncateToDate(start)
	end = truncateToDate(end)

	holidaySet := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[truncateToDate(h)] = struct{}{}
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if _, ok := holidaySet[day]; ok {
			continue
		}
		count++
	}
	return count
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clampFactor(f decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if f.IsNegative() {
		return decimal.Zero
	}
	if f.GreaterThan(one) {
		return one
	}
	return f
}
