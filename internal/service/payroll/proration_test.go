package payroll

import (
	"testing"
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, dom int) time.Time {
	return time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
}

func TestProrationCalculator_FullPeriodFactorIsExactlyOne(t *testing.T) {
	calc := NewProrationCalculator()

	result := calc.Calculate(ProrationInput{
		PeriodStart: day(2025, time.March, 21),
		PeriodEnd:   day(2025, time.April, 20),
		JoinDate:    day(2024, time.January, 1),
		Method:      payroll.ProrationCalendarDay,
	})

	// Exactly one, not a quotient that happens to equal one.
	assert.True(t, result.Factor.Equal(decimal.NewFromInt(1)), "got %s", result.Factor)
	assert.False(t, result.IsProrated)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, 31, result.TotalDays)
}

func TestProrationCalculator_JoinMidPeriod(t *testing.T) {
	calc := NewProrationCalculator()

	result := calc.Calculate(ProrationInput{
		PeriodStart: day(2025, time.March, 21),
		PeriodEnd:   day(2025, time.April, 20),
		JoinDate:    day(2025, time.April, 1),
		Method:      payroll.ProrationCalendarDay,
	})

	assert.True(t, result.IsProrated)
	assert.Contains(t, result.Reasons, "join mid-period")
	assert.Equal(t, 31, result.TotalDays)
	assert.True(t, result.ActualDays.Equal(d(20)), "got %s", result.ActualDays)

	expected := d(20).Div(d(31))
	assert.True(t, result.Factor.Equal(expected), "got %s", result.Factor)
}

func TestProrationCalculator_ResignMidPeriod(t *testing.T) {
	calc := NewProrationCalculator()

	resign := day(2025, time.March, 31)
	result := calc.Calculate(ProrationInput{
		PeriodStart: day(2025, time.March, 21),
		PeriodEnd:   day(2025, time.April, 20),
		JoinDate:    day(2024, time.January, 1),
		ResignDate:  &resign,
		Method:      payroll.ProrationCalendarDay,
	})

	assert.True(t, result.IsProrated)
	assert.Contains(t, result.Reasons, "resign mid-period")
	assert.True(t, result.ActualDays.Equal(d(11)), "got %s", result.ActualDays)
}

func TestProrationCalculator_UnpaidLeaveReducesNumeratorOnly(t *testing.T) {
	calc := NewProrationCalculator()

	result := calc.Calculate(ProrationInput{
		PeriodStart:     day(2025, time.March, 21),
		PeriodEnd:       day(2025, time.April, 20),
		JoinDate:        day(2024, time.January, 1),
		UnpaidLeaveDays: 5,
		Method:          payroll.ProrationCalendarDay,
	})

	assert.True(t, result.IsProrated)
	assert.Contains(t, result.Reasons, "unpaid leave")
	assert.Equal(t, 31, result.TotalDays, "denominator must keep the full period")
	assert.True(t, result.ActualDays.Equal(d(26)), "got %s", result.ActualDays)
}

func TestProrationCalculator_WorkingDayMethodSkipsWeekendsAndHolidays(t *testing.T) {
	calc := NewProrationCalculator()

	// March 21 2025 is a Friday; April 20 a Sunday. The window holds 21
	// weekdays; a holiday on a weekday removes one more.
	result := calc.Calculate(ProrationInput{
		PeriodStart: day(2025, time.March, 21),
		PeriodEnd:   day(2025, time.April, 20),
		JoinDate:    day(2024, time.January, 1),
		Method:      payroll.ProrationWorkingDay,
		Holidays:    []time.Time{day(2025, time.March, 31)}, // Monday
	})

	assert.Equal(t, 20, result.TotalDays)
	assert.True(t, result.Factor.Equal(decimal.NewFromInt(1)))
}

func TestProrationCalculator_CustomFactorBypassesDates(t *testing.T) {
	calc := NewProrationCalculator()

	half := decimal.RequireFromString("0.5")
	result := calc.Calculate(ProrationInput{
		PeriodStart:  day(2025, time.March, 21),
		PeriodEnd:    day(2025, time.April, 20),
		JoinDate:     day(2025, time.April, 15), // would prorate differently
		CustomFactor: &half,
	})

	assert.Equal(t, payroll.ProrationCustom, result.Method)
	assert.True(t, result.Factor.Equal(half))
	assert.True(t, result.IsProrated)
}

func TestProrationCalculator_CustomFactorClamped(t *testing.T) {
	calc := NewProrationCalculator()

	over := decimal.RequireFromString("1.5")
	result := calc.Calculate(ProrationInput{CustomFactor: &over})
	assert.True(t, result.Factor.Equal(decimal.NewFromInt(1)), "got %s", result.Factor)
	assert.False(t, result.IsProrated)

	negative := decimal.RequireFromString("-0.3")
	result = calc.Calculate(ProrationInput{CustomFactor: &negative})
	assert.True(t, result.Factor.IsZero(), "got %s", result.Factor)
}

func TestProrationCalculator_JoinAfterResignWindow(t *testing.T) {
	calc := NewProrationCalculator()

	// Employment window entirely outside the period.
	resign := day(2025, time.February, 28)
	result := calc.Calculate(ProrationInput{
		PeriodStart: day(2025, time.March, 21),
		PeriodEnd:   day(2025, time.April, 20),
		JoinDate:    day(2024, time.June, 1),
		ResignDate:  &resign,
		Method:      payroll.ProrationCalendarDay,
	})

	assert.True(t, result.Factor.IsZero())
	assert.True(t, result.ActualDays.IsZero())
}
