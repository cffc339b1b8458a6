package payroll

import (
	"testing"
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() payroll.PayrollSettings {
	return payroll.PayrollSettings{
		CutoffDay:        20,
		HealthSalaryCap:  DefaultHealthSalaryCap,
		PensionSalaryCap: DefaultPensionSalaryCap,
		AbsenceRate:      decimal.NewFromInt(1),
		UnpaidLeaveRate:  decimal.NewFromInt(1),
		WorkHoursPerDay:  8,
		ProrationMethod:  payroll.ProrationCalendarDay,
	}
}

func testContext() CalculationContext {
	return CalculationContext{
		PeriodStart: day(2025, time.March, 21),
		PeriodEnd:   day(2025, time.April, 20),
		JoinDate:    day(2024, time.January, 1),
		Settings:    testSettings(),
	}
}

func grossInput(basic int64) payroll.SalaryInput {
	return payroll.SalaryInput{
		BasicSalary:    d(basic),
		TaxpayerStatus: payroll.StatusTK0,
		PayType:        payroll.PayTypeGross,
		Registration:   allFlags(),
	}
}

func TestPayrollCalculator_GrossPayType(t *testing.T) {
	calc := NewPayrollCalculator()

	result, err := calc.Calculate(grossInput(10_000_000), testContext())
	require.NoError(t, err)

	// Taxable income 10,454,000 lands in the 2.5% bracket.
	assert.True(t, result.Tax.MonthlyWithholding.Equal(d(261_350)), "withholding, got %s", result.Tax.MonthlyWithholding)
	assert.True(t, result.TotalGross.Equal(d(10_000_000)))
	assert.True(t, result.NetSalary.Equal(d(9_338_650)), "net, got %s", result.NetSalary)
	assert.True(t, result.TakeHomePay.Equal(d(9_338_650)))
	assert.True(t, result.TotalEmployerCost.Equal(d(11_024_000)), "employer cost, got %s", result.TotalEmployerCost)
	assert.Equal(t, payroll.BorneByEmployee, result.TaxBorneBy)
	assert.Equal(t, payroll.BorneByEmployee, result.InsuranceBorneBy)
	assert.Empty(t, result.Warnings)
}

func TestPayrollCalculator_NetPayType(t *testing.T) {
	calc := NewPayrollCalculator()

	input := grossInput(10_000_000)
	input.PayType = payroll.PayTypeNet

	result, err := calc.Calculate(input, testContext())
	require.NoError(t, err)

	// The employee receives the agreed figure untouched; the company
	// absorbs tax and the employee-side contributions.
	assert.True(t, result.TotalGross.Equal(d(10_000_000)))
	assert.True(t, result.NetSalary.Equal(d(10_000_000)))
	assert.True(t, result.TakeHomePay.Equal(d(10_000_000)))
	assert.Equal(t, payroll.BorneByCompany, result.TaxBorneBy)
	assert.Equal(t, payroll.BorneByCompany, result.InsuranceBorneBy)

	// Taxable income 11,424,000: pass one rates it at 4%, the grossed-up
	// 11,900,000 re-resolves to 5%.
	assert.True(t, result.Tax.RateInitial.Equal(decimal.RequireFromString("0.04")), "got %s", result.Tax.RateInitial)
	assert.True(t, result.Tax.RateFinal.Equal(decimal.RequireFromString("0.05")), "got %s", result.Tax.RateFinal)
	assert.True(t, result.Tax.GrossUpFinal.Equal(d(12_025_263)), "got %s", result.Tax.GrossUpFinal)
	assert.True(t, result.TotalEmployerCost.Equal(d(13_049_263)), "employer cost, got %s", result.TotalEmployerCost)
}

func TestPayrollCalculator_GrossUpPayType(t *testing.T) {
	calc := NewPayrollCalculator()

	input := grossInput(10_000_000)
	input.PayType = payroll.PayTypeGrossUp

	result, err := calc.Calculate(input, testContext())
	require.NoError(t, err)

	// Tax allowance added to gross, then withheld again.
	assert.True(t, result.TotalGross.Equal(d(10_000_000).Add(result.Tax.MonthlyWithholding)))
	assert.True(t, result.NetSalary.Equal(d(10_000_000).Sub(result.Contributions.EmployeeTotal)))
	assert.Equal(t, payroll.BorneByCompany, result.TaxBorneBy)
	assert.Equal(t, payroll.BorneByEmployee, result.InsuranceBorneBy)
}

func TestPayrollCalculator_ProratedSalaryFeedsEverything(t *testing.T) {
	calc := NewPayrollCalculator()

	cctx := testContext()
	cctx.JoinDate = day(2025, time.April, 1) // 20 of 31 days

	result, err := calc.Calculate(grossInput(10_000_000), cctx)
	require.NoError(t, err)

	expectedBasic := d(10_000_000).Mul(d(20).Div(d(31))).Round(0)
	assert.True(t, result.ProratedBasicSalary.Equal(expectedBasic), "got %s", result.ProratedBasicSalary)

	// Contributions run on the prorated figure, not the contractual one.
	expectedOldAge := expectedBasic.Mul(decimal.RequireFromString("0.037")).Round(0)
	assert.True(t, result.Contributions.EmployerOldAge.Equal(expectedOldAge), "got %s", result.Contributions.EmployerOldAge)
}

func TestPayrollCalculator_AllowancesProratedIndividually(t *testing.T) {
	calc := NewPayrollCalculator()

	input := grossInput(10_000_000)
	input.Allowances = payroll.AllowanceSet{
		Transport: d(500_000),
		Meal:      d(300_000),
	}
	input.OvertimePay = d(200_000)

	cctx := testContext()
	cctx.JoinDate = day(2025, time.April, 1)

	result, err := calc.Calculate(input, cctx)
	require.NoError(t, err)

	factor := d(20).Div(d(31))
	assert.True(t, result.ProratedAllowances.Transport.Equal(d(500_000).Mul(factor).Round(0)))
	assert.True(t, result.ProratedAllowances.Meal.Equal(d(300_000).Mul(factor).Round(0)))
	// Overtime is period-bound and never prorated.
	assert.True(t, result.OvertimePay.Equal(d(200_000)))
}

func TestPayrollCalculator_UnknownStatusWarnsAndFallsBack(t *testing.T) {
	calc := NewPayrollCalculator()

	input := grossInput(10_000_000)
	input.TaxpayerStatus = "K/7"

	result, err := calc.Calculate(input, testContext())
	require.NoError(t, err)

	assert.Equal(t, payroll.CategoryA, result.Tax.Category)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "K/7")
}

func TestPayrollCalculator_ValidationRejects(t *testing.T) {
	calc := NewPayrollCalculator()

	tests := []struct {
		name   string
		mutate func(*payroll.SalaryInput, *CalculationContext)
	}{
		{"negative basic salary", func(in *payroll.SalaryInput, _ *CalculationContext) {
			in.BasicSalary = d(-1)
		}},
		{"negative allowance", func(in *payroll.SalaryInput, _ *CalculationContext) {
			in.Allowances.Meal = d(-1)
		}},
		{"unknown pay type", func(in *payroll.SalaryInput, _ *CalculationContext) {
			in.PayType = "weekly"
		}},
		{"negative attendance", func(_ *payroll.SalaryInput, cctx *CalculationContext) {
			cctx.Attendance.AbsentDays = -1
		}},
		{"inverted period", func(_ *payroll.SalaryInput, cctx *CalculationContext) {
			cctx.PeriodStart, cctx.PeriodEnd = cctx.PeriodEnd, cctx.PeriodStart
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := grossInput(10_000_000)
			cctx := testContext()
			tt.mutate(&input, &cctx)

			_, err := calc.Calculate(input, cctx)
			assert.ErrorIs(t, err, payroll.ErrInvalidInput)
		})
	}
}

func TestPayrollCalculator_DeductionsReduceTakeHomeOnly(t *testing.T) {
	calc := NewPayrollCalculator()

	cctx := testContext()
	cctx.Adjustments = []payroll.AdjustmentRecord{
		{ID: "loan-1", Type: payroll.DeductionLoan, Amount: d(300_000), EffectiveStart: day(2025, time.April, 1)},
	}

	result, err := calc.Calculate(grossInput(10_000_000), cctx)
	require.NoError(t, err)

	assert.True(t, result.Deductions.Total.Equal(d(300_000)))
	assert.True(t, result.TakeHomePay.Equal(result.NetSalary.Sub(d(300_000))))
}

func TestSolveBasicSalaryFromTakeHome_Converges(t *testing.T) {
	calc := NewPayrollCalculator()

	basic, implied, iterations, converged := calc.SolveBasicSalaryFromTakeHome(
		d(9_000_000), payroll.StatusTK0, payroll.RegistrationFlags{}, testSettings())

	assert.True(t, converged)
	assert.LessOrEqual(t, iterations, 10)
	assert.True(t, implied.Sub(d(9_000_000)).Abs().LessThanOrEqual(decimal.NewFromInt(1)),
		"implied %s drifts from target", implied)
	assert.True(t, basic.GreaterThan(d(9_000_000)), "basic %s must exceed the take-home", basic)
}

func TestSolveBasicSalaryFromTakeHome_WithContributions(t *testing.T) {
	calc := NewPayrollCalculator()

	basic, implied, iterations, converged := calc.SolveBasicSalaryFromTakeHome(
		d(9_000_000), payroll.StatusK1, allFlags(), testSettings())

	assert.LessOrEqual(t, iterations, 10)
	if converged {
		assert.True(t, implied.Sub(d(9_000_000)).Abs().LessThanOrEqual(decimal.NewFromInt(1)))
	}

	// Round-trip: the solved basic must yield the implied take-home.
	contributions := NewContributionCalculator().Calculate(basic, allFlags(), payroll.PayTypeGross,
		DefaultHealthSalaryCap, DefaultPensionSalaryCap)
	category, _, _ := NewTaxCalculator().ResolveCategory(payroll.StatusK1)
	withholding, _ := NewTaxCalculator().MonthlyWithholding(basic.Add(contributions.TaxableObject), category)
	roundTrip := basic.Sub(withholding).Sub(contributions.EmployeeTotal)
	assert.True(t, roundTrip.Sub(implied).Abs().LessThanOrEqual(decimal.NewFromInt(1)),
		"round trip %s vs implied %s", roundTrip, implied)
}

func TestSolveBasicSalaryFromTakeHome_BelowTaxThreshold(t *testing.T) {
	calc := NewPayrollCalculator()

	// No tax, no contributions: the salary is the take-home.
	basic, implied, _, converged := calc.SolveBasicSalaryFromTakeHome(
		d(4_000_000), payroll.StatusTK0, payroll.RegistrationFlags{}, testSettings())

	assert.True(t, converged)
	assert.True(t, basic.Equal(d(4_000_000)), "got %s", basic)
	assert.True(t, implied.Equal(d(4_000_000)))
}

func TestPayrollCalculator_WarnsWhenSchemeCapUnset(t *testing.T) {
	calc := NewPayrollCalculator()

	cctx := testContext()
	cctx.Settings.HealthSalaryCap = decimal.Zero
	cctx.Settings.PensionSalaryCap = decimal.Zero

	result, err := calc.Calculate(grossInput(15_000_000), cctx)
	require.NoError(t, err)

	// Capping is disabled, so both schemes run on the full salary.
	assert.True(t, result.Contributions.EmployeeHealth.Equal(d(150_000)), "got %s", result.Contributions.EmployeeHealth)
	assert.True(t, result.Contributions.EmployeePension.Equal(d(150_000)), "got %s", result.Contributions.EmployeePension)
	assert.Contains(t, result.Warnings, "health salary cap is not configured; contribution computed on the uncapped salary")
	assert.Contains(t, result.Warnings, "pension salary cap is not configured; contribution computed on the uncapped salary")

	// An unregistered scheme never warns about its cap.
	input := grossInput(15_000_000)
	input.Registration = payroll.RegistrationFlags{BPJSEmployment: true}
	result, err = calc.Calculate(input, cctx)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestPayrollCalculator_DeductionDailyRateIsContractual(t *testing.T) {
	calc := NewPayrollCalculator()

	cctx := testContext()
	cctx.JoinDate = day(2025, time.April, 1) // salary prorated to 20 of 31 days
	cctx.Attendance.AbsentDays = 2

	result, err := calc.Calculate(grossInput(10_000_000), cctx)
	require.NoError(t, err)

	// 21 working days Mar 21 - Apr 20. An absent day costs the full
	// contractual daily rate even while the salary itself is prorated.
	expected := d(10_000_000).Div(d(21)).Mul(d(2)).Round(0)
	assert.True(t, result.Deductions.Total.Equal(expected), "got %s", result.Deductions.Total)
}
