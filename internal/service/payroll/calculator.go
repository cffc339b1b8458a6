package payroll

import (
	"fmt"
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculationContext - the externally-resolved snapshot a single
// employee-period calculation runs against. The calculator never fetches
// anything itself.
type CalculationContext struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Holidays    []time.Time

	JoinDate   time.Time
	ResignDate *time.Time

	Attendance  payroll.AttendanceSummary
	Adjustments []payroll.AdjustmentRecord
	Settings    payroll.PayrollSettings

	CustomProrationFactor *decimal.Decimal
}

// PayrollCalculator sequences proration, contributions, tax and
// deductions into one immutable result. Purely computational: no I/O, no
// shared state, safe to use from any number of goroutines.
type PayrollCalculator struct {
	contribution *ContributionCalculator
	tax          *TaxCalculator
	proration    *ProrationCalculator
	deduction    *DeductionCalculator
}

func NewPayrollCalculator() *PayrollCalculator {
	return &PayrollCalculator{
		contribution: NewContributionCalculator(),
		tax:          NewTaxCalculator(),
		proration:    NewProrationCalculator(),
		deduction:    NewDeductionCalculator(),
	}
}

// Calculate runs the full sequence for one employee-period:
// proration, prorated salary components, contributions, tax
// (policy-dependent path), deductions, final figure assembly.
func (c *PayrollCalculator) Calculate(input payroll.SalaryInput, cctx CalculationContext) (payroll.PayrollCalculationResult, error) {
	if err := validateInput(input, cctx); err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	var warnings []string

	// (1) proration
	proration := c.proration.Calculate(ProrationInput{
		PeriodStart:     cctx.PeriodStart,
		PeriodEnd:       cctx.PeriodEnd,
		JoinDate:        cctx.JoinDate,
		ResignDate:      cctx.ResignDate,
		UnpaidLeaveDays: cctx.Attendance.UnpaidLeaveDays,
		Method:          cctx.Settings.ProrationMethod,
		Holidays:        cctx.Holidays,
		CustomFactor:    cctx.CustomProrationFactor,
	})

	// (2) prorate basic salary and each allowance independently;
	// overtime is already period-bound.
	proratedBasic := input.BasicSalary.Mul(proration.Factor).Round(0)
	proratedAllowances := input.Allowances.Prorate(proration.Factor)

	// (3) contributions on the prorated basic salary
	contributions := c.contribution.Calculate(
		proratedBasic,
		input.Registration,
		input.PayType,
		cctx.Settings.HealthSalaryCap,
		cctx.Settings.PensionSalaryCap,
	)
	if input.Registration.BPJSHealth && !cctx.Settings.HealthSalaryCap.IsPositive() {
		warnings = append(warnings, "health salary cap is not configured; contribution computed on the uncapped salary")
	}
	if input.Registration.BPJSPension && !cctx.Settings.PensionSalaryCap.IsPositive() {
		warnings = append(warnings, "pension salary cap is not configured; contribution computed on the uncapped salary")
	}

	// (4) tax, policy-dependent
	category, ptkp, warning := c.tax.ResolveCategory(input.TaxpayerStatus)
	if warning != "" {
		warnings = append(warnings, warning)
	}

	baseCompensation := proratedBasic.Add(proratedAllowances.Total()).Add(input.OvertimePay)
	taxableIncome := baseCompensation.Add(contributions.TaxableObject)

	tax := payroll.TaxResult{Category: category, PTKPAnnual: ptkp}
	switch input.PayType {
	case payroll.PayTypeNet, payroll.PayTypeGrossUp:
		solved := c.tax.SolveGrossUp(taxableIncome, category)
		tax.RateInitial = solved.RateInitial
		tax.RateFinal = solved.RateFinal
		tax.GrossUpBase = solved.GrossUpInitial
		tax.GrossUpFinal = solved.GrossUpFinal
		tax.MonthlyWithholding = solved.GrossUpFinal.Mul(solved.RateFinal).Round(0)
	default:
		withholding, rate := c.tax.MonthlyWithholding(taxableIncome, category)
		tax.RateInitial = rate
		tax.RateFinal = rate
		tax.MonthlyWithholding = withholding
	}

	// (5) deductions, independent of tax and contributions. The daily
	// rate comes from the contractual basic salary: a mid-period joiner
	// who skips a day loses a full day's pay, not a prorated one.
	workingDaysInPeriod := PeriodWorkingDays(cctx.PeriodStart, cctx.PeriodEnd, cctx.Holidays)
	deductions := c.deduction.Calculate(DeductionInput{
		BasicSalary:         input.BasicSalary,
		WorkingDaysInPeriod: workingDaysInPeriod,
		PeriodStart:         cctx.PeriodStart,
		PeriodEnd:           cctx.PeriodEnd,
		Attendance:          cctx.Attendance,
		Adjustments:         cctx.Adjustments,
		Settings:            cctx.Settings,
	})

	// (6) final figures
	result := payroll.PayrollCalculationResult{
		PayType:             input.PayType,
		TaxpayerStatus:      input.TaxpayerStatus,
		BasicSalary:         input.BasicSalary,
		ProratedBasicSalary: proratedBasic,
		Allowances:          input.Allowances,
		ProratedAllowances:  proratedAllowances,
		OvertimePay:         input.OvertimePay,
		Proration:           proration,
		Contributions:       contributions,
		Tax:                 tax,
		Deductions:          deductions,
		Warnings:            warnings,
		Status:              payroll.PayrollStatusDraft,
	}

	switch input.PayType {
	case payroll.PayTypeNet:
		// Company absorbs tax and the employee-side contributions; the
		// employee receives the agreed compensation untouched.
		result.TotalGross = baseCompensation
		result.NetSalary = baseCompensation
		result.TakeHomePay = baseCompensation.Sub(deductions.Total)
		result.TotalEmployerCost = tax.GrossUpFinal.Add(contributions.EmployerTotal)
		result.TaxBorneBy = payroll.BorneByCompany
		result.InsuranceBorneBy = payroll.BorneByCompany
	case payroll.PayTypeGrossUp:
		// Tax allowance equal to the withholding is added to gross, then
		// withheld again, leaving the agreed figure net of tax.
		result.TotalGross = baseCompensation.Add(tax.MonthlyWithholding)
		result.NetSalary = baseCompensation.Sub(contributions.EmployeeTotal)
		result.TakeHomePay = result.NetSalary.Sub(deductions.Total)
		result.TotalEmployerCost = tax.GrossUpFinal.Add(contributions.EmployerTotal)
		result.TaxBorneBy = payroll.BorneByCompany
		result.InsuranceBorneBy = payroll.BorneByEmployee
	default:
		result.TotalGross = baseCompensation
		result.NetSalary = baseCompensation.Sub(tax.MonthlyWithholding).Sub(contributions.EmployeeTotal)
		result.TakeHomePay = result.NetSalary.Sub(deductions.Total)
		result.TotalEmployerCost = baseCompensation.Add(contributions.EmployerTotal)
		result.TaxBorneBy = payroll.BorneByEmployee
		result.InsuranceBorneBy = payroll.BorneByEmployee
	}

	return result, nil
}

// SolveBasicSalaryFromTakeHome derives the basic salary that yields a
// desired take-home figure under the gross pay type, iterating up to ten
// passes and accepting convergence within one rupiah. Exhausting the
// budget returns the best approximation found; it never errors.
func (c *PayrollCalculator) SolveBasicSalaryFromTakeHome(
	desired decimal.Decimal,
	status payroll.TaxpayerStatus,
	flags payroll.RegistrationFlags,
	settings payroll.PayrollSettings,
) (basic decimal.Decimal, implied decimal.Decimal, iterations int, converged bool) {
	const maxIterations = 10
	tolerance := decimal.NewFromInt(1)

	takeHomeFor := func(guess decimal.Decimal) decimal.Decimal {
		contributions := c.contribution.Calculate(guess, flags, payroll.PayTypeGross, settings.HealthSalaryCap, settings.PensionSalaryCap)
		category, _, _ := c.tax.ResolveCategory(status)
		withholding, _ := c.tax.MonthlyWithholding(guess.Add(contributions.TaxableObject), category)
		return guess.Sub(withholding).Sub(contributions.EmployeeTotal)
	}

	guess := desired
	best := guess
	bestImplied := takeHomeFor(guess)
	bestDelta := desired.Sub(bestImplied).Abs()

	for i := 1; i <= maxIterations; i++ {
		iterations = i
		implied = takeHomeFor(guess)
		delta := desired.Sub(implied)

		if delta.Abs().LessThanOrEqual(tolerance) {
			return guess.Round(0), implied, iterations, true
		}
		if delta.Abs().LessThan(bestDelta) {
			best = guess
			bestImplied = implied
			bestDelta = delta.Abs()
		}

		guess = guess.Add(delta)
	}

	return best.Round(0), bestImplied, iterations, false
}

func validateInput(input payroll.SalaryInput, cctx CalculationContext) error {
	switch {
	case input.BasicSalary.IsNegative():
		return fmt.Errorf("%w: basic salary is negative", payroll.ErrInvalidInput)
	case input.OvertimePay.IsNegative():
		return fmt.Errorf("%w: overtime pay is negative", payroll.ErrInvalidInput)
	case input.Allowances.Transport.IsNegative(),
		input.Allowances.Meal.IsNegative(),
		input.Allowances.Position.IsNegative(),
		input.Allowances.Housing.IsNegative(),
		input.Allowances.Communication.IsNegative(),
		input.Allowances.Other.IsNegative():
		return fmt.Errorf("%w: allowance amount is negative", payroll.ErrInvalidInput)
	case cctx.Attendance.AbsentDays < 0,
		cctx.Attendance.LateDays < 0,
		cctx.Attendance.LateMinutes < 0,
		cctx.Attendance.UnpaidLeaveDays < 0:
		return fmt.Errorf("%w: attendance counts must be non-negative", payroll.ErrInvalidInput)
	case cctx.PeriodEnd.Before(cctx.PeriodStart):
		return fmt.Errorf("%w: period end before period start", payroll.ErrInvalidInput)
	}

	switch input.PayType {
	case payroll.PayTypeGross, payroll.PayTypeNet, payroll.PayTypeGrossUp:
	default:
		return fmt.Errorf("%w: unknown pay type %q", payroll.ErrInvalidInput, input.PayType)
	}

	return nil
}
