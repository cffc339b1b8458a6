package payroll

import (
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ContributionCalculator computes statutory BPJS contribution line items.
// Stateless; any instance is equivalent to any other.
type ContributionCalculator struct {
}

func NewContributionCalculator() *ContributionCalculator {
	return &ContributionCalculator{}
}

// Calculate computes employer and employee contributions from the basic
// salary. The old-age, death and work-accident schemes use the full
// salary; health and pension use min(salary, cap). A non-positive cap
// disables capping for that scheme.
func (c *ContributionCalculator) Calculate(
	basicSalary decimal.Decimal,
	flags payroll.RegistrationFlags,
	payType payroll.PayType,
	healthCap, pensionCap decimal.Decimal,
) payroll.ContributionResult {
	var result payroll.ContributionResult

	if flags.BPJSEmployment {
		result.EmployerOldAge = basicSalary.Mul(rateEmployerOldAge).Round(0)
		result.EmployeeOldAge = basicSalary.Mul(rateEmployeeOldAge).Round(0)
		result.EmployerDeath = basicSalary.Mul(rateEmployerDeath).Round(0)
		result.EmployerAccident = basicSalary.Mul(rateEmployerAccident).Round(0)
	}

	if flags.BPJSHealth {
		base := cappedBase(basicSalary, healthCap)
		result.EmployerHealth = base.Mul(rateEmployerHealth).Round(0)
		result.EmployeeHealth = base.Mul(rateEmployeeHealth).Round(0)
	}

	if flags.BPJSPension {
		base := cappedBase(basicSalary, pensionCap)
		result.EmployerPension = base.Mul(rateEmployerPension).Round(0)
		result.EmployeePension = base.Mul(rateEmployeePension).Round(0)
	}

	result.EmployerTotal = result.EmployerOldAge.
		Add(result.EmployerDeath).
		Add(result.EmployerAccident).
		Add(result.EmployerHealth).
		Add(result.EmployerPension)
	result.EmployeeTotal = result.EmployeeOldAge.
		Add(result.EmployeeHealth).
		Add(result.EmployeePension)

	result.TaxableObject = taxableObject(result, payType)

	return result
}

// taxableObject returns the contribution amounts added back into taxable
// income. When the company absorbs tax (net and gross-up pay types) both
// employer- and employee-side contributions count; when the employee
// bears tax only the employer-side death, work-accident and health
// premiums do.
func taxableObject(r payroll.ContributionResult, payType payroll.PayType) decimal.Decimal {
	switch payType {
	case payroll.PayTypeNet, payroll.PayTypeGrossUp:
		return r.EmployerTotal.Add(r.EmployeeTotal)
	default:
		return r.EmployerDeath.Add(r.EmployerAccident).Add(r.EmployerHealth)
	}
}

func cappedBase(salary, cap decimal.Decimal) decimal.Decimal {
	if cap.IsPositive() && salary.GreaterThan(cap) {
		return cap
	}
	return salary
}
