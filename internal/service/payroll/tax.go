package payroll

import (
	"fmt"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// TaxCalculator resolves withholding-rate categories, looks up TER rates
// and performs the two-pass gross-up derivation. Stateless.
type TaxCalculator struct {
}

func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{}
}

// ResolveCategory maps a taxpayer status to its TER category and annual
// PTKP amount. Unknown statuses fall back to category A with the TK/0
// threshold (the lowest-exemption table) and return a warning so the
// caller can surface the substitution.
func (c *TaxCalculator) ResolveCategory(status payroll.TaxpayerStatus) (payroll.RateCategory, decimal.Decimal, string) {
	category, ok := categoryByStatus[status]
	if !ok {
		warning := fmt.Sprintf("unknown taxpayer status %q, falling back to category A (TK/0 threshold)", status)
		return payroll.CategoryA, ptkpByStatus[payroll.StatusTK0], warning
	}
	return category, ptkpByStatus[status], ""
}

// LookupRate walks the category's bracket table from the highest bound
// down and returns the rate of the first bound the income exceeds.
// Income at or below the lowest bound resolves to a zero rate.
func (c *TaxCalculator) LookupRate(monthlyIncome decimal.Decimal, category payroll.RateCategory) decimal.Decimal {
	table := terTables[category]
	for i := len(table) - 1; i >= 0; i-- {
		if monthlyIncome.GreaterThan(table[i].Above) {
			return table[i].Rate
		}
	}
	return decimal.Zero
}

// MonthlyWithholding applies the looked-up rate to the income and rounds
// to whole rupiah.
func (c *TaxCalculator) MonthlyWithholding(monthlyIncome decimal.Decimal, category payroll.RateCategory) (decimal.Decimal, decimal.Decimal) {
	rate := c.LookupRate(monthlyIncome, category)
	return monthlyIncome.Mul(rate).Round(0), rate
}

// GrossUpResult carries both passes of the gross-up derivation.
type GrossUpResult struct {
	GrossUpInitial decimal.Decimal
	RateInitial    decimal.Decimal
	GrossUpFinal   decimal.Decimal
	RateFinal      decimal.Decimal
}

// SolveGrossUp derives the grossed-up figure for a target post-tax
// income. The rate depends on the gross and the gross on the rate, so
// the method runs exactly two bracket passes: the first looks up a rate
// on the target itself, the second re-resolves the rate on the initial
// grossed-up figure. This is the legally specified approximation, not a
// convergence loop; it is never retried.
func (c *TaxCalculator) SolveGrossUp(target decimal.Decimal, category payroll.RateCategory) GrossUpResult {
	one := decimal.NewFromInt(1)

	rateInitial := c.LookupRate(target, category)
	grossUpInitial := target.Div(one.Sub(rateInitial)).Round(0)

	rateFinal := c.LookupRate(grossUpInitial, category)
	grossUpFinal := target.Div(one.Sub(rateFinal)).Round(0)

	return GrossUpResult{
		GrossUpInitial: grossUpInitial,
		RateInitial:    rateInitial,
		GrossUpFinal:   grossUpFinal,
		RateFinal:      rateFinal,
	}
}
