package payroll

import (
	"testing"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxCalculator_ResolveCategory(t *testing.T) {
	calc := NewTaxCalculator()

	tests := []struct {
		status   payroll.TaxpayerStatus
		category payroll.RateCategory
		ptkp     int64
	}{
		{payroll.StatusTK0, payroll.CategoryA, 54_000_000},
		{payroll.StatusTK1, payroll.CategoryA, 58_500_000},
		{payroll.StatusK0, payroll.CategoryA, 58_500_000},
		{payroll.StatusTK2, payroll.CategoryB, 63_000_000},
		{payroll.StatusTK3, payroll.CategoryB, 67_500_000},
		{payroll.StatusK1, payroll.CategoryB, 63_000_000},
		{payroll.StatusK2, payroll.CategoryB, 67_500_000},
		{payroll.StatusK3, payroll.CategoryC, 72_000_000},
	}

	for _, tt := range tests {
		category, ptkp, warning := calc.ResolveCategory(tt.status)
		assert.Equal(t, tt.category, category, "status %s", tt.status)
		assert.True(t, ptkp.Equal(d(tt.ptkp)), "status %s PTKP, got %s", tt.status, ptkp)
		assert.Empty(t, warning)
	}
}

func TestTaxCalculator_ResolveCategoryUnknownStatus(t *testing.T) {
	calc := NewTaxCalculator()

	category, ptkp, warning := calc.ResolveCategory("K/9")

	assert.Equal(t, payroll.CategoryA, category)
	assert.True(t, ptkp.Equal(d(54_000_000)))
	assert.Contains(t, warning, "K/9")
}

func TestTaxCalculator_LookupRate(t *testing.T) {
	calc := NewTaxCalculator()

	// At or below the lowest bound: zero rate.
	assert.True(t, calc.LookupRate(d(5_400_000), payroll.CategoryA).IsZero())
	assert.True(t, calc.LookupRate(decimal.Zero, payroll.CategoryA).IsZero())

	// Strictly above the bound picks up the bracket rate.
	rate := calc.LookupRate(d(5_400_001), payroll.CategoryA)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.0025")), "got %s", rate)

	rate = calc.LookupRate(d(10_000_000), payroll.CategoryA)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.02")), "got %s", rate)

	// Top bracket.
	rate = calc.LookupRate(d(2_000_000_000), payroll.CategoryA)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.34")), "got %s", rate)
}

func TestTaxCalculator_RateMonotonicallyNonDecreasing(t *testing.T) {
	calc := NewTaxCalculator()

	for _, category := range []payroll.RateCategory{payroll.CategoryA, payroll.CategoryB, payroll.CategoryC} {
		prev := decimal.Zero
		for income := int64(1_000_000); income <= 1_500_000_000; income += 7_000_000 {
			rate := calc.LookupRate(d(income), category)
			assert.True(t, rate.GreaterThanOrEqual(prev),
				"category %s: rate decreased at income %d (%s -> %s)", category, income, prev, rate)
			prev = rate
		}
	}
}

func TestTaxCalculator_MonthlyWithholding(t *testing.T) {
	calc := NewTaxCalculator()

	// 10,454,000 falls in the 2.5% bracket of category A.
	withholding, rate := calc.MonthlyWithholding(d(10_454_000), payroll.CategoryA)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.025")), "got rate %s", rate)
	assert.True(t, withholding.Equal(d(261_350)), "got %s", withholding)

	// Below the threshold nothing is withheld.
	withholding, rate = calc.MonthlyWithholding(d(4_000_000), payroll.CategoryA)
	assert.True(t, rate.IsZero())
	assert.True(t, withholding.IsZero())
}

func TestTaxCalculator_SolveGrossUpTwoPasses(t *testing.T) {
	calc := NewTaxCalculator()

	// The initial pass rates the target itself; the second pass
	// re-resolves on the initial grossed-up figure, which here crosses
	// into the next bracket.
	result := calc.SolveGrossUp(d(10_000_000), payroll.CategoryA)

	assert.True(t, result.RateInitial.Equal(decimal.RequireFromString("0.02")), "got %s", result.RateInitial)
	assert.True(t, result.GrossUpInitial.Equal(d(10_204_082)), "got %s", result.GrossUpInitial)
	assert.True(t, result.RateFinal.Equal(decimal.RequireFromString("0.0225")), "got %s", result.RateFinal)
	assert.True(t, result.GrossUpFinal.Equal(d(10_230_179)), "got %s", result.GrossUpFinal)
}

func TestTaxCalculator_SolveGrossUpStableRate(t *testing.T) {
	calc := NewTaxCalculator()

	// When the second lookup lands in the same bracket both passes agree.
	result := calc.SolveGrossUp(d(7_000_000), payroll.CategoryA)

	assert.True(t, result.RateInitial.Equal(result.RateFinal))
	assert.True(t, result.GrossUpInitial.Equal(result.GrossUpFinal))
}

func TestTaxCalculator_SolveGrossUpZeroRate(t *testing.T) {
	calc := NewTaxCalculator()

	result := calc.SolveGrossUp(d(4_000_000), payroll.CategoryA)

	assert.True(t, result.RateFinal.IsZero())
	assert.True(t, result.GrossUpFinal.Equal(d(4_000_000)))
}

func TestTaxCalculator_GrossUpNetOfTaxWithinOneRupiah(t *testing.T) {
	calc := NewTaxCalculator()

	// Rounding aside, gross-up minus its own withholding must return the
	// target.
	for _, target := range []int64{6_000_000, 10_000_000, 25_000_000, 80_000_000, 300_000_000} {
		result := calc.SolveGrossUp(d(target), payroll.CategoryA)
		netOfTax := result.GrossUpFinal.Sub(result.GrossUpFinal.Mul(result.RateFinal).Round(0))
		diff := netOfTax.Sub(d(target)).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromInt(1)),
			"target %d: net of tax %s drifts by %s", target, netOfTax, diff)
	}
}
