package payroll

import (
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Statutory data. These values encode legal thresholds (PMK 168/2023 TER
// tables, BPJS contribution percentages, PTKP amounts) and are not
// company-configurable; only the two salary caps may be overridden
// through payroll settings.

var (
	rateEmployerOldAge   = decimal.RequireFromString("0.037")
	rateEmployeeOldAge   = decimal.RequireFromString("0.02")
	rateEmployerDeath    = decimal.RequireFromString("0.003")
	rateEmployerAccident = decimal.RequireFromString("0.0024")
	rateEmployerHealth   = decimal.RequireFromString("0.04")
	rateEmployeeHealth   = decimal.RequireFromString("0.01")
	rateEmployerPension  = decimal.RequireFromString("0.02")
	rateEmployeePension  = decimal.RequireFromString("0.01")
)

// Default salary caps for the capped schemes, used when company settings
// carry no override.
var (
	DefaultHealthSalaryCap  = decimal.NewFromInt(12_000_000)
	DefaultPensionSalaryCap = decimal.NewFromInt(10_042_300)
)

// categoryByStatus groups taxpayer statuses into the three TER categories.
var categoryByStatus = map[payroll.TaxpayerStatus]payroll.RateCategory{
	payroll.StatusTK0: payroll.CategoryA,
	payroll.StatusTK1: payroll.CategoryA,
	payroll.StatusK0:  payroll.CategoryA,
	payroll.StatusTK2: payroll.CategoryB,
	payroll.StatusTK3: payroll.CategoryB,
	payroll.StatusK1:  payroll.CategoryB,
	payroll.StatusK2:  payroll.CategoryB,
	payroll.StatusK3:  payroll.CategoryC,
}

// ptkpByStatus holds annual tax-exempt income thresholds in rupiah.
var ptkpByStatus = map[payroll.TaxpayerStatus]decimal.Decimal{
	payroll.StatusTK0: decimal.NewFromInt(54_000_000),
	payroll.StatusTK1: decimal.NewFromInt(58_500_000),
	payroll.StatusTK2: decimal.NewFromInt(63_000_000),
	payroll.StatusTK3: decimal.NewFromInt(67_500_000),
	payroll.StatusK0:  decimal.NewFromInt(58_500_000),
	payroll.StatusK1:  decimal.NewFromInt(63_000_000),
	payroll.StatusK2:  decimal.NewFromInt(67_500_000),
	payroll.StatusK3:  decimal.NewFromInt(72_000_000),
}

// RateBracket - one TER bracket: the rate applies to monthly income
// strictly above the bound, up to the next bracket's bound.
type RateBracket struct {
	Above decimal.Decimal
	Rate  decimal.Decimal
}

func br(above int64, rate string) RateBracket {
	return RateBracket{
		Above: decimal.NewFromInt(above),
		Rate:  decimal.RequireFromString(rate),
	}
}

// terTableA - category A (TK/0, TK/1, K/0). Income at or below the first
// bound carries a zero rate.
var terTableA = []RateBracket{
	br(5_400_000, "0.0025"),
	br(5_650_000, "0.005"),
	br(5_950_000, "0.0075"),
	br(6_300_000, "0.01"),
	br(6_750_000, "0.0125"),
	br(7_500_000, "0.015"),
	br(8_550_000, "0.0175"),
	br(9_650_000, "0.02"),
	br(10_050_000, "0.0225"),
	br(10_350_000, "0.025"),
	br(10_700_000, "0.03"),
	br(11_050_000, "0.035"),
	br(11_600_000, "0.04"),
	br(12_500_000, "0.05"),
	br(13_750_000, "0.06"),
	br(15_100_000, "0.07"),
	br(16_950_000, "0.08"),
	br(19_750_000, "0.09"),
	br(24_150_000, "0.10"),
	br(26_450_000, "0.11"),
	br(28_000_000, "0.12"),
	br(30_050_000, "0.13"),
	br(32_400_000, "0.14"),
	br(35_400_000, "0.15"),
	br(39_100_000, "0.16"),
	br(43_850_000, "0.17"),
	br(47_800_000, "0.18"),
	br(51_400_000, "0.19"),
	br(56_300_000, "0.20"),
	br(62_200_000, "0.21"),
	br(68_600_000, "0.22"),
	br(77_500_000, "0.23"),
	br(89_000_000, "0.24"),
	br(103_000_000, "0.25"),
	br(125_000_000, "0.26"),
	br(157_000_000, "0.27"),
	br(206_000_000, "0.28"),
	br(337_000_000, "0.29"),
	br(454_000_000, "0.30"),
	br(550_000_000, "0.31"),
	br(695_000_000, "0.32"),
	br(910_000_000, "0.33"),
	br(1_400_000_000, "0.34"),
}

// terTableB - category B (TK/2, TK/3, K/1, K/2)
var terTableB = []RateBracket{
	br(6_200_000, "0.0025"),
	br(6_500_000, "0.005"),
	br(6_850_000, "0.0075"),
	br(7_300_000, "0.01"),
	br(9_200_000, "0.015"),
	br(10_750_000, "0.02"),
	br(11_250_000, "0.025"),
	br(11_600_000, "0.03"),
	br(12_600_000, "0.04"),
	br(13_600_000, "0.05"),
	br(14_950_000, "0.06"),
	br(16_400_000, "0.07"),
	br(18_450_000, "0.08"),
	br(21_850_000, "0.09"),
	br(26_000_000, "0.10"),
	br(27_700_000, "0.11"),
	br(29_350_000, "0.12"),
	br(31_450_000, "0.13"),
	br(33_950_000, "0.14"),
	br(37_100_000, "0.15"),
	br(41_100_000, "0.16"),
	br(45_800_000, "0.17"),
	br(49_500_000, "0.18"),
	br(53_800_000, "0.19"),
	br(58_500_000, "0.20"),
	br(64_000_000, "0.21"),
	br(71_000_000, "0.22"),
	br(80_000_000, "0.23"),
	br(93_000_000, "0.24"),
	br(109_000_000, "0.25"),
	br(129_000_000, "0.26"),
	br(163_000_000, "0.27"),
	br(211_000_000, "0.28"),
	br(374_000_000, "0.29"),
	br(459_000_000, "0.30"),
	br(555_000_000, "0.31"),
	br(704_000_000, "0.32"),
	br(957_000_000, "0.33"),
	br(1_405_000_000, "0.34"),
}

// terTableC - category C (K/3)
var terTableC = []RateBracket{
	br(6_600_000, "0.0025"),
	br(6_950_000, "0.005"),
	br(7_350_000, "0.0075"),
	br(7_800_000, "0.01"),
	br(8_850_000, "0.0125"),
	br(9_800_000, "0.015"),
	br(10_950_000, "0.0175"),
	br(11_200_000, "0.02"),
	br(12_050_000, "0.03"),
	br(12_950_000, "0.04"),
	br(14_150_000, "0.05"),
	br(15_550_000, "0.06"),
	br(17_050_000, "0.07"),
	br(19_500_000, "0.08"),
	br(22_700_000, "0.09"),
	br(26_600_000, "0.10"),
	br(28_100_000, "0.11"),
	br(30_100_000, "0.12"),
	br(32_600_000, "0.13"),
	br(35_400_000, "0.14"),
	br(38_900_000, "0.15"),
	br(43_000_000, "0.16"),
	br(47_400_000, "0.17"),
	br(51_200_000, "0.18"),
	br(55_800_000, "0.19"),
	br(60_400_000, "0.20"),
	br(66_700_000, "0.21"),
	br(74_500_000, "0.22"),
	br(83_200_000, "0.23"),
	br(95_600_000, "0.24"),
	br(110_000_000, "0.25"),
	br(134_000_000, "0.26"),
	br(169_000_000, "0.27"),
	br(221_000_000, "0.28"),
	br(390_000_000, "0.29"),
	br(463_000_000, "0.30"),
	br(561_000_000, "0.31"),
	br(709_000_000, "0.32"),
	br(965_000_000, "0.33"),
	br(1_419_000_000, "0.34"),
}

var terTables = map[payroll.RateCategory][]RateBracket{
	payroll.CategoryA: terTableA,
	payroll.CategoryB: terTableB,
	payroll.CategoryC: terTableC,
}
