package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowanceSetTotalAndProrate(t *testing.T) {
	set := AllowanceSet{
		Transport: decimal.NewFromInt(500_000),
		Meal:      decimal.NewFromInt(300_000),
		Position:  decimal.NewFromInt(1_000_000),
	}

	assert.True(t, set.Total().Equal(decimal.NewFromInt(1_800_000)))

	factor := decimal.RequireFromString("0.645161290322581") // 20/31
	prorated := set.Prorate(factor)

	// Each category rounds independently to whole rupiah.
	assert.True(t, prorated.Transport.Equal(decimal.NewFromInt(322_581)), "got %s", prorated.Transport)
	assert.True(t, prorated.Meal.Equal(decimal.NewFromInt(193_548)), "got %s", prorated.Meal)
	assert.True(t, prorated.Position.Equal(decimal.NewFromInt(645_161)), "got %s", prorated.Position)
	assert.True(t, prorated.Housing.IsZero())
}

func TestPayrollSettingsCutoffForYear(t *testing.T) {
	settings := PayrollSettings{
		CutoffDay:          20,
		CutoffDayOverrides: map[int]int{2023: 25, 2024: 15},
	}

	assert.Equal(t, 25, settings.CutoffForYear(2023))
	assert.Equal(t, 15, settings.CutoffForYear(2024))
	assert.Equal(t, 20, settings.CutoffForYear(2025))
}

func TestParsePeriod(t *testing.T) {
	parsed, err := ParsePeriod("2025-04")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, 4, int(parsed.Month()))

	_, err = ParsePeriod("2025-4")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ParsePeriod("")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestUpdatePayrollSettingsRequestValidate(t *testing.T) {
	valid := UpdatePayrollSettingsRequest{}
	assert.NoError(t, valid.Validate())

	badDay := 31
	req := UpdatePayrollSettingsRequest{CutoffDay: &badDay}
	assert.Error(t, req.Validate())

	negative := decimal.NewFromInt(-1)
	req = UpdatePayrollSettingsRequest{AbsenceRate: &negative}
	assert.Error(t, req.Validate())

	badMethod := ProrationMethod("fortnightly")
	req = UpdatePayrollSettingsRequest{ProrationMethod: &badMethod}
	assert.Error(t, req.Validate())
}

func TestCreateAdjustmentRequestValidate(t *testing.T) {
	valid := CreateAdjustmentRequest{
		EmployeeID:     "emp-1",
		Type:           "loan",
		Amount:         decimal.NewFromInt(100_000),
		EffectiveStart: "2025-04-01",
	}
	assert.NoError(t, valid.Validate())

	// Attendance-derived types cannot be created as adjustments.
	invalid := valid
	invalid.Type = "absence"
	assert.Error(t, invalid.Validate())

	invalid = valid
	invalid.EffectiveStart = "01-04-2025"
	assert.Error(t, invalid.Validate())
}
