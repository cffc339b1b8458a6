package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType enum - who bears income tax and how gross is derived
type PayType string

const (
	// PayTypeGross - employee bears tax, withheld from gross salary
	PayTypeGross PayType = "gross"
	// PayTypeNet - company absorbs tax and employee-side contributions;
	// the agreed salary is the net figure
	PayTypeNet PayType = "net"
	// PayTypeGrossUp - company pays a tax allowance derived so the employee
	// receives the agreed figure after withholding
	PayTypeGrossUp PayType = "gross_up"
)

// TaxpayerStatus - PTKP status code (marital status / dependent count)
type TaxpayerStatus string

const (
	StatusTK0 TaxpayerStatus = "TK/0"
	StatusTK1 TaxpayerStatus = "TK/1"
	StatusTK2 TaxpayerStatus = "TK/2"
	StatusTK3 TaxpayerStatus = "TK/3"
	StatusK0  TaxpayerStatus = "K/0"
	StatusK1  TaxpayerStatus = "K/1"
	StatusK2  TaxpayerStatus = "K/2"
	StatusK3  TaxpayerStatus = "K/3"
)

// RateCategory - TER withholding table group (golongan)
type RateCategory string

const (
	CategoryA RateCategory = "A"
	CategoryB RateCategory = "B"
	CategoryC RateCategory = "C"
)

// RegistrationFlags - per-scheme BPJS enrollment.
// Employment covers the JHT, JKM and JKK schemes together; Health and
// Pension are registered separately.
type RegistrationFlags struct {
	BPJSHealth     bool `json:"bpjs_health"`
	BPJSEmployment bool `json:"bpjs_employment"`
	BPJSPension    bool `json:"bpjs_pension"`
}

// AllowanceSet - itemized monthly allowances by category
type AllowanceSet struct {
	Transport     decimal.Decimal `json:"transport"`
	Meal          decimal.Decimal `json:"meal"`
	Position      decimal.Decimal `json:"position"`
	Housing       decimal.Decimal `json:"housing"`
	Communication decimal.Decimal `json:"communication"`
	Other         decimal.Decimal `json:"other"`
}

func (a AllowanceSet) Total() decimal.Decimal {
	return a.Transport.Add(a.Meal).Add(a.Position).Add(a.Housing).Add(a.Communication).Add(a.Other)
}

// Prorate scales each allowance independently, rounding each to whole rupiah.
func (a AllowanceSet) Prorate(factor decimal.Decimal) AllowanceSet {
	return AllowanceSet{
		Transport:     a.Transport.Mul(factor).Round(0),
		Meal:          a.Meal.Mul(factor).Round(0),
		Position:      a.Position.Mul(factor).Round(0),
		Housing:       a.Housing.Mul(factor).Round(0),
		Communication: a.Communication.Mul(factor).Round(0),
		Other:         a.Other.Mul(factor).Round(0),
	}
}

// SalaryInput - immutable per-calculation salary facts, supplied by the caller
type SalaryInput struct {
	BasicSalary    decimal.Decimal   `json:"basic_salary"`
	Allowances     AllowanceSet      `json:"allowances"`
	OvertimePay    decimal.Decimal   `json:"overtime_pay"`
	TaxpayerStatus TaxpayerStatus    `json:"taxpayer_status"`
	PayType        PayType           `json:"pay_type"`
	Registration   RegistrationFlags `json:"registration"`
}

// ContributionResult - statutory contribution line items, whole rupiah.
// TaxableObject is the subset of contributions added back into taxable
// income; which lines it includes depends on the pay type.
type ContributionResult struct {
	EmployerOldAge   decimal.Decimal `json:"employer_old_age"`
	EmployerDeath    decimal.Decimal `json:"employer_death"`
	EmployerAccident decimal.Decimal `json:"employer_accident"`
	EmployerHealth   decimal.Decimal `json:"employer_health"`
	EmployerPension  decimal.Decimal `json:"employer_pension"`
	TaxableObject    decimal.Decimal `json:"taxable_object"`

	EmployeeOldAge  decimal.Decimal `json:"employee_old_age"`
	EmployeeHealth  decimal.Decimal `json:"employee_health"`
	EmployeePension decimal.Decimal `json:"employee_pension"`

	EmployerTotal decimal.Decimal `json:"employer_total"`
	EmployeeTotal decimal.Decimal `json:"employee_total"`
}

// TaxResult - resolved monthly withholding figures
type TaxResult struct {
	Category    RateCategory    `json:"category"`
	RateInitial decimal.Decimal `json:"rate_initial"`
	RateFinal   decimal.Decimal `json:"rate_final"`
	// GrossUpBase and GrossUpFinal stay zero for the gross pay type,
	// where no gross-up pass runs.
	GrossUpBase        decimal.Decimal `json:"gross_up_base"`
	GrossUpFinal       decimal.Decimal `json:"gross_up_final"`
	MonthlyWithholding decimal.Decimal `json:"monthly_withholding"`
	PTKPAnnual         decimal.Decimal `json:"ptkp_annual"`
}

// ProrationMethod enum
type ProrationMethod string

const (
	ProrationWorkingDay  ProrationMethod = "working_day"
	ProrationCalendarDay ProrationMethod = "calendar_day"
	ProrationCustom      ProrationMethod = "custom"
)

// ProrationResult - fractional-period multiplier for partial employment
type ProrationResult struct {
	Factor     decimal.Decimal `json:"factor"`
	ActualDays decimal.Decimal `json:"actual_days"`
	TotalDays  int             `json:"total_days"`
	Method     ProrationMethod `json:"method"`
	IsProrated bool            `json:"is_prorated"`
	Reasons    []string        `json:"reasons,omitempty"`
}

// DeductionType enum
type DeductionType string

const (
	DeductionAbsence     DeductionType = "absence"
	DeductionLateness    DeductionType = "lateness"
	DeductionLoan        DeductionType = "loan"
	DeductionAdvance     DeductionType = "advance"
	DeductionUnpaidLeave DeductionType = "unpaid_leave"
	DeductionPenalty     DeductionType = "penalty"
	DeductionOther       DeductionType = "other"
)

// DeductionItem - one typed deduction line
type DeductionItem struct {
	Type     DeductionType   `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	SourceID *string         `json:"source_id,omitempty"`
}

// DeductionResult - itemized deductions; zero-amount items are omitted
// from Items but the total always equals the exact sum of the items.
type DeductionResult struct {
	Items []DeductionItem `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AdjustmentRecord - externally approved loan / advance / penalty record.
// Recurring records apply to every period their effective window covers.
type AdjustmentRecord struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	EmployeeID     string          `json:"employee_id"`
	Type           DeductionType   `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    *string         `json:"description,omitempty"`
	IsRecurring    bool            `json:"is_recurring"`
	EffectiveStart time.Time       `json:"effective_start"`
	EffectiveEnd   *time.Time      `json:"effective_end,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AttendanceSummary - aggregate attendance exceptions for one employee-period
type AttendanceSummary struct {
	EmployeeID      string `json:"employee_id"`
	AbsentDays      int    `json:"absent_days"`
	LateDays        int    `json:"late_days"`
	LateMinutes     int    `json:"late_minutes"`
	UnpaidLeaveDays int    `json:"unpaid_leave_days"`
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// BearerParty - which side carries a cost in the final figures
type BearerParty string

const (
	BorneByEmployee BearerParty = "employee"
	BorneByCompany  BearerParty = "company"
)

// PayrollCalculationResult - the one entity produced per employee per
// period. Everything embedded is computed in a single calculation call
// and never mutated afterwards.
type PayrollCalculationResult struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	CompanyID   string `json:"company_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`

	PayType        PayType        `json:"pay_type"`
	TaxpayerStatus TaxpayerStatus `json:"taxpayer_status"`

	BasicSalary         decimal.Decimal `json:"basic_salary"`
	ProratedBasicSalary decimal.Decimal `json:"prorated_basic_salary"`
	Allowances          AllowanceSet    `json:"allowances"`
	ProratedAllowances  AllowanceSet    `json:"prorated_allowances"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`

	Proration     ProrationResult    `json:"proration"`
	Contributions ContributionResult `json:"contributions"`
	Tax           TaxResult          `json:"tax"`
	Deductions    DeductionResult    `json:"deductions"`

	TotalGross        decimal.Decimal `json:"total_gross"`
	NetSalary         decimal.Decimal `json:"net_salary"`
	TakeHomePay       decimal.Decimal `json:"take_home_pay"`
	TotalEmployerCost decimal.Decimal `json:"total_employer_cost"`

	TaxBorneBy       BearerParty `json:"tax_borne_by"`
	InsuranceBorneBy BearerParty `json:"insurance_borne_by"`

	Warnings []string `json:"warnings,omitempty"`

	Status    PayrollStatus `json:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	PaidBy    *string       `json:"paid_by,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Joined fields
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}

// DefaultCutoffDay - pay-period cutoff used when a company has not
// configured one.
const DefaultCutoffDay = 20

// PayrollSettings - company payroll configuration. Every rate here is
// overridable data; statutory percentages and bracket tables live in the
// rate tables and are not company-configurable.
type PayrollSettings struct {
	ID        string
	CompanyID string

	// The pay period runs from the day after the cutoff in the previous
	// month to the cutoff day of the period month. Overrides carry
	// historical cutoff days keyed by year.
	CutoffDay          int
	CutoffDayOverrides map[int]int

	HealthSalaryCap  decimal.Decimal
	PensionSalaryCap decimal.Decimal

	AbsenceRate          decimal.Decimal
	UnpaidLeaveRate      decimal.Decimal
	LatePerDayRate       decimal.Decimal
	LatePerMinuteRate    decimal.Decimal
	LateToleranceMinutes int

	WorkHoursPerDay int
	ProrationMethod ProrationMethod

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CutoffForYear returns the cutoff day for a period year, honoring
// historical overrides.
func (s PayrollSettings) CutoffForYear(year int) int {
	if day, ok := s.CutoffDayOverrides[year]; ok {
		return day
	}
	return s.CutoffDay
}
