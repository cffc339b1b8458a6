package payroll

import (
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type PayrollSettingsResponse struct {
	ID                   string          `json:"id"`
	CompanyID            string          `json:"company_id"`
	CutoffDay            int             `json:"cutoff_day"`
	CutoffDayOverrides   map[int]int     `json:"cutoff_day_overrides,omitempty"`
	HealthSalaryCap      decimal.Decimal `json:"health_salary_cap"`
	PensionSalaryCap     decimal.Decimal `json:"pension_salary_cap"`
	AbsenceRate          decimal.Decimal `json:"absence_rate"`
	UnpaidLeaveRate      decimal.Decimal `json:"unpaid_leave_rate"`
	LatePerDayRate       decimal.Decimal `json:"late_per_day_rate"`
	LatePerMinuteRate    decimal.Decimal `json:"late_per_minute_rate"`
	LateToleranceMinutes int             `json:"late_tolerance_minutes"`
	WorkHoursPerDay      int             `json:"work_hours_per_day"`
	ProrationMethod      ProrationMethod `json:"proration_method"`
}

type UpdatePayrollSettingsRequest struct {
	CutoffDay            *int             `json:"cutoff_day,omitempty"`
	CutoffDayOverrides   map[int]int      `json:"cutoff_day_overrides,omitempty"`
	HealthSalaryCap      *decimal.Decimal `json:"health_salary_cap,omitempty"`
	PensionSalaryCap     *decimal.Decimal `json:"pension_salary_cap,omitempty"`
	AbsenceRate          *decimal.Decimal `json:"absence_rate,omitempty"`
	UnpaidLeaveRate      *decimal.Decimal `json:"unpaid_leave_rate,omitempty"`
	LatePerDayRate       *decimal.Decimal `json:"late_per_day_rate,omitempty"`
	LatePerMinuteRate    *decimal.Decimal `json:"late_per_minute_rate,omitempty"`
	LateToleranceMinutes *int             `json:"late_tolerance_minutes,omitempty"`
	WorkHoursPerDay      *int             `json:"work_hours_per_day,omitempty"`
	ProrationMethod      *ProrationMethod `json:"proration_method,omitempty"`
}

func (r *UpdatePayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CutoffDay != nil && (*r.CutoffDay < 1 || *r.CutoffDay > 28) {
		errs = append(errs, validator.ValidationError{Field: "cutoff_day", Message: "must be between 1 and 28"})
	}
	for year, day := range r.CutoffDayOverrides {
		if day < 1 || day > 28 {
			errs = append(errs, validator.ValidationError{Field: "cutoff_day_overrides." + validator.Itoa(year), Message: "must be between 1 and 28"})
		}
	}
	if r.HealthSalaryCap != nil && r.HealthSalaryCap.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "health_salary_cap", Message: "must be non-negative"})
	}
	if r.PensionSalaryCap != nil && r.PensionSalaryCap.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "pension_salary_cap", Message: "must be non-negative"})
	}
	if r.AbsenceRate != nil && r.AbsenceRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absence_rate", Message: "must be non-negative"})
	}
	if r.UnpaidLeaveRate != nil && r.UnpaidLeaveRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unpaid_leave_rate", Message: "must be non-negative"})
	}
	if r.LatePerDayRate != nil && r.LatePerDayRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "late_per_day_rate", Message: "must be non-negative"})
	}
	if r.LatePerMinuteRate != nil && r.LatePerMinuteRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "late_per_minute_rate", Message: "must be non-negative"})
	}
	if r.LateToleranceMinutes != nil && *r.LateToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_tolerance_minutes", Message: "must be non-negative"})
	}
	if r.WorkHoursPerDay != nil && (*r.WorkHoursPerDay < 1 || *r.WorkHoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{Field: "work_hours_per_day", Message: "must be between 1 and 24"})
	}
	if r.ProrationMethod != nil &&
		*r.ProrationMethod != ProrationWorkingDay && *r.ProrationMethod != ProrationCalendarDay {
		errs = append(errs, validator.ValidationError{Field: "proration_method", Message: "must be 'working_day' or 'calendar_day'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== CALCULATION DTOs ==========

// CalculatePayrollRequest runs the engine for one employee without
// persisting anything.
type CalculatePayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"` // "2006-01"
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, err := ParsePeriod(r.Period); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayrollRequest struct {
	Period      string   `json:"period"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePeriod(r.Period); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SolveBasicSalaryRequest derives a basic salary from a desired take-home
// figure using the bounded iterative solver.
type SolveBasicSalaryRequest struct {
	DesiredTakeHome decimal.Decimal   `json:"desired_take_home"`
	TaxpayerStatus  TaxpayerStatus    `json:"taxpayer_status"`
	Registration    RegistrationFlags `json:"registration"`
}

func (r *SolveBasicSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DesiredTakeHome.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "desired_take_home", Message: "must be non-negative"})
	}
	if r.TaxpayerStatus == "" {
		errs = append(errs, validator.ValidationError{Field: "taxpayer_status", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SolveBasicSalaryResponse struct {
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	ImpliedTakeHome decimal.Decimal `json:"implied_take_home"`
	Iterations      int             `json:"iterations"`
	Converged       bool            `json:"converged"`
}

// ========== RECORD DTOs ==========

type PayrollFilter struct {
	PeriodMonth int
	PeriodYear  int
	EmployeeID  string
	Status      string
	Page        int
	Limit       int
}

type ListPayrollRecordResponse struct {
	Data       []PayrollCalculationResult `json:"data"`
	TotalCount int64                      `json:"total_count"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
}

type FinalizePayrollRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADJUSTMENT DTOs ==========

type CreateAdjustmentRequest struct {
	EmployeeID     string          `json:"employee_id"`
	Type           string          `json:"type"` // loan, advance, penalty, other
	Amount         decimal.Decimal `json:"amount"`
	Description    *string         `json:"description,omitempty"`
	IsRecurring    bool            `json:"is_recurring"`
	EffectiveStart string          `json:"effective_start"`          // "2006-01-02"
	EffectiveEnd   *string         `json:"effective_end,omitempty"` // required when recurring
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	switch DeductionType(r.Type) {
	case DeductionLoan, DeductionAdvance, DeductionPenalty, DeductionOther:
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'loan', 'advance', 'penalty' or 'other'"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_start", Message: "must be in YYYY-MM-DD format"})
	}
	if r.EffectiveEnd != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_end", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsePeriod parses a "YYYY-MM" period token.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	return t, nil
}
