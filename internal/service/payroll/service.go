package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/employee"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/fixtures"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	calculator   *PayrollCalculator
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		calculator:   NewPayrollCalculator(),
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.PayrollSettingsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	settings, err := s.settingsOrDefaults(ctx, companyID)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	return mapToSettingsResponse(settings), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdatePayrollSettingsRequest) (payroll.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	current, err := s.settingsOrDefaults(ctx, companyID)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	// Apply updates
	if req.CutoffDay != nil {
		current.CutoffDay = *req.CutoffDay
	}
	if req.CutoffDayOverrides != nil {
		current.CutoffDayOverrides = req.CutoffDayOverrides
	}
	if req.HealthSalaryCap != nil {
		current.HealthSalaryCap = *req.HealthSalaryCap
	}
	if req.PensionSalaryCap != nil {
		current.PensionSalaryCap = *req.PensionSalaryCap
	}
	if req.AbsenceRate != nil {
		current.AbsenceRate = *req.AbsenceRate
	}
	if req.UnpaidLeaveRate != nil {
		current.UnpaidLeaveRate = *req.UnpaidLeaveRate
	}
	if req.LatePerDayRate != nil {
		current.LatePerDayRate = *req.LatePerDayRate
	}
	if req.LatePerMinuteRate != nil {
		current.LatePerMinuteRate = *req.LatePerMinuteRate
	}
	if req.LateToleranceMinutes != nil {
		current.LateToleranceMinutes = *req.LateToleranceMinutes
	}
	if req.WorkHoursPerDay != nil {
		current.WorkHoursPerDay = *req.WorkHoursPerDay
	}
	if req.ProrationMethod != nil {
		current.ProrationMethod = *req.ProrationMethod
	}

	updated, err := s.payrollRepo.UpsertSettings(ctx, current)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	return mapToSettingsResponse(updated), nil
}

// settingsOrDefaults loads company settings, falling back to the
// well-defined defaults when none are configured. Missing settings never
// halt payroll generation.
func (s *PayrollServiceImpl) settingsOrDefaults(ctx context.Context, companyID string) (payroll.PayrollSettings, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return fixtures.DefaultPayrollSettings(companyID), nil
		}
		return payroll.PayrollSettings{}, err
	}
	return settings, nil
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) CalculateForEmployee(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.PayrollCalculationResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	settings, err := s.settingsOrDefaults(ctx, companyID)
	if err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	return s.calculateOne(ctx, companyID, emp, req.Period, settings)
}

// calculateOne resolves the period, snapshots attendance and adjustments
// and runs the pure calculator for one employee.
func (s *PayrollServiceImpl) calculateOne(
	ctx context.Context,
	companyID string,
	emp employee.Employee,
	period string,
	settings payroll.PayrollSettings,
) (payroll.PayrollCalculationResult, error) {
	periodStart, periodEnd, err := ResolvePeriod(period, settings)
	if err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	holidays, err := s.payrollRepo.GetHolidays(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to get holidays: %w", err)
	}
	if len(holidays) == 0 {
		holidays = defaultHolidaysInWindow(periodStart, periodEnd)
	}

	summaries, err := s.payrollRepo.GetAttendanceSummary(ctx, companyID, periodStart, periodEnd, []string{emp.ID})
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}
	var attendance payroll.AttendanceSummary
	if len(summaries) > 0 {
		attendance = summaries[0]
	}
	attendance.EmployeeID = emp.ID

	adjustments, err := s.payrollRepo.GetAdjustmentsForPeriod(ctx, companyID, emp.ID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to get adjustments: %w", err)
	}

	result, err := s.calculator.Calculate(salaryInputFromEmployee(emp), CalculationContext{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Holidays:    holidays,
		JoinDate:    emp.JoinDate,
		ResignDate:  emp.ResignDate,
		Attendance:  attendance,
		Adjustments: adjustments,
		Settings:    settings,
	})
	if err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	result.EmployeeID = emp.ID
	result.CompanyID = companyID
	result.PeriodMonth = int(periodEnd.Month())
	result.PeriodYear = periodEnd.Year()

	return result, nil
}

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollCalculationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsOrDefaults(ctx, companyID)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(req.EmployeeIDs) > 0 {
		wanted := make(map[string]bool, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			wanted[id] = true
		}
		filtered := employees[:0]
		for _, emp := range employees {
			if wanted[emp.ID] {
				filtered = append(filtered, emp)
			}
		}
		employees = filtered
	}

	periodTime, err := payroll.ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	month, year := int(periodTime.Month()), periodTime.Year()

	var records []payroll.PayrollCalculationResult
	for _, emp := range employees {
		if emp.BasicSalary.IsZero() {
			continue // Skip employees without base salary
		}

		// Skip if a record already exists for the period
		_, err := s.payrollRepo.GetRecordByEmployeePeriod(ctx, emp.ID, month, year, companyID)
		if err == nil {
			continue
		}
		if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing payroll record: %w", err)
		}

		result, err := s.calculateOne(ctx, companyID, emp, req.Period, settings)
		if err != nil {
			// Calculations are independent per employee; one bad input
			// must not sink the run.
			if errors.Is(err, payroll.ErrInvalidInput) {
				continue
			}
			return nil, fmt.Errorf("failed to calculate payroll for employee %s: %w", emp.ID, err)
		}

		created, err := s.payrollRepo.CreateRecord(ctx, result)
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("failed to create payroll record for employee %s: %w", emp.ID, err)
		}
		records = append(records, created)
	}

	return records, nil
}

func (s *PayrollServiceImpl) SolveBasicSalary(ctx context.Context, req payroll.SolveBasicSalaryRequest) (payroll.SolveBasicSalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SolveBasicSalaryResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SolveBasicSalaryResponse{}, err
	}

	settings, err := s.settingsOrDefaults(ctx, companyID)
	if err != nil {
		return payroll.SolveBasicSalaryResponse{}, err
	}

	basic, implied, iterations, converged := s.calculator.SolveBasicSalaryFromTakeHome(
		req.DesiredTakeHome, req.TaxpayerStatus, req.Registration, settings)

	return payroll.SolveBasicSalaryResponse{
		BasicSalary:     basic,
		ImpliedTakeHome: implied,
		Iterations:      iterations,
		Converged:       converged,
	}, nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollCalculationResult, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	return s.payrollRepo.GetRecordByID(ctx, id, companyID)
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	records, totalCount, err := s.payrollRepo.ListRecords(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       records,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) FinalizePayroll(ctx context.Context, req payroll.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.FinalizeRecords(ctx, req.RecordIDs, userID, companyID)
}

func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeleteRecord(ctx, id, companyID)
}

// ========== ADJUSTMENTS ==========

func (s *PayrollServiceImpl) CreateAdjustment(ctx context.Context, req payroll.CreateAdjustmentRequest) (payroll.AdjustmentRecord, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdjustmentRecord{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.AdjustmentRecord{}, err
	}

	effectiveStart, _ := time.Parse("2006-01-02", req.EffectiveStart)
	var effectiveEnd *time.Time
	if req.EffectiveEnd != nil {
		parsed, err := time.Parse("2006-01-02", *req.EffectiveEnd)
		if err == nil {
			effectiveEnd = &parsed
		}
	}

	return s.payrollRepo.CreateAdjustment(ctx, payroll.AdjustmentRecord{
		CompanyID:      companyID,
		EmployeeID:     req.EmployeeID,
		Type:           payroll.DeductionType(req.Type),
		Amount:         req.Amount.Round(0),
		Description:    req.Description,
		IsRecurring:    req.IsRecurring,
		EffectiveStart: effectiveStart,
		EffectiveEnd:   effectiveEnd,
	})
}

func (s *PayrollServiceImpl) DeleteAdjustment(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeleteAdjustment(ctx, id, companyID)
}

// ========== HELPERS ==========

func salaryInputFromEmployee(emp employee.Employee) payroll.SalaryInput {
	payType := payroll.PayType(emp.PayType)
	if payType == "" {
		payType = payroll.PayTypeGross
	}

	return payroll.SalaryInput{
		BasicSalary: emp.BasicSalary,
		Allowances: payroll.AllowanceSet{
			Transport:     emp.TransportAllowance,
			Meal:          emp.MealAllowance,
			Position:      emp.PositionAllowance,
			Housing:       emp.HousingAllowance,
			Communication: emp.CommunicationAllowance,
			Other:         emp.OtherAllowance,
		},
		OvertimePay:    decimal.Zero,
		TaxpayerStatus: payroll.TaxpayerStatus(emp.TaxpayerStatus),
		PayType:        payType,
		Registration: payroll.RegistrationFlags{
			BPJSHealth:     emp.BPJSHealth,
			BPJSEmployment: emp.BPJSEmployment,
			BPJSPension:    emp.BPJSPension,
		},
	}
}

func mapToSettingsResponse(s payroll.PayrollSettings) payroll.PayrollSettingsResponse {
	return payroll.PayrollSettingsResponse{
		ID:                   s.ID,
		CompanyID:            s.CompanyID,
		CutoffDay:            s.CutoffDay,
		CutoffDayOverrides:   s.CutoffDayOverrides,
		HealthSalaryCap:      s.HealthSalaryCap,
		PensionSalaryCap:     s.PensionSalaryCap,
		AbsenceRate:          s.AbsenceRate,
		UnpaidLeaveRate:      s.UnpaidLeaveRate,
		LatePerDayRate:       s.LatePerDayRate,
		LatePerMinuteRate:    s.LatePerMinuteRate,
		LateToleranceMinutes: s.LateToleranceMinutes,
		WorkHoursPerDay:      s.WorkHoursPerDay,
		ProrationMethod:      s.ProrationMethod,
	}
}

// defaultHolidaysInWindow falls back to the seeded national holiday calendar
// for companies that have not uploaded their own.
func defaultHolidaysInWindow(start, end time.Time) []time.Time {
	var out []time.Time
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range fixtures.GetDefaultHolidays(year) {
			if !h.Before(start) && !h.After(end) {
				out = append(out, h)
			}
		}
	}
	return out
}
