package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/payroll"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetSettings(ctx context.Context, companyID string) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, cutoff_day, cutoff_day_overrides,
			   health_salary_cap, pension_salary_cap,
			   absence_rate, unpaid_leave_rate,
			   late_per_day_rate, late_per_minute_rate, late_tolerance_minutes,
			   work_hours_per_day, proration_method,
			   created_at, updated_at
		FROM payroll_settings
		WHERE company_id = $1
	`

	var s payroll.PayrollSettings
	var overrides []byte
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.CutoffDay, &overrides,
		&s.HealthSalaryCap, &s.PensionSalaryCap,
		&s.AbsenceRate, &s.UnpaidLeaveRate,
		&s.LatePerDayRate, &s.LatePerMinuteRate, &s.LateToleranceMinutes,
		&s.WorkHoursPerDay, &s.ProrationMethod,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollSettings{}, payroll.ErrPayrollSettingsNotFound
		}
		return payroll.PayrollSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &s.CutoffDayOverrides); err != nil {
			return payroll.PayrollSettings{}, fmt.Errorf("failed to decode cutoff overrides: %w", err)
		}
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.PayrollSettings) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	overrides, err := json.Marshal(settings.CutoffDayOverrides)
	if err != nil {
		return payroll.PayrollSettings{}, fmt.Errorf("failed to encode cutoff overrides: %w", err)
	}

	query := `
		INSERT INTO payroll_settings (
			company_id, cutoff_day, cutoff_day_overrides,
			health_salary_cap, pension_salary_cap,
			absence_rate, unpaid_leave_rate,
			late_per_day_rate, late_per_minute_rate, late_tolerance_minutes,
			work_hours_per_day, proration_method, id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id) DO UPDATE SET
			cutoff_day = EXCLUDED.cutoff_day,
			cutoff_day_overrides = EXCLUDED.cutoff_day_overrides,
			health_salary_cap = EXCLUDED.health_salary_cap,
			pension_salary_cap = EXCLUDED.pension_salary_cap,
			absence_rate = EXCLUDED.absence_rate,
			unpaid_leave_rate = EXCLUDED.unpaid_leave_rate,
			late_per_day_rate = EXCLUDED.late_per_day_rate,
			late_per_minute_rate = EXCLUDED.late_per_minute_rate,
			late_tolerance_minutes = EXCLUDED.late_tolerance_minutes,
			work_hours_per_day = EXCLUDED.work_hours_per_day,
			proration_method = EXCLUDED.proration_method,
			updated_at = NOW()
		RETURNING id, company_id, cutoff_day, cutoff_day_overrides,
			health_salary_cap, pension_salary_cap,
			absence_rate, unpaid_leave_rate,
			late_per_day_rate, late_per_minute_rate, late_tolerance_minutes,
			work_hours_per_day, proration_method,
			created_at, updated_at
	`

	var s payroll.PayrollSettings
	var rawOverrides []byte
	err = q.QueryRow(ctx, query,
		settings.CompanyID, settings.CutoffDay, overrides,
		settings.HealthSalaryCap, settings.PensionSalaryCap,
		settings.AbsenceRate, settings.UnpaidLeaveRate,
		settings.LatePerDayRate, settings.LatePerMinuteRate, settings.LateToleranceMinutes,
		settings.WorkHoursPerDay, settings.ProrationMethod, newID(),
	).Scan(
		&s.ID, &s.CompanyID, &s.CutoffDay, &rawOverrides,
		&s.HealthSalaryCap, &s.PensionSalaryCap,
		&s.AbsenceRate, &s.UnpaidLeaveRate,
		&s.LatePerDayRate, &s.LatePerMinuteRate, &s.LateToleranceMinutes,
		&s.WorkHoursPerDay, &s.ProrationMethod,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSettings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	if len(rawOverrides) > 0 {
		if err := json.Unmarshal(rawOverrides, &s.CutoffDayOverrides); err != nil {
			return payroll.PayrollSettings{}, fmt.Errorf("failed to decode cutoff overrides: %w", err)
		}
	}

	return s, nil
}

// ========== CALCULATION RESULTS ==========

const payrollRecordColumns = `
	id, employee_id, company_id, period_month, period_year,
	pay_type, taxpayer_status,
	basic_salary, prorated_basic_salary, allowances, prorated_allowances, overtime_pay,
	proration, contributions, tax, deductions,
	total_gross, net_salary, take_home_pay, total_employer_cost,
	tax_borne_by, insurance_borne_by, warnings,
	status, paid_at, paid_by, created_at, updated_at`

func (r *payrollRepository) CreateRecord(ctx context.Context, record payroll.PayrollCalculationResult) (payroll.PayrollCalculationResult, error) {
	q := GetQuerier(ctx, r.db)

	allowances, err := json.Marshal(record.Allowances)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to encode allowances: %w", err)
	}
	proratedAllowances, err := json.Marshal(record.ProratedAllowances)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to encode prorated allowances: %w", err)
	}
	proration, err := json.Marshal(record.Proration)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to encode proration: %w", err)
	}
	contributions, err := json.Marshal(record.Contributions)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to encode contributions: %w", err)
	}
	tax, err := json.Marshal(record.Tax)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to encode tax: %w", err)
	}
	deductions, err := json.Marshal(record.Deductions)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to encode deductions: %w", err)
	}
	warnings, err := json.Marshal(record.Warnings)
	if err != nil {
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to encode warnings: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			employee_id, company_id, period_month, period_year,
			pay_type, taxpayer_status,
			basic_salary, prorated_basic_salary, allowances, prorated_allowances, overtime_pay,
			proration, contributions, tax, deductions,
			total_gross, net_salary, take_home_pay, total_employer_cost,
			tax_borne_by, insurance_borne_by, warnings, status, id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, 'draft', $23
		)
		RETURNING ` + payrollRecordColumns

	row := q.QueryRow(ctx, query,
		record.EmployeeID, record.CompanyID, record.PeriodMonth, record.PeriodYear,
		record.PayType, record.TaxpayerStatus,
		record.BasicSalary, record.ProratedBasicSalary, allowances, proratedAllowances, record.OvertimePay,
		proration, contributions, tax, deductions,
		record.TotalGross, record.NetSalary, record.TakeHomePay, record.TotalEmployerCost,
		record.TaxBorneBy, record.InsuranceBorneBy, warnings, newID(),
	)

	created, err := scanPayrollRecord(row)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_record_period") {
			return payroll.PayrollCalculationResult{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id string, companyID string) (payroll.PayrollCalculationResult, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE id = $1 AND company_id = $2
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollCalculationResult{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollCalculationResult, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3 AND company_id = $4
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollCalculationResult{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) ListRecords(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollCalculationResult, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"pr.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodMonth > 0 {
		conditions = append(conditions, fmt.Sprintf("pr.period_month = $%d", argIdx))
		args = append(args, filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear > 0 {
		conditions = append(conditions, fmt.Sprintf("pr.period_year = $%d", argIdx))
		args = append(args, filter.PeriodYear)
		argIdx++
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM payroll_records pr WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT pr.id, pr.employee_id, pr.company_id, pr.period_month, pr.period_year,
			   pr.pay_type, pr.taxpayer_status,
			   pr.basic_salary, pr.prorated_basic_salary, pr.allowances, pr.prorated_allowances, pr.overtime_pay,
			   pr.proration, pr.contributions, pr.tax, pr.deductions,
			   pr.total_gross, pr.net_salary, pr.take_home_pay, pr.total_employer_cost,
			   pr.tax_borne_by, pr.insurance_borne_by, pr.warnings,
			   pr.status, pr.paid_at, pr.paid_by, pr.created_at, pr.updated_at,
			   e.name, e.code
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE %s
		ORDER BY pr.period_year DESC, pr.period_month DESC, e.name ASC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollCalculationResult
	for rows.Next() {
		record, err := scanPayrollRecordRow(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) FinalizeRecords(ctx context.Context, ids []string, paidBy string, companyID string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var alreadyPaid int
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM payroll_records
			WHERE id = ANY($1) AND company_id = $2 AND status = 'paid'
		`, ids, companyID).Scan(&alreadyPaid)
		if err != nil {
			return fmt.Errorf("failed to check payroll records: %w", err)
		}
		if alreadyPaid > 0 {
			return payroll.ErrPayrollRecordAlreadyPaid
		}

		tag, err := tx.Exec(ctx, `
			UPDATE payroll_records
			SET status = 'paid', paid_at = NOW(), paid_by = $3, updated_at = NOW()
			WHERE id = ANY($1) AND company_id = $2 AND status = 'draft'
		`, ids, companyID, paidBy)
		if err != nil {
			return fmt.Errorf("failed to finalize payroll records: %w", err)
		}
		if tag.RowsAffected() != int64(len(ids)) {
			return payroll.ErrPayrollRecordNotFound
		}

		return nil
	})
}

func (r *payrollRepository) DeleteRecord(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	var status payroll.PayrollStatus
	err := q.QueryRow(ctx, `
		SELECT status FROM payroll_records WHERE id = $1 AND company_id = $2
	`, id, companyID).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to get payroll record: %w", err)
	}
	if status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}

	_, err = q.Exec(ctx, `
		DELETE FROM payroll_records WHERE id = $1 AND company_id = $2 AND status = 'draft'
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}

// ========== ADJUSTMENTS ==========

func (r *payrollRepository) CreateAdjustment(ctx context.Context, adj payroll.AdjustmentRecord) (payroll.AdjustmentRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_adjustments (
			id, company_id, employee_id, type, amount, description,
			is_recurring, effective_start, effective_end
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, company_id, employee_id, type, amount, description,
			is_recurring, effective_start, effective_end, created_at, updated_at
	`

	var created payroll.AdjustmentRecord
	err := q.QueryRow(ctx, query,
		newID(), adj.CompanyID, adj.EmployeeID, adj.Type, adj.Amount, adj.Description,
		adj.IsRecurring, adj.EffectiveStart, adj.EffectiveEnd,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.Type, &created.Amount, &created.Description,
		&created.IsRecurring, &created.EffectiveStart, &created.EffectiveEnd, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.AdjustmentRecord{}, fmt.Errorf("failed to create adjustment: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetAdjustmentsForPeriod(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]payroll.AdjustmentRecord, error) {
	q := GetQuerier(ctx, r.db)

	// One-off adjustments attach to the period containing their start
	// date; recurring ones apply to every period their window overlaps.
	query := `
		SELECT id, company_id, employee_id, type, amount, description,
			   is_recurring, effective_start, effective_end, created_at, updated_at
		FROM payroll_adjustments
		WHERE company_id = $1 AND employee_id = $2
		  AND effective_start <= $4
		  AND (is_recurring = false AND effective_start >= $3
			   OR is_recurring = true AND (effective_end IS NULL OR effective_end >= $3))
		ORDER BY effective_start ASC
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []payroll.AdjustmentRecord
	for rows.Next() {
		var adj payroll.AdjustmentRecord
		err := rows.Scan(
			&adj.ID, &adj.CompanyID, &adj.EmployeeID, &adj.Type, &adj.Amount, &adj.Description,
			&adj.IsRecurring, &adj.EffectiveStart, &adj.EffectiveEnd, &adj.CreatedAt, &adj.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate adjustments: %w", err)
	}

	return adjustments, nil
}

func (r *payrollRepository) DeleteAdjustment(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM payroll_adjustments WHERE id = $1 AND company_id = $2
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}

	return nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetAttendanceSummary(ctx context.Context, companyID string, periodStart, periodEnd time.Time, employeeIDs []string) ([]payroll.AttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.employee_id,
			   COUNT(*) FILTER (WHERE a.status = 'absent') AS absent_days,
			   COUNT(*) FILTER (WHERE a.status = 'late') AS late_days,
			   COALESCE(SUM(a.late_minutes) FILTER (WHERE a.status = 'late'), 0) AS late_minutes,
			   COUNT(*) FILTER (WHERE a.status = 'unpaid_leave') AS unpaid_leave_days
		FROM attendances a
		WHERE a.company_id = $1
		  AND a.date BETWEEN $2 AND $3
		  AND a.employee_id = ANY($4)
		GROUP BY a.employee_id
	`

	rows, err := q.Query(ctx, query, companyID, periodStart, periodEnd, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance summary: %w", err)
	}
	defer rows.Close()

	var summaries []payroll.AttendanceSummary
	for rows.Next() {
		var s payroll.AttendanceSummary
		err := rows.Scan(&s.EmployeeID, &s.AbsentDays, &s.LateDays, &s.LateMinutes, &s.UnpaidLeaveDays)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance summaries: %w", err)
	}

	return summaries, nil
}

func (r *payrollRepository) GetHolidays(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date FROM holidays
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, companyID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	defer rows.Close()

	var holidays []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

// ========== SCAN HELPERS ==========

func scanPayrollRecord(row pgx.Row) (payroll.PayrollCalculationResult, error) {
	return scanPayrollRecordRow(row, false)
}

func scanPayrollRecordRow(row pgx.Row, withEmployee bool) (payroll.PayrollCalculationResult, error) {
	var record payroll.PayrollCalculationResult
	var allowances, proratedAllowances, proration, contributions, tax, deductions, warnings []byte

	dest := []interface{}{
		&record.ID, &record.EmployeeID, &record.CompanyID, &record.PeriodMonth, &record.PeriodYear,
		&record.PayType, &record.TaxpayerStatus,
		&record.BasicSalary, &record.ProratedBasicSalary, &allowances, &proratedAllowances, &record.OvertimePay,
		&proration, &contributions, &tax, &deductions,
		&record.TotalGross, &record.NetSalary, &record.TakeHomePay, &record.TotalEmployerCost,
		&record.TaxBorneBy, &record.InsuranceBorneBy, &warnings,
		&record.Status, &record.PaidAt, &record.PaidBy, &record.CreatedAt, &record.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &record.EmployeeName, &record.EmployeeCode)
	}

	if err := row.Scan(dest...); err != nil {
		return payroll.PayrollCalculationResult{}, err
	}

	for _, part := range []struct {
		raw []byte
		dst interface{}
	}{
		{allowances, &record.Allowances},
		{proratedAllowances, &record.ProratedAllowances},
		{proration, &record.Proration},
		{contributions, &record.Contributions},
		{tax, &record.Tax},
		{deductions, &record.Deductions},
		{warnings, &record.Warnings},
	} {
		if len(part.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(part.raw, part.dst); err != nil {
			return payroll.PayrollCalculationResult{}, fmt.Errorf("failed to decode payroll record detail: %w", err)
		}
	}

	return record, nil
}
