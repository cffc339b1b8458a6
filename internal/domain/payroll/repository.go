package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context, companyID string) (PayrollSettings, error)
	UpsertSettings(ctx context.Context, settings PayrollSettings) (PayrollSettings, error)

	// Calculation results
	CreateRecord(ctx context.Context, record PayrollCalculationResult) (PayrollCalculationResult, error)
	GetRecordByID(ctx context.Context, id string, companyID string) (PayrollCalculationResult, error)
	GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PayrollCalculationResult, error)
	ListRecords(ctx context.Context, companyID string, filter PayrollFilter) ([]PayrollCalculationResult, int64, error)
	FinalizeRecords(ctx context.Context, ids []string, paidBy string, companyID string) error
	DeleteRecord(ctx context.Context, id string, companyID string) error

	// Adjustments
	CreateAdjustment(ctx context.Context, adj AdjustmentRecord) (AdjustmentRecord, error)
	GetAdjustmentsForPeriod(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]AdjustmentRecord, error)
	DeleteAdjustment(ctx context.Context, id string, companyID string) error

	// Aggregations
	GetAttendanceSummary(ctx context.Context, companyID string, periodStart, periodEnd time.Time, employeeIDs []string) ([]AttendanceSummary, error)
	GetHolidays(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]time.Time, error)
}

// PayrollService is the engine's entry point plus the thin surfaces
// around it (settings, persisted records, adjustments).
type PayrollService interface {
	GetSettings(ctx context.Context) (PayrollSettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdatePayrollSettingsRequest) (PayrollSettingsResponse, error)

	CalculateForEmployee(ctx context.Context, req CalculatePayrollRequest) (PayrollCalculationResult, error)
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) ([]PayrollCalculationResult, error)
	SolveBasicSalary(ctx context.Context, req SolveBasicSalaryRequest) (SolveBasicSalaryResponse, error)

	GetRecord(ctx context.Context, id string) (PayrollCalculationResult, error)
	ListRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	FinalizePayroll(ctx context.Context, req FinalizePayrollRequest) error
	DeleteRecord(ctx context.Context, id string) error

	CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentRecord, error)
	DeleteAdjustment(ctx context.Context, id string) error
}
