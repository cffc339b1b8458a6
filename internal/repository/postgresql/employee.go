package postgresql

import (
	"context"
	"fmt"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/domain/employee"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, name, code,
	basic_salary, transport_allowance, meal_allowance, position_allowance,
	housing_allowance, communication_allowance, other_allowance,
	taxpayer_status, pay_type,
	bpjs_health, bpjs_employment, bpjs_pension,
	join_date, resign_date, status, created_at, updated_at`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
// Resigned employees whose resign date falls inside a pay period still
// appear in that period's run through the service's date filtering, so
// this also returns employees that resigned within the last two months.
func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND deleted_at IS NULL
		  AND (status = $2 OR resign_date >= NOW() - INTERVAL '2 months')
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.Name, &emp.Code,
		&emp.BasicSalary, &emp.TransportAllowance, &emp.MealAllowance, &emp.PositionAllowance,
		&emp.HousingAllowance, &emp.CommunicationAllowance, &emp.OtherAllowance,
		&emp.TaxpayerStatus, &emp.PayType,
		&emp.BPJSHealth, &emp.BPJSEmployment, &emp.BPJSPension,
		&emp.JoinDate, &emp.ResignDate, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}
