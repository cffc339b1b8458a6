package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus enum
type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusResigned EmploymentStatus = "resigned"
)

// Employee carries the salary and registration facts the payroll engine
// consumes. Everything else about an employee lives outside this service.
type Employee struct {
	ID        string
	CompanyID string
	Name      string
	Code      string

	BasicSalary            decimal.Decimal
	TransportAllowance     decimal.Decimal
	MealAllowance          decimal.Decimal
	PositionAllowance      decimal.Decimal
	HousingAllowance       decimal.Decimal
	CommunicationAllowance decimal.Decimal
	OtherAllowance         decimal.Decimal

	TaxpayerStatus string
	PayType        string

	BPJSHealth     bool
	BPJSEmployment bool
	BPJSPension    bool

	JoinDate   time.Time
	ResignDate *time.Time
	Status     EmploymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
