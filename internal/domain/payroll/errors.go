package payroll

import "errors"

var (
	ErrInvalidInput               = errors.New("invalid calculation input")
	ErrUnknownTaxpayerStatus      = errors.New("unknown taxpayer status")
	ErrPayrollSettingsNotFound    = errors.New("payroll settings not found")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordAlreadyPaid   = errors.New("payroll record already paid, cannot modify")
	ErrCannotDeletePaidRecord     = errors.New("cannot delete paid payroll record")
	ErrAdjustmentNotFound         = errors.New("adjustment record not found")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrEmployeeHasNoBaseSalary    = errors.New("employee has no basic salary configured")
)
