package payroll

import "errors"

var (
	// ErrInvalidSalaryID は給与記録 ID が空、または UUID として解釈できない場合に返却されます。
	ErrInvalidSalaryID = errors.New("payroll: invalid salary id")
	// ErrInvalidEmployeeID は社員 ID が空の場合に返却されます。
	ErrInvalidEmployeeID = errors.New("payroll: invalid employee id")
	// ErrInvalidMonth は対象月が YYYY-MM 形式でない場合に返却されます。
	ErrInvalidMonth = errors.New("payroll: invalid month")
	// ErrInvalidAmount は金額が負、小数 2 桁超、または NUMERIC(14,2) の範囲外の場合に返却されます。
	ErrInvalidAmount = errors.New("payroll: invalid amount")
	// ErrSalaryNotFound は指定した給与記録が存在しない場合に返却されます。
	ErrSalaryNotFound = errors.New("payroll: salary record not found")
)
