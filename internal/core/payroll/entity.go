package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceholderEmployeeName は月次一覧で社員が見つからない場合に使う表示名です。
const PlaceholderEmployeeName = "N/A"

// SalaryRecord は社員 1 人・1 か月あたり 1 件の給与記録です。
// 差引支給額は保持せず、NetSalary で都度算出します。
type SalaryRecord struct {
	ID         string
	EmployeeID string
	Month      string
	BaseSalary decimal.Decimal
	Bonus      decimal.Decimal
	Deductions decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// EmployeeName は月次一覧でのみ設定されます。
	EmployeeName string
}

// NetSalary は base_salary + bonus - deductions を返します。
func (r *SalaryRecord) NetSalary() decimal.Decimal {
	return ComputeNet(r.BaseSalary, r.Bonus, r.Deductions)
}

// UpsertResult は給与登録の結果です。Created が false の場合は既存記録を上書きしています。
type UpsertResult struct {
	Record  *SalaryRecord
	Created bool
}

// MonthSummary は月次の給与集計です。
type MonthSummary struct {
	Month           string
	TotalEmployees  int
	TotalBaseSalary decimal.Decimal
	TotalBonus      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNetSalary  decimal.Decimal
}
