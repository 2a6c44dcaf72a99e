package payroll

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// maxAmount は NUMERIC(14,2) に収まる上限 (排他) です。
var maxAmount = decimal.New(1, maxIntegerDigits)

const (
	maxIntegerDigits = 12
	// maxScale は末尾ゼロ付きの入力 ("1.500" など) を許す小数部の表記上限です。
	maxScale = 20
)

// ComputeNet は差引支給額を算出します。結果が負になっても切り上げません。
func ComputeNet(base, bonus, deductions decimal.Decimal) decimal.Decimal {
	return base.Add(bonus).Sub(deductions)
}

// Summarize は同一月の給与記録を集計します。
func Summarize(month string, records []*SalaryRecord) MonthSummary {
	summary := MonthSummary{
		Month:           month,
		TotalEmployees:  len(records),
		TotalBaseSalary: decimal.Zero,
		TotalBonus:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNetSalary:  decimal.Zero,
	}
	for _, rec := range records {
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(rec.BaseSalary)
		summary.TotalBonus = summary.TotalBonus.Add(rec.Bonus)
		summary.TotalDeductions = summary.TotalDeductions.Add(rec.Deductions)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(rec.NetSalary())
	}
	return summary
}

// NormalizeMonth は YYYY-MM 形式かどうかのみを検証します。月の範囲は確認しません。
func NormalizeMonth(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !monthPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: month=%q", ErrInvalidMonth, raw)
	}
	return trimmed, nil
}

func validateAmount(field string, amount decimal.Decimal) error {
	// 丸めや比較、文字列化の前に指数と係数の桁数だけで範囲外を弾く。
	digits, exp := int64(amount.NumDigits()), int64(amount.Exponent())
	switch {
	case digits+exp > maxIntegerDigits:
		return fmt.Errorf("%w: %s is too large", ErrInvalidAmount, field)
	case exp < -maxScale:
		return fmt.Errorf("%w: %s has too many decimal places", ErrInvalidAmount, field)
	}
	switch {
	case amount.IsNegative():
		return fmt.Errorf("%w: %s=%s must not be negative", ErrInvalidAmount, field, amount)
	case !amount.Equal(amount.Round(2)):
		return fmt.Errorf("%w: %s=%s has more than 2 decimal places", ErrInvalidAmount, field, amount)
	case amount.GreaterThanOrEqual(maxAmount):
		return fmt.Errorf("%w: %s=%s is too large", ErrInvalidAmount, field, amount)
	default:
		return nil
	}
}
