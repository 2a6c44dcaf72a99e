// Package payslip は給与記録を PDF の給与明細に変換します。
package payslip

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	"github.com/shopspring/decimal"
)

// Payslip は明細 1 枚分の入力です。
type Payslip struct {
	EmployeeID   string
	EmployeeName string
	Email        string
	Department   string
	Record       *payroll.SalaryRecord
}

// Filename はダウンロード時のファイル名を返します。
func Filename(rec *payroll.SalaryRecord) string {
	return fmt.Sprintf("payslip-%s-%s.pdf", rec.EmployeeID, rec.Month)
}

// Render は A4 縦 1 ページの給与明細を w へ書き出します。
func Render(w io.Writer, p Payslip) error {
	if p.Record == nil {
		return fmt.Errorf("payslip: salary record is required")
	}

	name := p.EmployeeName
	if name == "" {
		name = payroll.PlaceholderEmployeeName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", p.Record.EmployeeID, p.Record.Month), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", name, p.Record.EmployeeID))
	pdf.Ln(7)
	if p.Email != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Email: %s", p.Email))
		pdf.Ln(7)
	}
	if p.Department != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", p.Department))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", p.Record.Month))
	pdf.Ln(10)

	rows := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Base salary", p.Record.BaseSalary},
		{"Bonus", p.Record.Bonus},
		{"Deductions", p.Record.Deductions},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, row.amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, p.Record.NetSalary().StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("payslip: render pdf: %w", err)
	}
	return nil
}
