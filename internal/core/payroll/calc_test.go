package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComputeNet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                    string
		base, bonus, deductions string
		want                    string
	}{
		{"typical", "50000", "5000", "2000", "53000"},
		{"defaults", "42000", "0", "0", "42000"},
		{"negative net is kept", "1000", "0", "2500.50", "-1500.5"},
		{"fractional", "1234.56", "0.44", "0.01", "1234.99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeNet(
				decimal.RequireFromString(tc.base),
				decimal.RequireFromString(tc.bonus),
				decimal.RequireFromString(tc.deductions),
			)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := []*SalaryRecord{
		{EmployeeID: "E001", Month: "2024-02", BaseSalary: decimal.NewFromInt(50000), Bonus: decimal.NewFromInt(5000), Deductions: decimal.NewFromInt(2000)},
		{EmployeeID: "E002", Month: "2024-02", BaseSalary: decimal.NewFromInt(40000), Bonus: decimal.NewFromInt(3000), Deductions: decimal.NewFromInt(2000)},
	}

	summary := Summarize("2024-02", records)

	if summary.TotalEmployees != 2 {
		t.Fatalf("expected 2 employees, got %d", summary.TotalEmployees)
	}
	if !summary.TotalNetSalary.Equal(decimal.NewFromInt(94000)) {
		t.Fatalf("expected total net 94000, got %s", summary.TotalNetSalary)
	}
	if !summary.TotalBaseSalary.Equal(decimal.NewFromInt(90000)) || !summary.TotalBonus.Equal(decimal.NewFromInt(8000)) || !summary.TotalDeductions.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("unexpected totals: %+v", summary)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	summary := Summarize("2030-01", nil)
	if summary.TotalEmployees != 0 || !summary.TotalNetSalary.IsZero() {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestNormalizeMonth(t *testing.T) {
	t.Parallel()

	if got, err := NormalizeMonth(" 2024-02 "); err != nil || got != "2024-02" {
		t.Fatalf("expected 2024-02, got %q (%v)", got, err)
	}
	// 範囲は検証しない
	if _, err := NormalizeMonth("2024-13"); err != nil {
		t.Fatalf("expected format-only validation, got %v", err)
	}
	for _, raw := range []string{"", "2024-2", "2024/02", "2024-02-01", "Feb 2024"} {
		if _, err := NormalizeMonth(raw); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth for %q, got %v", raw, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := validateAmount("bonus", decimal.RequireFromString("10.25")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, raw := range []string{"0", "0.00", "1.500", "999999999999.99"} {
		if err := validateAmount("bonus", decimal.RequireFromString(raw)); err != nil {
			t.Fatalf("unexpected error for %s: %v", raw, err)
		}
	}
	for _, raw := range []string{"-1", "0.001", "1000000000000", "1e20", "1e-5", "-1e20"} {
		if err := validateAmount("bonus", decimal.RequireFromString(raw)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %s, got %v", raw, err)
		}
	}
}

func TestValidateAmount_ExtremeExponentsReturnPromptly(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"1e200000000", "1e-200000000", "0e200000000", "-5e150000000"} {
		done := make(chan error, 1)
		amount := decimal.RequireFromString(raw)
		go func() { done <- validateAmount("base_salary", amount) }()

		select {
		case err := <-done:
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount for %s, got %v", raw, err)
			}
			if len(err.Error()) > 128 {
				t.Fatalf("error message for %s should not render the amount: %d bytes", raw, len(err.Error()))
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("validateAmount(%s) did not return in time", raw)
		}
	}
}
