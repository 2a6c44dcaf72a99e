package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/hrms-lite/internal/adapters/payslip"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	"github.com/shopspring/decimal"
)

type salaryResponse struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name,omitempty"`
	Month        string      `json:"month"`
	BaseSalary   json.Number `json:"base_salary"`
	Bonus        json.Number `json:"bonus"`
	Deductions   json.Number `json:"deductions"`
	NetSalary    json.Number `json:"net_salary"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type upsertSalaryResponse struct {
	salaryResponse
	Created bool `json:"created"`
}

type monthSummaryResponse struct {
	Month           string      `json:"month"`
	TotalEmployees  int         `json:"total_employees"`
	TotalBaseSalary json.Number `json:"total_base_salary"`
	TotalBonus      json.Number `json:"total_bonus"`
	TotalDeductions json.Number `json:"total_deductions"`
	TotalNetSalary  json.Number `json:"total_net_salary"`
}

// 金額は数値・文字列のどちらの JSON 表現でも受け付けます。
type upsertSalaryPayload struct {
	EmployeeID string           `json:"employee_id"`
	Month      string           `json:"month"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
	Bonus      *decimal.Decimal `json:"bonus"`
	Deductions *decimal.Decimal `json:"deductions"`
}

type patchSalaryPayload struct {
	BaseSalary *decimal.Decimal `json:"base_salary"`
	Bonus      *decimal.Decimal `json:"bonus"`
	Deductions *decimal.Decimal `json:"deductions"`
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toSalaryResponse(rec *payroll.SalaryRecord) salaryResponse {
	return salaryResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Month:        rec.Month,
		BaseSalary:   amount(rec.BaseSalary),
		Bonus:        amount(rec.Bonus),
		Deductions:   amount(rec.Deductions),
		NetSalary:    amount(rec.NetSalary()),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toSalaryResponses(records []*payroll.SalaryRecord) []salaryResponse {
	out := make([]salaryResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toSalaryResponse(rec))
	}
	return out
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

type payrollHandler struct {
	svc       payroll.UseCase
	employees directory.UseCase
}

func newPayrollHandler(svc payroll.UseCase, employees directory.UseCase) *payrollHandler {
	return &payrollHandler{svc: svc, employees: employees}
}

func (h *payrollHandler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.Post("/", h.handleUpsert)
		r.Get("/employee/{employeeID}", h.handleListByEmployee)
		r.Get("/month/{month}", h.handleListByMonth)
		r.Get("/payroll/summary/{month}", h.handleMonthSummary)
		r.Get("/{salaryID}", h.handleGet)
		r.Put("/{salaryID}", h.handlePatch)
		r.Patch("/{salaryID}", h.handlePatch)
		r.Delete("/{salaryID}", h.handleDelete)
		r.Get("/{salaryID}/payslip", h.handlePayslip)
	})
}

func (h *payrollHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var payload upsertSalaryPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, r, "invalid request payload")
		return
	}
	if payload.BaseSalary == nil {
		badRequest(w, r, "base_salary is required")
		return
	}

	result, err := h.svc.UpsertSalary(r.Context(), payroll.UpsertSalaryInput{
		EmployeeID: payload.EmployeeID,
		Month:      payload.Month,
		BaseSalary: *payload.BaseSalary,
		Bonus:      valueOrZero(payload.Bonus),
		Deductions: valueOrZero(payload.Deductions),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := upsertSalaryResponse{salaryResponse: toSalaryResponse(result.Record), Created: result.Created}
	if result.Created {
		created(w, r, body)
		return
	}
	success(w, r, body)
}

func (h *payrollHandler) handlePatch(w http.ResponseWriter, r *http.Request) {
	var payload patchSalaryPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, r, "invalid request payload")
		return
	}

	rec, err := h.svc.PatchSalary(r.Context(), payroll.PatchSalaryInput{
		ID:         chi.URLParam(r, "salaryID"),
		BaseSalary: payload.BaseSalary,
		Bonus:      payload.Bonus,
		Deductions: payload.Deductions,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toSalaryResponse(rec))
}

func (h *payrollHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetSalary(r.Context(), payroll.GetSalaryInput{ID: chi.URLParam(r, "salaryID")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toSalaryResponse(rec))
}

func (h *payrollHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	salaryID := chi.URLParam(r, "salaryID")
	if err := h.svc.DeleteSalary(r.Context(), payroll.DeleteSalaryInput{ID: salaryID}); err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, map[string]string{"message": "salary record deleted", "id": salaryID})
}

func (h *payrollHandler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListByEmployee(r.Context(), payroll.ListByEmployeeInput{EmployeeID: chi.URLParam(r, "employeeID")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toSalaryResponses(records))
}

func (h *payrollHandler) handleListByMonth(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListByMonth(r.Context(), payroll.ListByMonthInput{Month: chi.URLParam(r, "month")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toSalaryResponses(records))
}

func (h *payrollHandler) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.MonthSummary(r.Context(), payroll.MonthSummaryInput{Month: chi.URLParam(r, "month")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, monthSummaryResponse{
		Month:           summary.Month,
		TotalEmployees:  summary.TotalEmployees,
		TotalBaseSalary: amount(summary.TotalBaseSalary),
		TotalBonus:      amount(summary.TotalBonus),
		TotalDeductions: amount(summary.TotalDeductions),
		TotalNetSalary:  amount(summary.TotalNetSalary),
	})
}

// handlePayslip は給与明細 PDF を返します。社員が削除済みの場合はプレースホルダー名で出力します。
func (h *payrollHandler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetSalary(r.Context(), payroll.GetSalaryInput{ID: chi.URLParam(r, "salaryID")})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slip := payslip.Payslip{EmployeeID: rec.EmployeeID, Record: rec}
	emp, err := h.employees.GetEmployee(r.Context(), directory.GetEmployeeInput{EmployeeID: rec.EmployeeID})
	switch {
	case err == nil:
		slip.EmployeeName = emp.FullName
		slip.Email = emp.Email
		slip.Department = emp.Department
	case errors.Is(err, directory.ErrEmployeeNotFound):
		slip.EmployeeName = payroll.PlaceholderEmployeeName
	default:
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := payslip.Render(&buf, slip); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payslip.Filename(rec)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
