package handler

import (
	"context"

	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/hrmsv1"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ hrmsv1.PayrollServiceServer = (*PayrollGrpcHandler)(nil)

// PayrollGrpcHandler は PayrollService の gRPC 実装です。
type PayrollGrpcHandler struct {
	svc payroll.UseCase
}

// NewPayrollGrpcHandler は PayrollGrpcHandler を生成します。
func NewPayrollGrpcHandler(svc payroll.UseCase) *PayrollGrpcHandler {
	return &PayrollGrpcHandler{svc: svc}
}

// UpsertSalary は (社員, 月) の給与を登録または上書きします。
func (h *PayrollGrpcHandler) UpsertSalary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	base, ok, err := decimalField(req, "base_salary")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "base_salary is required")
	}
	bonus, _, err := decimalField(req, "bonus")
	if err != nil {
		return nil, err
	}
	deductions, _, err := decimalField(req, "deductions")
	if err != nil {
		return nil, err
	}

	result, err := h.svc.UpsertSalary(ctx, payroll.UpsertSalaryInput{
		EmployeeID: stringField(req, "employee_id"),
		Month:      stringField(req, "month"),
		BaseSalary: base,
		Bonus:      bonus,
		Deductions: deductions,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"salary":  salaryFields(result.Record),
		"created": result.Created,
	})
}

// PatchSalary は指定された金額のみを更新します。
func (h *PayrollGrpcHandler) PatchSalary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	in := payroll.PatchSalaryInput{ID: stringField(req, "id")}
	var err error
	if in.BaseSalary, err = optionalDecimal(req, "base_salary"); err != nil {
		return nil, err
	}
	if in.Bonus, err = optionalDecimal(req, "bonus"); err != nil {
		return nil, err
	}
	if in.Deductions, err = optionalDecimal(req, "deductions"); err != nil {
		return nil, err
	}

	updated, err := h.svc.PatchSalary(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"salary": salaryFields(updated)})
}

// GetSalary は給与記録を 1 件取得します。
func (h *PayrollGrpcHandler) GetSalary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	found, err := h.svc.GetSalary(ctx, payroll.GetSalaryInput{ID: stringField(req, "id")})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"salary": salaryFields(found)})
}

// DeleteSalary は給与記録を削除します。
func (h *PayrollGrpcHandler) DeleteSalary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	if err := h.svc.DeleteSalary(ctx, payroll.DeleteSalaryInput{ID: stringField(req, "id")}); err != nil {
		return nil, toStatusError(err)
	}

	return &structpb.Struct{}, nil
}

// ListByEmployee は社員の給与記録を月の降順で返します。
func (h *PayrollGrpcHandler) ListByEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	records, err := h.svc.ListByEmployee(ctx, payroll.ListByEmployeeInput{EmployeeID: stringField(req, "employee_id")})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"salaries": listOf(records, salaryFields)})
}

// ListByMonth は指定月の給与記録を社員名付きで返します。
func (h *PayrollGrpcHandler) ListByMonth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	records, err := h.svc.ListByMonth(ctx, payroll.ListByMonthInput{Month: stringField(req, "month")})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"salaries": listOf(records, salaryFields)})
}

// MonthSummary は月次の給与集計を返します。
func (h *PayrollGrpcHandler) MonthSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	summary, err := h.svc.MonthSummary(ctx, payroll.MonthSummaryInput{Month: stringField(req, "month")})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"month":             summary.Month,
		"total_employees":   summary.TotalEmployees,
		"total_base_salary": summary.TotalBaseSalary.InexactFloat64(),
		"total_bonus":       summary.TotalBonus.InexactFloat64(),
		"total_deductions":  summary.TotalDeductions.InexactFloat64(),
		"total_net_salary":  summary.TotalNetSalary.InexactFloat64(),
	})
}
