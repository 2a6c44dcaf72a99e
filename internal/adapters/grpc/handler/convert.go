package handler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var errRequestRequired = status.Error(codes.InvalidArgument, "request is required")

func stringField(in *structpb.Struct, key string) string {
	v, ok := in.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

func intField(in *structpb.Struct, key string) (int, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return 0, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || math.IsInf(n.NumberValue, 0) || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", key)
	}
	return int(n.NumberValue), nil
}

// decimalField は数値または文字列の金額を読み取ります。キーがなければ ok=false です。
func decimalField(in *structpb.Struct, key string) (value decimal.Decimal, ok bool, err error) {
	v, present := in.GetFields()[key]
	if !present {
		return decimal.Zero, false, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		f := kind.NumberValue
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "%s must be a finite number", key)
		}
		return decimal.NewFromFloat(f), true, nil
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(strings.TrimSpace(kind.StringValue))
		if err != nil {
			return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "%s must be a decimal number", key)
		}
		return d, true, nil
	case *structpb.Value_NullValue:
		return decimal.Zero, false, nil
	default:
		return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "%s must be a decimal number", key)
	}
}

func optionalDecimal(in *structpb.Struct, key string) (*decimal.Decimal, error) {
	d, ok, err := decimalField(in, key)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func employeeFields(e *directory.Employee) map[string]any {
	return map[string]any{
		"employee_id": e.EmployeeID,
		"full_name":   e.FullName,
		"email":       e.Email,
		"department":  e.Department,
		"created_at":  formatTime(e.CreatedAt),
	}
}

func attendanceFields(r *attendance.Record) map[string]any {
	return map[string]any{
		"id":          r.ID,
		"employee_id": r.EmployeeID,
		"date":        r.Date,
		"status":      string(r.Status),
		"timestamp":   formatTime(r.Timestamp),
	}
}

func salaryFields(r *payroll.SalaryRecord) map[string]any {
	fields := map[string]any{
		"id":          r.ID,
		"employee_id": r.EmployeeID,
		"month":       r.Month,
		"base_salary": r.BaseSalary.InexactFloat64(),
		"bonus":       r.Bonus.InexactFloat64(),
		"deductions":  r.Deductions.InexactFloat64(),
		"net_salary":  r.NetSalary().InexactFloat64(),
		"created_at":  formatTime(r.CreatedAt),
		"updated_at":  formatTime(r.UpdatedAt),
	}
	if r.EmployeeName != "" {
		fields["employee_name"] = r.EmployeeName
	}
	return fields
}

func listOf[T any](items []T, convert func(T) map[string]any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}
