package handler

import (
	"context"

	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/hrmsv1"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ hrmsv1.AttendanceServiceServer = (*AttendanceGrpcHandler)(nil)

// AttendanceGrpcHandler は AttendanceService の gRPC 実装です。
type AttendanceGrpcHandler struct {
	svc attendance.UseCase
}

// NewAttendanceGrpcHandler は AttendanceGrpcHandler を生成します。
func NewAttendanceGrpcHandler(svc attendance.UseCase) *AttendanceGrpcHandler {
	return &AttendanceGrpcHandler{svc: svc}
}

// MarkAttendance は勤怠を登録します。
func (h *AttendanceGrpcHandler) MarkAttendance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	status, err := attendance.ParseStatus(stringField(req, "status"))
	if err != nil {
		return nil, toStatusError(err)
	}

	rec, err := h.svc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
		EmployeeID: stringField(req, "employee_id"),
		Date:       stringField(req, "date"),
		Status:     status,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"record": attendanceFields(rec)})
}

// UpdateStatus は勤怠の状態を訂正します。
func (h *AttendanceGrpcHandler) UpdateStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	status, err := attendance.ParseStatus(stringField(req, "status"))
	if err != nil {
		return nil, toStatusError(err)
	}

	rec, err := h.svc.UpdateStatus(ctx, attendance.UpdateStatusInput{
		ID:     stringField(req, "id"),
		Status: status,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"record": attendanceFields(rec)})
}

// ListByEmployee は社員の勤怠を日付の降順で返します。
func (h *AttendanceGrpcHandler) ListByEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	records, err := h.svc.ListByEmployee(ctx, attendance.ListByEmployeeInput{EmployeeID: stringField(req, "employee_id")})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"records": listOf(records, attendanceFields)})
}

// ListRecent は全社員の最新の勤怠を返します。
func (h *AttendanceGrpcHandler) ListRecent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	limit, err := intField(req, "limit")
	if err != nil {
		return nil, err
	}

	records, err := h.svc.ListRecent(ctx, attendance.ListRecentInput{Limit: limit})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"records": listOf(records, attendanceFields)})
}

// TodayStats は当日の勤怠集計を返します。
func (h *AttendanceGrpcHandler) TodayStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	stats, err := h.svc.TodayStats(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"date":         stats.Date,
		"present":      stats.Present,
		"absent":       stats.Absent,
		"total_marked": stats.TotalMarked,
	})
}
