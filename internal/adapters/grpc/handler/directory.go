package handler

import (
	"context"

	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/hrmsv1"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ hrmsv1.DirectoryServiceServer = (*DirectoryGrpcHandler)(nil)

// DirectoryGrpcHandler は DirectoryService の gRPC 実装です。
type DirectoryGrpcHandler struct {
	svc directory.UseCase
}

// NewDirectoryGrpcHandler は DirectoryGrpcHandler を生成します。
func NewDirectoryGrpcHandler(svc directory.UseCase) *DirectoryGrpcHandler {
	return &DirectoryGrpcHandler{svc: svc}
}

// AddEmployee は社員を登録します。
func (h *DirectoryGrpcHandler) AddEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	created, err := h.svc.AddEmployee(ctx, directory.AddEmployeeInput{
		EmployeeID: stringField(req, "employee_id"),
		FullName:   stringField(req, "full_name"),
		Email:      stringField(req, "email"),
		Department: stringField(req, "department"),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"employee": employeeFields(created)})
}

// ListEmployees は登録順に全社員を返します。
func (h *DirectoryGrpcHandler) ListEmployees(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	employees, err := directory.Collect(h.svc.ListEmployees(ctx))
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"employees": listOf(employees, employeeFields)})
}

// GetEmployee は社員を 1 件取得します。
func (h *DirectoryGrpcHandler) GetEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	found, err := h.svc.GetEmployee(ctx, directory.GetEmployeeInput{EmployeeID: stringField(req, "employee_id")})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"employee": employeeFields(found)})
}

// RemoveEmployee は社員を削除します。
func (h *DirectoryGrpcHandler) RemoveEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	if err := h.svc.RemoveEmployee(ctx, directory.RemoveEmployeeInput{EmployeeID: stringField(req, "employee_id")}); err != nil {
		return nil, toStatusError(err)
	}

	return &structpb.Struct{}, nil
}
