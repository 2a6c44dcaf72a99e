package hrmsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const PayrollServiceName = "hrms.v1.PayrollService"

// PayrollServiceServer は給与台帳サービスのサーバー側インターフェースです。
type PayrollServiceServer interface {
	UpsertSalary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PatchSalary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSalary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSalary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListByEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListByMonth(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MonthSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// PayrollService_ServiceDesc は hrms.v1.PayrollService の ServiceDesc です。
var PayrollService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PayrollServiceName,
	HandlerType: (*PayrollServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(PayrollServiceName, "UpsertSalary", PayrollServiceServer.UpsertSalary),
		unary(PayrollServiceName, "PatchSalary", PayrollServiceServer.PatchSalary),
		unary(PayrollServiceName, "GetSalary", PayrollServiceServer.GetSalary),
		unary(PayrollServiceName, "DeleteSalary", PayrollServiceServer.DeleteSalary),
		unary(PayrollServiceName, "ListByEmployee", PayrollServiceServer.ListByEmployee),
		unary(PayrollServiceName, "ListByMonth", PayrollServiceServer.ListByMonth),
		unary(PayrollServiceName, "MonthSummary", PayrollServiceServer.MonthSummary),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

// RegisterPayrollServiceServer は srv を s へ登録します。
func RegisterPayrollServiceServer(s grpc.ServiceRegistrar, srv PayrollServiceServer) {
	s.RegisterService(&PayrollService_ServiceDesc, srv)
}

// PayrollServiceClient は hrms.v1.PayrollService のクライアントです。
type PayrollServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPayrollServiceClient(cc grpc.ClientConnInterface) *PayrollServiceClient {
	return &PayrollServiceClient{cc: cc}
}

func (c *PayrollServiceClient) UpsertSalary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(PayrollServiceName, "UpsertSalary"), in, opts...)
}

func (c *PayrollServiceClient) PatchSalary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(PayrollServiceName, "PatchSalary"), in, opts...)
}

func (c *PayrollServiceClient) GetSalary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(PayrollServiceName, "GetSalary"), in, opts...)
}

func (c *PayrollServiceClient) DeleteSalary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(PayrollServiceName, "DeleteSalary"), in, opts...)
}

func (c *PayrollServiceClient) ListByEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(PayrollServiceName, "ListByEmployee"), in, opts...)
}

func (c *PayrollServiceClient) ListByMonth(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(PayrollServiceName, "ListByMonth"), in, opts...)
}

func (c *PayrollServiceClient) MonthSummary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(PayrollServiceName, "MonthSummary"), in, opts...)
}
