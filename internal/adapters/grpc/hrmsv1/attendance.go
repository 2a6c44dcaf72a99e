package hrmsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const AttendanceServiceName = "hrms.v1.AttendanceService"

// AttendanceServiceServer は勤怠台帳サービスのサーバー側インターフェースです。
type AttendanceServiceServer interface {
	MarkAttendance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListByEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRecent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TodayStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// AttendanceService_ServiceDesc は hrms.v1.AttendanceService の ServiceDesc です。
var AttendanceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AttendanceServiceName,
	HandlerType: (*AttendanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AttendanceServiceName, "MarkAttendance", AttendanceServiceServer.MarkAttendance),
		unary(AttendanceServiceName, "UpdateStatus", AttendanceServiceServer.UpdateStatus),
		unary(AttendanceServiceName, "ListByEmployee", AttendanceServiceServer.ListByEmployee),
		unary(AttendanceServiceName, "ListRecent", AttendanceServiceServer.ListRecent),
		unary(AttendanceServiceName, "TodayStats", AttendanceServiceServer.TodayStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

// RegisterAttendanceServiceServer は srv を s へ登録します。
func RegisterAttendanceServiceServer(s grpc.ServiceRegistrar, srv AttendanceServiceServer) {
	s.RegisterService(&AttendanceService_ServiceDesc, srv)
}

// AttendanceServiceClient は hrms.v1.AttendanceService のクライアントです。
type AttendanceServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAttendanceServiceClient(cc grpc.ClientConnInterface) *AttendanceServiceClient {
	return &AttendanceServiceClient{cc: cc}
}

func (c *AttendanceServiceClient) MarkAttendance(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(AttendanceServiceName, "MarkAttendance"), in, opts...)
}

func (c *AttendanceServiceClient) UpdateStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(AttendanceServiceName, "UpdateStatus"), in, opts...)
}

func (c *AttendanceServiceClient) ListByEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(AttendanceServiceName, "ListByEmployee"), in, opts...)
}

func (c *AttendanceServiceClient) ListRecent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(AttendanceServiceName, "ListRecent"), in, opts...)
}

func (c *AttendanceServiceClient) TodayStats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(AttendanceServiceName, "TodayStats"), in, opts...)
}
