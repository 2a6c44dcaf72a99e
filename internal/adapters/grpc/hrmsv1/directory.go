package hrmsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const DirectoryServiceName = "hrms.v1.DirectoryService"

// DirectoryServiceServer は社員名簿サービスのサーバー側インターフェースです。
type DirectoryServiceServer interface {
	AddEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// DirectoryService_ServiceDesc は hrms.v1.DirectoryService の ServiceDesc です。
var DirectoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DirectoryServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DirectoryServiceName, "AddEmployee", DirectoryServiceServer.AddEmployee),
		unary(DirectoryServiceName, "ListEmployees", DirectoryServiceServer.ListEmployees),
		unary(DirectoryServiceName, "GetEmployee", DirectoryServiceServer.GetEmployee),
		unary(DirectoryServiceName, "RemoveEmployee", DirectoryServiceServer.RemoveEmployee),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

// RegisterDirectoryServiceServer は srv を s へ登録します。
func RegisterDirectoryServiceServer(s grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	s.RegisterService(&DirectoryService_ServiceDesc, srv)
}

// DirectoryServiceClient は hrms.v1.DirectoryService のクライアントです。
type DirectoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectoryServiceClient(cc grpc.ClientConnInterface) *DirectoryServiceClient {
	return &DirectoryServiceClient{cc: cc}
}

func (c *DirectoryServiceClient) AddEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(DirectoryServiceName, "AddEmployee"), in, opts...)
}

func (c *DirectoryServiceClient) ListEmployees(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(DirectoryServiceName, "ListEmployees"), in, opts...)
}

func (c *DirectoryServiceClient) GetEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(DirectoryServiceName, "GetEmployee"), in, opts...)
}

func (c *DirectoryServiceClient) RemoveEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(DirectoryServiceName, "RemoveEmployee"), in, opts...)
}
