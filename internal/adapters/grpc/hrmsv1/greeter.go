package hrmsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const GreeterServiceName = "hrms.v1.GreeterService"

// GreeterServiceServer は稼働確認サービスのサーバー側インターフェースです。
type GreeterServiceServer interface {
	SayHello(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// GreeterService_ServiceDesc は hrms.v1.GreeterService の ServiceDesc です。
var GreeterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: GreeterServiceName,
	HandlerType: (*GreeterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(GreeterServiceName, "SayHello", GreeterServiceServer.SayHello),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

// RegisterGreeterServiceServer は srv を s へ登録します。
func RegisterGreeterServiceServer(s grpc.ServiceRegistrar, srv GreeterServiceServer) {
	s.RegisterService(&GreeterService_ServiceDesc, srv)
}

// GreeterServiceClient は hrms.v1.GreeterService のクライアントです。
type GreeterServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGreeterServiceClient(cc grpc.ClientConnInterface) *GreeterServiceClient {
	return &GreeterServiceClient{cc: cc}
}

func (c *GreeterServiceClient) SayHello(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, fullMethodName(GreeterServiceName, "SayHello"), in, opts...)
}
