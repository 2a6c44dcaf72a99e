package handler

import (
	"context"

	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/hrmsv1"
	"github.com/ogurasousui/hrms-lite/internal/core/hello"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ hrmsv1.GreeterServiceServer = (*GreeterHandler)(nil)

// GreeterHandler は gRPC 層からユースケースを呼び出すアダプタです。
type GreeterHandler struct {
	greeter hello.Greeter
}

// NewGreeterHandler は GreeterHandler を生成します。
func NewGreeterHandler(g hello.Greeter) *GreeterHandler {
	return &GreeterHandler{greeter: g}
}

// SayHello はユースケースを呼び出し、稼働確認メッセージを含むレスポンスを返します。
func (h *GreeterHandler) SayHello(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	message, err := h.greeter.SayHello(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return newStruct(map[string]any{"message": message})
}
