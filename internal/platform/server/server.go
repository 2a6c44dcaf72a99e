package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/handler"
	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/hrmsv1"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/hello"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services は gRPC で公開するユースケース一式です。
type Services struct {
	Greeter    hello.Greeter
	Directory  directory.UseCase
	Attendance attendance.UseCase
	Payroll    payroll.UseCase
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, svcs Services, opts ...grpc.ServerOption) *Server {
	srv := grpc.NewServer(opts...)

	hrmsv1.RegisterGreeterServiceServer(srv, handler.NewGreeterHandler(svcs.Greeter))
	hrmsv1.RegisterDirectoryServiceServer(srv, handler.NewDirectoryGrpcHandler(svcs.Directory))
	hrmsv1.RegisterAttendanceServiceServer(srv, handler.NewAttendanceGrpcHandler(svcs.Attendance))
	hrmsv1.RegisterPayrollServiceServer(srv, handler.NewPayrollGrpcHandler(svcs.Payroll))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	for _, name := range []string{
		hrmsv1.GreeterServiceName,
		hrmsv1.DirectoryServiceName,
		hrmsv1.AttendanceServiceName,
		hrmsv1.PayrollServiceName,
	} {
		healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。テストでは任意のリスナーを渡せます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
