package handler

import (
	"github.com/ogurasousui/hrms-lite/internal/adapters/errclass"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	if err == nil {
		return nil
	}

	switch errclass.Classify(err) {
	case errclass.KindInvalidArgument:
		return status.Error(codes.InvalidArgument, err.Error())
	case errclass.KindConflict:
		return status.Error(codes.AlreadyExists, err.Error())
	case errclass.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
