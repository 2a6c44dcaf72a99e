package hello

import (
	"context"
	"errors"
	"testing"
)

func TestServiceSayHello(t *testing.T) {
	t.Parallel()

	svc := NewService()
	msg, err := svc.SayHello(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg != BannerMessage {
		t.Fatalf("expected %q, got %q", BannerMessage, msg)
	}
}

func TestServiceSayHello_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewService().SayHello(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
