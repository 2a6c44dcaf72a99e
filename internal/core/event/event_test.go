package event

import (
	"context"
	"errors"
	"testing"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.events = append(p.events, e)
	return p.err
}

func TestEmit_DeliversEvent(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	Emit(context.Background(), pub, Event{Type: TypeEmployeeAdded, Key: "E001"})

	if len(pub.events) != 1 || pub.events[0].Key != "E001" {
		t.Fatalf("expected one event for E001, got %+v", pub.events)
	}
}

func TestEmit_SwallowsPublishError(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{err: errors.New("broker down")}
	Emit(context.Background(), pub, Event{Type: TypeSalaryDeleted, Key: "s-1"})

	if len(pub.events) != 1 {
		t.Fatalf("expected publish attempt, got %d", len(pub.events))
	}
}

func TestEmit_NilPublisher(t *testing.T) {
	t.Parallel()

	Emit(context.Background(), nil, Event{Type: TypeSalaryPatched})
	if err := (Noop{}).Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("noop publisher returned error: %v", err)
	}
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	t.Parallel()

	broken := &recordingPublisher{err: errors.New("broker down")}
	healthy := &recordingPublisher{}
	fan := Fanout{broken, nil, healthy}

	err := fan.Publish(context.Background(), Event{Type: TypeAttendanceMarked, Key: "rec-1"})
	if !errors.Is(err, broken.err) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(healthy.events) != 1 {
		t.Fatalf("expected healthy publisher to receive event despite earlier failure")
	}

	if err := (Fanout{healthy}).Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
