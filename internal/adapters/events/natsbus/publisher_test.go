package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	subject string
	data    []byte
}

type fakeConn struct {
	messages []message
	err      error
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, message{subject: subject, data: data})
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	pub := NewPublisher(conn, "")

	occurred := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	err := pub.Publish(context.Background(), event.Event{
		Type:       event.TypeAttendanceMarked,
		Key:        "E001",
		OccurredAt: occurred,
		Payload:    map[string]any{"date": "2024-02-01", "status": "Present"},
	})
	require.NoError(t, err)
	require.Len(t, conn.messages, 1)
	assert.Equal(t, "hrms.attendance.marked", conn.messages[0].subject)

	var got event.Event
	require.NoError(t, json.Unmarshal(conn.messages[0].data, &got))
	assert.Equal(t, event.TypeAttendanceMarked, got.Type)
	assert.Equal(t, "E001", got.Key)
	assert.True(t, occurred.Equal(got.OccurredAt))
	assert.Equal(t, "Present", got.Payload["status"])
}

func TestPublisher_SubjectPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "corp.hr.salary.deleted", NewPublisher(&fakeConn{}, " corp.hr. ").Subject(event.TypeSalaryDeleted))
	assert.Equal(t, "hrms.employee.added", NewPublisher(&fakeConn{}, "...").Subject(event.TypeEmployeeAdded))
}

func TestPublisher_ConnError(t *testing.T) {
	t.Parallel()

	connErr := errors.New("nats: connection closed")
	pub := NewPublisher(&fakeConn{err: connErr}, "hrms")

	err := pub.Publish(context.Background(), event.Event{Type: event.TypeEmployeeRemoved, Key: "E001"})
	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.Contains(t, err.Error(), "hrms.employee.removed")
}

func TestPublisher_CanceledContext(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPublisher(conn, "hrms").Publish(ctx, event.Event{Type: event.TypeSalaryUpserted})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, conn.messages)
}
