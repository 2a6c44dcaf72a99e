package event

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Type はドメインイベントの種別です。
type Type string

const (
	TypeEmployeeAdded     Type = "employee.added"
	TypeEmployeeRemoved   Type = "employee.removed"
	TypeAttendanceMarked  Type = "attendance.marked"
	TypeAttendanceUpdated Type = "attendance.updated"
	TypeSalaryUpserted    Type = "salary.upserted"
	TypeSalaryPatched     Type = "salary.patched"
	TypeSalaryDeleted     Type = "salary.deleted"
)

// Event はコミット済みの変更を外部へ通知するためのメッセージです。
type Event struct {
	Type       Type           `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Publisher はイベント配信先の抽象です。
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop は何も配信しない Publisher です。
type Noop struct{}

// Publish は常に nil を返します。
func (Noop) Publish(context.Context, Event) error {
	return nil
}

// Emit は e を配信します。配信に失敗しても呼び出し元の処理結果は変えず、警告ログのみ残します。
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "event publish failed", "type", string(e.Type), "key", e.Key, "error", err)
	}
}

// Fanout は複数の Publisher へ順に配信します。途中で失敗しても残りへの配信は続けます。
type Fanout []Publisher

// Publish はすべての配信先へ e を送り、失敗をまとめて返します。
func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
