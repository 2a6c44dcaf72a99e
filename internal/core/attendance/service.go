package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/event"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// EmployeeDirectory は社員の存在確認に使う社員名簿への依存です。
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, in directory.GetEmployeeInput) (*directory.Employee, error)
}

const (
	DefaultRecentLimit = 100
	MaxRecentLimit     = 500
)

// UseCase は勤怠ユースケースの公開インターフェースです。
type UseCase interface {
	MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Record, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (*Record, error)
	ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*Record, error)
	ListRecent(ctx context.Context, in ListRecentInput) ([]*Record, error)
	TodayStats(ctx context.Context) (*TodayStats, error)
}

// Service は勤怠台帳のユースケースをまとめます。
type Service struct {
	repo      Repository
	employees EmployeeDirectory
	clock     Clock
	tx        TransactionManager
	events    event.Publisher
	loc       *time.Location
}

// NewService は Service を生成します。loc は「本日」の判定に使うタイムゾーンで、nil の場合は UTC です。
func NewService(repo Repository, employees EmployeeDirectory, clock Clock, tx TransactionManager, events event.Publisher, loc *time.Location) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if events == nil {
		events = event.Noop{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, employees: employees, clock: clock, tx: tx, events: events, loc: loc}
}

// MarkAttendanceInput は勤怠登録時の入力です。DateValue が指定されていれば Date より優先します。
type MarkAttendanceInput struct {
	EmployeeID string
	Date       string
	DateValue  *time.Time
	Status     Status
}

// UpdateStatusInput は勤怠状態の更新入力です。
type UpdateStatusInput struct {
	ID     string
	Status Status
}

// ListByEmployeeInput は社員単位の一覧取得入力です。
type ListByEmployeeInput struct {
	EmployeeID string
}

// ListRecentInput は全社員横断の最新一覧取得入力です。Limit が 0 以下なら既定値を使います。
type ListRecentInput struct {
	Limit int
}

// MarkAttendance は社員の 1 日分の勤怠を登録します。
func (s *Service) MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Record, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	if !isValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: status=%q", ErrInvalidStatus, in.Status)
	}

	date, err := CanonicalDate(in.DateValue, in.Date)
	if err != nil {
		return nil, err
	}

	var created *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.employees.GetEmployee(txCtx, directory.GetEmployeeInput{EmployeeID: employeeID}); err != nil {
			return err
		}

		existing, err := s.repo.FindByEmployeeAndDate(txCtx, employeeID, date)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: employee_id=%q date=%q", ErrAlreadyMarked, employeeID, date)
		}

		result, err := s.repo.Create(txCtx, &Record{
			EmployeeID: employeeID,
			Date:       date,
			Status:     in.Status,
			Timestamp:  s.clock.Now(),
		})
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	event.Emit(ctx, s.events, event.Event{
		Type:       event.TypeAttendanceMarked,
		Key:        created.ID,
		OccurredAt: created.Timestamp,
		Payload: map[string]any{
			"employee_id": created.EmployeeID,
			"date":        created.Date,
			"status":      string(created.Status),
		},
	})

	return created, nil
}

// UpdateStatus は勤怠の状態のみを上書きします。日付・社員・登録時刻は変更しません。
func (s *Service) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*Record, error) {
	id, err := normalizeRecordID(in.ID)
	if err != nil {
		return nil, err
	}

	if !isValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: status=%q", ErrInvalidStatus, in.Status)
	}

	var updated *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.UpdateStatus(txCtx, id, in.Status)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	event.Emit(ctx, s.events, event.Event{
		Type:       event.TypeAttendanceUpdated,
		Key:        updated.ID,
		OccurredAt: s.clock.Now(),
		Payload: map[string]any{
			"employee_id": updated.EmployeeID,
			"date":        updated.Date,
			"status":      string(updated.Status),
		},
	})

	return updated, nil
}

// ListByEmployee は社員の勤怠記録をすべて返します。
func (s *Service) ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*Record, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		records = result
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

// ListRecent は全社員の勤怠を日付の新しい順に最大 Limit 件返します。
func (s *Service) ListRecent(ctx context.Context, in ListRecentInput) ([]*Record, error) {
	limit, err := normalizeLimit(in.Limit)
	if err != nil {
		return nil, err
	}

	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListRecent(txCtx, limit)
		if err != nil {
			return err
		}
		records = result
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

// TodayStats は本日分の勤怠を Present / Absent で集計します。それ以外の状態は数えません。
func (s *Service) TodayStats(ctx context.Context) (*TodayStats, error) {
	today := s.clock.Now().In(s.loc).Format(DateLayout)

	stats := &TodayStats{Date: today}
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		present, err := s.repo.CountByDateAndStatus(txCtx, today, StatusPresent)
		if err != nil {
			return err
		}
		absent, err := s.repo.CountByDateAndStatus(txCtx, today, StatusAbsent)
		if err != nil {
			return err
		}
		stats.Present = present
		stats.Absent = absent
		return nil
	}); err != nil {
		return nil, err
	}

	stats.TotalMarked = stats.Present + stats.Absent
	return stats, nil
}

func normalizeRecordID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: id=%q", ErrInvalidRecordID, raw)
	}
	return parsed.String(), nil
}

func normalizeLimit(limit int) (int, error) {
	if limit <= 0 {
		return DefaultRecentLimit, nil
	}
	if limit > MaxRecentLimit {
		return 0, fmt.Errorf("%w: limit=%d", ErrInvalidLimit, limit)
	}
	return limit, nil
}
