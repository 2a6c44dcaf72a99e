package directory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/mail"
	"strings"
	"time"

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

// UseCase は社員名簿ユースケースの公開インターフェースです。
type UseCase interface {
	AddEmployee(ctx context.Context, in AddEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context) iter.Seq2[*Employee, error]
	RemoveEmployee(ctx context.Context, in RemoveEmployeeInput) error
}

// Service は社員名簿に関するユースケースをまとめます。
type Service struct {
	repo   Repository
	clock  Clock
	tx     TransactionManager
	events event.Publisher
}

// NewService は Service を生成します。clock, tx, events は nil の場合デフォルト実装を使います。
func NewService(repo Repository, clock Clock, tx TransactionManager, events event.Publisher) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if events == nil {
		events = event.Noop{}
	}
	return &Service{repo: repo, clock: clock, tx: tx, events: events}
}

// AddEmployeeInput は社員登録時の入力です。
type AddEmployeeInput struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	EmployeeID string
}

// RemoveEmployeeInput は社員削除時の入力です。
type RemoveEmployeeInput struct {
	EmployeeID string
}

// AddEmployee は社員を登録します。社員 ID またはメールアドレスが既存と一致する場合は登録しません。
func (s *Service) AddEmployee(ctx context.Context, in AddEmployeeInput) (*Employee, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, ErrInvalidFullName
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	department := strings.TrimSpace(in.Department)
	if department == "" {
		return nil, ErrInvalidDepartment
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmployeeIDNotExists(txCtx, employeeID); err != nil {
			return err
		}
		if err := s.ensureEmailNotExists(txCtx, email); err != nil {
			return err
		}

		result, err := s.repo.Create(txCtx, &Employee{
			EmployeeID: employeeID,
			FullName:   fullName,
			Email:      email,
			Department: department,
			CreatedAt:  s.clock.Now(),
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
		Type:       event.TypeEmployeeAdded,
		Key:        created.EmployeeID,
		OccurredAt: created.CreatedAt,
		Payload: map[string]any{
			"full_name":  created.FullName,
			"email":      created.Email,
			"department": created.Department,
		},
	})

	return created, nil
}

// GetEmployee は社員 ID で社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	var found *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByEmployeeID(txCtx, employeeID)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// ListEmployees は全社員を遅延シーケンスで返します。range するたびに再度問い合わせます。
func (s *Service) ListEmployees(ctx context.Context) iter.Seq2[*Employee, error] {
	return s.repo.List(ctx)
}

// RemoveEmployee は社員を 1 件削除します。勤怠・給与レコードは残ります。
func (s *Service) RemoveEmployee(ctx context.Context, in RemoveEmployeeInput) error {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return err
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, employeeID)
	}); err != nil {
		return err
	}

	event.Emit(ctx, s.events, event.Event{
		Type:       event.TypeEmployeeRemoved,
		Key:        employeeID,
		OccurredAt: s.clock.Now(),
	})
	return nil
}

// Collect は遅延シーケンスをスライスへ展開します。途中でエラーが出た場合はそこで打ち切ります。
func Collect(seq iter.Seq2[*Employee, error]) ([]*Employee, error) {
	employees := make([]*Employee, 0)
	for emp, err := range seq {
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func (s *Service) ensureEmployeeIDNotExists(ctx context.Context, employeeID string) error {
	emp, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return fmt.Errorf("%w: employee_id=%q", ErrEmployeeIDAlreadyExists, employeeID)
	}
	return nil
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	emp, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return fmt.Errorf("%w: email=%q", ErrEmailAlreadyExists, email)
	}
	return nil
}

func normalizeEmployeeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmployeeID
	}
	return trimmed, nil
}

// normalizeEmail は表示名付きの形式を受け付けず、アドレス単体のみ許可します。
// 大文字小文字はそのまま保持します。
func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Name != "" || addr.Address != trimmed {
		return "", fmt.Errorf("%w: email=%q", ErrInvalidEmail, trimmed)
	}

	return addr.Address, nil
}
