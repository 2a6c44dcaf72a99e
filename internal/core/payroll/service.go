package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/event"
	"github.com/shopspring/decimal"
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

// EmployeeDirectory は存在確認と氏名の補完に使う社員名簿への依存です。
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, in directory.GetEmployeeInput) (*directory.Employee, error)
}

// UseCase は給与ユースケースの公開インターフェースです。
type UseCase interface {
	UpsertSalary(ctx context.Context, in UpsertSalaryInput) (*UpsertResult, error)
	PatchSalary(ctx context.Context, in PatchSalaryInput) (*SalaryRecord, error)
	GetSalary(ctx context.Context, in GetSalaryInput) (*SalaryRecord, error)
	DeleteSalary(ctx context.Context, in DeleteSalaryInput) error
	ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*SalaryRecord, error)
	ListByMonth(ctx context.Context, in ListByMonthInput) ([]*SalaryRecord, error)
	MonthSummary(ctx context.Context, in MonthSummaryInput) (*MonthSummary, error)
}

// Service は給与台帳のユースケースをまとめます。
type Service struct {
	repo      Repository
	employees EmployeeDirectory
	clock     Clock
	tx        TransactionManager
	events    event.Publisher
}

// NewService は Service を生成します。
func NewService(repo Repository, employees EmployeeDirectory, clock Clock, tx TransactionManager, events event.Publisher) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if events == nil {
		events = event.Noop{}
	}
	return &Service{repo: repo, employees: employees, clock: clock, tx: tx, events: events}
}

// UpsertSalaryInput は給与登録の入力です。Bonus と Deductions のゼロ値は 0 として扱います。
type UpsertSalaryInput struct {
	EmployeeID string
	Month      string
	BaseSalary decimal.Decimal
	Bonus      decimal.Decimal
	Deductions decimal.Decimal
}

// PatchSalaryInput は給与の部分更新入力です。nil のフィールドは変更しません。
type PatchSalaryInput struct {
	ID         string
	BaseSalary *decimal.Decimal
	Bonus      *decimal.Decimal
	Deductions *decimal.Decimal
}

// GetSalaryInput は給与記録 1 件取得の入力です。
type GetSalaryInput struct {
	ID string
}

// DeleteSalaryInput は給与記録削除の入力です。
type DeleteSalaryInput struct {
	ID string
}

// ListByEmployeeInput は社員単位の給与一覧取得の入力です。
type ListByEmployeeInput struct {
	EmployeeID string
}

// ListByMonthInput は月単位の給与一覧取得の入力です。Month は YYYY-MM 形式です。
type ListByMonthInput struct {
	Month string
}

// MonthSummaryInput は月次集計の入力です。
type MonthSummaryInput struct {
	Month string
}

// UpsertSalary は (社員, 月) の給与を登録し、既にあれば金額を上書きします。
// 上書き時は ID と created_at を維持し、updated_at のみ更新します。
func (s *Service) UpsertSalary(ctx context.Context, in UpsertSalaryInput) (*UpsertResult, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	month, err := NormalizeMonth(in.Month)
	if err != nil {
		return nil, err
	}

	if err := validateAmounts(in.BaseSalary, in.Bonus, in.Deductions); err != nil {
		return nil, err
	}

	var result *UpsertResult
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.employees.GetEmployee(txCtx, directory.GetEmployeeInput{EmployeeID: employeeID}); err != nil {
			return err
		}

		now := s.clock.Now()
		record, created, err := s.repo.Upsert(txCtx, &SalaryRecord{
			EmployeeID: employeeID,
			Month:      month,
			BaseSalary: in.BaseSalary,
			Bonus:      in.Bonus,
			Deductions: in.Deductions,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return err
		}

		result = &UpsertResult{Record: record, Created: created}
		return nil
	}); err != nil {
		return nil, err
	}

	event.Emit(ctx, s.events, event.Event{
		Type:       event.TypeSalaryUpserted,
		Key:        result.Record.ID,
		OccurredAt: result.Record.UpdatedAt,
		Payload: map[string]any{
			"employee_id": result.Record.EmployeeID,
			"month":       result.Record.Month,
			"net_salary":  result.Record.NetSalary().String(),
			"created":     result.Created,
		},
	})

	return result, nil
}

// PatchSalary は指定された金額のみを更新し、差引支給額は既存値と統合した値から算出します。
// 更新対象が 1 つもない場合は何も変更せずに現在の記録を返します。
func (s *Service) PatchSalary(ctx context.Context, in PatchSalaryInput) (*SalaryRecord, error) {
	id, err := normalizeSalaryID(in.ID)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		name   string
		amount *decimal.Decimal
	}{
		{"base_salary", in.BaseSalary},
		{"bonus", in.Bonus},
		{"deductions", in.Deductions},
	} {
		if f.amount == nil {
			continue
		}
		if err := validateAmount(f.name, *f.amount); err != nil {
			return nil, err
		}
	}

	noop := in.BaseSalary == nil && in.Bonus == nil && in.Deductions == nil

	var patched *SalaryRecord
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if noop {
			patched = current
			return nil
		}

		if in.BaseSalary != nil {
			current.BaseSalary = *in.BaseSalary
		}
		if in.Bonus != nil {
			current.Bonus = *in.Bonus
		}
		if in.Deductions != nil {
			current.Deductions = *in.Deductions
		}
		current.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, current)
		if err != nil {
			return err
		}
		patched = result
		return nil
	}); err != nil {
		return nil, err
	}

	if !noop {
		event.Emit(ctx, s.events, event.Event{
			Type:       event.TypeSalaryPatched,
			Key:        patched.ID,
			OccurredAt: patched.UpdatedAt,
			Payload: map[string]any{
				"employee_id": patched.EmployeeID,
				"month":       patched.Month,
				"net_salary":  patched.NetSalary().String(),
			},
		})
	}

	return patched, nil
}

// GetSalary は ID で給与記録を取得します。
func (s *Service) GetSalary(ctx context.Context, in GetSalaryInput) (*SalaryRecord, error) {
	id, err := normalizeSalaryID(in.ID)
	if err != nil {
		return nil, err
	}

	var found *SalaryRecord
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
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

// DeleteSalary は給与記録を 1 件削除します。
func (s *Service) DeleteSalary(ctx context.Context, in DeleteSalaryInput) error {
	id, err := normalizeSalaryID(in.ID)
	if err != nil {
		return err
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	}); err != nil {
		return err
	}

	event.Emit(ctx, s.events, event.Event{
		Type:       event.TypeSalaryDeleted,
		Key:        id,
		OccurredAt: s.clock.Now(),
	})
	return nil
}

// ListByEmployee は社員の給与記録を月の降順で返します。
func (s *Service) ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*SalaryRecord, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	var records []*SalaryRecord
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

// ListByMonth は指定月の給与記録を社員氏名付きで返します。
// 社員が見つからない記録は PlaceholderEmployeeName で補完します。
func (s *Service) ListByMonth(ctx context.Context, in ListByMonthInput) ([]*SalaryRecord, error) {
	month, err := NormalizeMonth(in.Month)
	if err != nil {
		return nil, err
	}

	var records []*SalaryRecord
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByMonth(txCtx, month)
		if err != nil {
			return err
		}

		names := make(map[string]string, len(result))
		for _, rec := range result {
			name, ok := names[rec.EmployeeID]
			if !ok {
				name, err = s.lookupEmployeeName(txCtx, rec.EmployeeID)
				if err != nil {
					return err
				}
				names[rec.EmployeeID] = name
			}
			rec.EmployeeName = name
		}

		records = result
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

// MonthSummary は指定月の給与を集計します。
func (s *Service) MonthSummary(ctx context.Context, in MonthSummaryInput) (*MonthSummary, error) {
	month, err := NormalizeMonth(in.Month)
	if err != nil {
		return nil, err
	}

	var summary MonthSummary
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		records, err := s.repo.ListByMonth(txCtx, month)
		if err != nil {
			return err
		}
		summary = Summarize(month, records)
		return nil
	}); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (s *Service) lookupEmployeeName(ctx context.Context, employeeID string) (string, error) {
	emp, err := s.employees.GetEmployee(ctx, directory.GetEmployeeInput{EmployeeID: employeeID})
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) || errors.Is(err, directory.ErrInvalidEmployeeID) {
			return PlaceholderEmployeeName, nil
		}
		return "", err
	}
	return emp.FullName, nil
}

func normalizeSalaryID(raw string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: id=%q", ErrInvalidSalaryID, raw)
	}
	return parsed.String(), nil
}

func validateAmounts(base, bonus, deductions decimal.Decimal) error {
	if err := validateAmount("base_salary", base); err != nil {
		return err
	}
	if err := validateAmount("bonus", bonus); err != nil {
		return err
	}
	return validateAmount("deductions", deductions)
}
