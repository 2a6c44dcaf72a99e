// Package maintenance は運用向けのデータ全削除ユースケースを提供します。
package maintenance

import (
	"context"
	"fmt"
)

// Purger はテーブル単位で全件削除できるリポジトリです。
type Purger interface {
	DeleteAll(ctx context.Context) (int64, error)
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// PurgeResult はテーブルごとの削除件数です。
type PurgeResult struct {
	Attendance int64
	Salaries   int64
	Employees  int64
}

// Total は削除件数の合計を返します。
func (r PurgeResult) Total() int64 {
	return r.Attendance + r.Salaries + r.Employees
}

// Service は全削除ユースケースです。
type Service struct {
	attendance Purger
	salaries   Purger
	employees  Purger
	tx         TransactionManager
}

// NewService は Service を生成します。tx が nil の場合はトランザクションを張りません。
func NewService(attendance, salaries, employees Purger, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{attendance: attendance, salaries: salaries, employees: employees, tx: tx}
}

// Purge は勤怠・給与・社員の順に全件を削除します。途中で失敗した場合は何も削除しません。
func (s *Service) Purge(ctx context.Context) (PurgeResult, error) {
	var result PurgeResult
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		steps := []struct {
			name   string
			purger Purger
			count  *int64
		}{
			{"attendance_records", s.attendance, &result.Attendance},
			{"salary_records", s.salaries, &result.Salaries},
			{"employees", s.employees, &result.Employees},
		}

		for _, step := range steps {
			n, err := step.purger.DeleteAll(txCtx)
			if err != nil {
				return fmt.Errorf("maintenance: purge %s: %w", step.name, err)
			}
			*step.count = n
		}
		return nil
	})
	if err != nil {
		return PurgeResult{}, err
	}
	return result, nil
}
