package directory

import (
	"context"
	"iter"
)

// Repository は社員名簿の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, employeeID string) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	// List は呼び出すたびに問い合わせ直す遅延シーケンスを返します。
	List(ctx context.Context) iter.Seq2[*Employee, error]
	DeleteAll(ctx context.Context) (int64, error)
}
