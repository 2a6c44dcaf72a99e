package payroll

import "context"

// Repository は給与記録の永続化を行うインターフェースです。
type Repository interface {
	// Upsert は (employee_id, month) が一致する記録があれば金額と updated_at を上書きし、
	// なければ新規作成します。2 つ目の戻り値は新規作成だったかどうかです。
	Upsert(ctx context.Context, record *SalaryRecord) (*SalaryRecord, bool, error)
	FindByID(ctx context.Context, id string) (*SalaryRecord, error)
	Update(ctx context.Context, record *SalaryRecord) (*SalaryRecord, error)
	Delete(ctx context.Context, id string) error
	// ListByEmployee は month の降順で返します。
	ListByEmployee(ctx context.Context, employeeID string) ([]*SalaryRecord, error)
	// ListByMonth は created_at の昇順で返します。
	ListByMonth(ctx context.Context, month string) ([]*SalaryRecord, error)
	DeleteAll(ctx context.Context) (int64, error)
}
