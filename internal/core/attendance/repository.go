package attendance

import "context"

// Repository は勤怠記録の永続化を行うインターフェースです。
// (employee_id, date) の一意性は永続化層の制約で保証されている前提です。
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Record, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Record, error)
	// ListRecent は日付の降順で最大 limit 件を返します。
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
	CountByDateAndStatus(ctx context.Context, date string, status Status) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}
