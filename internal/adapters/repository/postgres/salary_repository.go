package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	pgdb "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	salaryEmployeeMonthKey = "salary_records_employee_id_month_key"
	salaryAmountsCheck     = "salary_records_amounts_check"
	salaryMonthCheck       = "salary_records_month_format_check"
)

// 金額はテキストで読み書きし decimal へ変換する。
const salaryColumns = `id::text, employee_id, month, base_salary::text, bonus::text, deductions::text, created_at, updated_at`

// SalaryRepository は PostgreSQL を利用した給与台帳の実装です。
type SalaryRepository struct {
	pool pgdb.Queryer
}

// NewSalaryRepository は SalaryRepository を生成します。
func NewSalaryRepository(pool pgdb.Queryer) *SalaryRepository {
	return &SalaryRepository{pool: pool}
}

// Upsert は INSERT ... ON CONFLICT で (employee_id, month) 単位の作成または上書きを 1 文で行います。
// 上書き時は id と created_at を維持します。
func (r *SalaryRepository) Upsert(ctx context.Context, rec *payroll.SalaryRecord) (*payroll.SalaryRecord, bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO salary_records (employee_id, month, base_salary, bonus, deductions, created_at, updated_at)
        VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6, $7)
        ON CONFLICT ON CONSTRAINT `+salaryEmployeeMonthKey+` DO UPDATE
           SET base_salary = EXCLUDED.base_salary,
               bonus = EXCLUDED.bonus,
               deductions = EXCLUDED.deductions,
               updated_at = EXCLUDED.updated_at
        RETURNING `+salaryColumns+`, (xmax = 0) AS inserted`,
		rec.EmployeeID,
		rec.Month,
		rec.BaseSalary.String(),
		rec.Bonus.String(),
		rec.Deductions.String(),
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	var inserted bool
	saved, err := scanSalary(row, &inserted)
	if err != nil {
		return nil, false, translateSalaryPgError(err)
	}
	return saved, inserted, nil
}

// FindByID は ID で給与記録を取得します。
func (r *SalaryRepository) FindByID(ctx context.Context, id string) (*payroll.SalaryRecord, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+salaryColumns+`
          FROM salary_records
         WHERE id = $1::uuid
    `, id)

	found, err := scanSalary(row)
	if err != nil {
		return nil, withSalaryID(translateSalaryPgError(err), id)
	}
	return found, nil
}

// Update は金額と updated_at を更新します。
func (r *SalaryRepository) Update(ctx context.Context, rec *payroll.SalaryRecord) (*payroll.SalaryRecord, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE salary_records
           SET base_salary = $1::numeric,
               bonus = $2::numeric,
               deductions = $3::numeric,
               updated_at = $4
         WHERE id = $5::uuid
        RETURNING `+salaryColumns,
		rec.BaseSalary.String(),
		rec.Bonus.String(),
		rec.Deductions.String(),
		rec.UpdatedAt,
		rec.ID,
	)

	updated, err := scanSalary(row)
	if err != nil {
		return nil, withSalaryID(translateSalaryPgError(err), rec.ID)
	}
	return updated, nil
}

// Delete は給与記録を 1 件削除します。
func (r *SalaryRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM salary_records WHERE id = $1::uuid`, id)
	if err != nil {
		return translateSalaryPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id=%q", payroll.ErrSalaryNotFound, id)
	}
	return nil
}

// ListByEmployee は社員の給与記録を月の降順で返します。
func (r *SalaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*payroll.SalaryRecord, error) {
	return r.list(ctx, `
        SELECT `+salaryColumns+`
          FROM salary_records
         WHERE employee_id = $1
         ORDER BY month DESC
    `, employeeID)
}

// ListByMonth は指定月の給与記録を作成順に返します。
func (r *SalaryRepository) ListByMonth(ctx context.Context, month string) ([]*payroll.SalaryRecord, error) {
	return r.list(ctx, `
        SELECT `+salaryColumns+`
          FROM salary_records
         WHERE month = $1
         ORDER BY month, created_at, id
    `, month)
}

// DeleteAll は全給与記録を削除し、削除件数を返します。保守用です。
func (r *SalaryRepository) DeleteAll(ctx context.Context) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM salary_records`)
	if err != nil {
		return 0, translateSalaryPgError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *SalaryRepository) list(ctx context.Context, query string, args ...any) ([]*payroll.SalaryRecord, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateSalaryPgError(err)
	}
	defer rows.Close()

	records := make([]*payroll.SalaryRecord, 0)
	for rows.Next() {
		rec, err := scanSalary(rows)
		if err != nil {
			return nil, translateSalaryPgError(err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, translateSalaryPgError(err)
	}

	return records, nil
}

// scanSalary は salaryColumns の順に読み取ります。extra は末尾の追加列の格納先です。
func scanSalary(row pgx.Row, extra ...any) (*payroll.SalaryRecord, error) {
	var (
		id         string
		employeeID string
		month      string
		baseRaw    string
		bonusRaw   string
		deductRaw  string
		createdAt  time.Time
		updatedAt  time.Time
	)

	dest := append([]any{&id, &employeeID, &month, &baseRaw, &bonusRaw, &deductRaw, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrSalaryNotFound
		}
		return nil, err
	}

	base, err := decimal.NewFromString(baseRaw)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse base_salary %q: %w", baseRaw, err)
	}
	bonus, err := decimal.NewFromString(bonusRaw)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse bonus %q: %w", bonusRaw, err)
	}
	deductions, err := decimal.NewFromString(deductRaw)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse deductions %q: %w", deductRaw, err)
	}

	return &payroll.SalaryRecord{
		ID:         id,
		EmployeeID: employeeID,
		Month:      month,
		BaseSalary: base,
		Bonus:      bonus,
		Deductions: deductions,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func translateSalaryPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolationCode {
		switch pgErr.ConstraintName {
		case salaryAmountsCheck:
			return payroll.ErrInvalidAmount
		case salaryMonthCheck:
			return payroll.ErrInvalidMonth
		}
	}

	return err
}

func withSalaryID(err error, id string) error {
	if errors.Is(err, payroll.ErrSalaryNotFound) {
		return fmt.Errorf("%w: id=%q", err, id)
	}
	return err
}
