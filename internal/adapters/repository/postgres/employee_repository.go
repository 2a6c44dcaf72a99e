package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	pgdb "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"

	employeesEmployeeIDKey = "employees_employee_id_key"
	employeesEmailKey      = "employees_email_key"
)

const employeeColumns = `employee_id, full_name, email, department, created_at`

// EmployeeRepository は PostgreSQL を利用した社員名簿の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。一意制約違反は対応する重複エラーへ変換します。
func (r *EmployeeRepository) Create(ctx context.Context, e *directory.Employee) (*directory.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (employee_id, full_name, email, department, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+employeeColumns,
		e.EmployeeID,
		e.FullName,
		e.Email,
		e.Department,
		e.CreatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err, e)
	}
	return created, nil
}

// Delete は社員 ID で社員を 1 件削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		return translateEmployeePgError(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee_id=%q", directory.ErrEmployeeNotFound, employeeID)
	}
	return nil
}

// FindByEmployeeID は社員 ID で社員を取得します。
func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*directory.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE employee_id = $1
         LIMIT 1
    `, employeeID)

	found, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("%w: employee_id=%q", err, employeeID)
		}
		return nil, translateEmployeePgError(err, nil)
	}
	return found, nil
}

// FindByEmail はメールアドレスの完全一致で社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*directory.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE email = $1
         LIMIT 1
    `, email)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err, nil)
	}
	return found, nil
}

// List は登録順に全社員を返す遅延シーケンスです。range のたびにクエリを発行します。
func (r *EmployeeRepository) List(ctx context.Context) iter.Seq2[*directory.Employee, error] {
	return func(yield func(*directory.Employee, error) bool) {
		exec := pgdb.QueryerFromContext(ctx, r.pool)
		rows, err := exec.Query(ctx, `
            SELECT `+employeeColumns+`
              FROM employees
             ORDER BY seq
        `)
		if err != nil {
			yield(nil, translateEmployeePgError(err, nil))
			return
		}
		defer rows.Close()

		for rows.Next() {
			emp, err := scanEmployee(rows)
			if err != nil {
				yield(nil, translateEmployeePgError(err, nil))
				return
			}
			if !yield(emp, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, translateEmployeePgError(err, nil))
		}
	}
}

// DeleteAll は全社員を削除し、削除件数を返します。保守用です。
func (r *EmployeeRepository) DeleteAll(ctx context.Context) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees`)
	if err != nil {
		return 0, translateEmployeePgError(err, nil)
	}
	return tag.RowsAffected(), nil
}

func scanEmployee(row pgx.Row) (*directory.Employee, error) {
	var (
		employeeID string
		fullName   string
		email      string
		department string
		createdAt  time.Time
	)

	if err := row.Scan(&employeeID, &fullName, &email, &department, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, directory.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &directory.Employee{
		EmployeeID: employeeID,
		FullName:   fullName,
		Email:      email,
		Department: department,
		CreatedAt:  createdAt,
	}, nil
}

// translateEmployeePgError は一意制約名から重複した項目を判定します。
// attempted が指定されていれば、エラーに重複したキーの値を含めます。
func translateEmployeePgError(err error, attempted *directory.Employee) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return directory.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case employeesEmployeeIDKey:
			if attempted != nil {
				return fmt.Errorf("%w: employee_id=%q", directory.ErrEmployeeIDAlreadyExists, attempted.EmployeeID)
			}
			return directory.ErrEmployeeIDAlreadyExists
		case employeesEmailKey:
			if attempted != nil {
				return fmt.Errorf("%w: email=%q", directory.ErrEmailAlreadyExists, attempted.Email)
			}
			return directory.ErrEmailAlreadyExists
		}
	}

	return err
}
