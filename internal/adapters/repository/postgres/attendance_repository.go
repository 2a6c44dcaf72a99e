package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	pgdb "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
)

const (
	attendanceEmployeeDateKey = "attendance_records_employee_id_date_key"
	attendanceStatusCheck     = "attendance_records_status_check"
)

const attendanceColumns = `id::text, employee_id, to_char(date, 'YYYY-MM-DD'), status, marked_at`

// AttendanceRepository は PostgreSQL を利用した勤怠台帳の実装です。
type AttendanceRepository struct {
	pool pgdb.Queryer
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(pool pgdb.Queryer) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create は勤怠記録を作成します。(employee_id, date) の重複は ErrAlreadyMarked になります。
func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO attendance_records (employee_id, date, status, marked_at)
        VALUES ($1, $2::date, $3, $4)
        RETURNING `+attendanceColumns,
		rec.EmployeeID,
		rec.Date,
		string(rec.Status),
		rec.Timestamp,
	)

	created, err := scanAttendance(row)
	if err != nil {
		err = translateAttendancePgError(err)
		if errors.Is(err, attendance.ErrAlreadyMarked) {
			return nil, fmt.Errorf("%w: employee_id=%q date=%q", err, rec.EmployeeID, rec.Date)
		}
		return nil, err
	}
	return created, nil
}

// FindByID は ID で勤怠記録を取得します。
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+attendanceColumns+`
          FROM attendance_records
         WHERE id = $1::uuid
    `, id)

	found, err := scanAttendance(row)
	if err != nil {
		return nil, withRecordID(translateAttendancePgError(err), id)
	}
	return found, nil
}

// FindByEmployeeAndDate は社員と日付で勤怠記録を取得します。
func (r *AttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+attendanceColumns+`
          FROM attendance_records
         WHERE employee_id = $1 AND date = $2::date
         LIMIT 1
    `, employeeID, date)

	found, err := scanAttendance(row)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	return found, nil
}

// UpdateStatus は状態のみを更新します。
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE attendance_records
           SET status = $1
         WHERE id = $2::uuid
        RETURNING `+attendanceColumns,
		string(status),
		id,
	)

	updated, err := scanAttendance(row)
	if err != nil {
		return nil, withRecordID(translateAttendancePgError(err), id)
	}
	return updated, nil
}

// ListByEmployee は社員の勤怠を日付の降順で返します。
func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*attendance.Record, error) {
	return r.list(ctx, `
        SELECT `+attendanceColumns+`
          FROM attendance_records
         WHERE employee_id = $1
         ORDER BY date DESC
    `, employeeID)
}

// ListRecent は全社員の勤怠を日付の降順で最大 limit 件返します。
func (r *AttendanceRepository) ListRecent(ctx context.Context, limit int) ([]*attendance.Record, error) {
	return r.list(ctx, `
        SELECT `+attendanceColumns+`
          FROM attendance_records
         ORDER BY date DESC, marked_at DESC
         LIMIT $1
    `, limit)
}

// CountByDateAndStatus は指定日・指定状態の件数を返します。
func (r *AttendanceRepository) CountByDateAndStatus(ctx context.Context, date string, status attendance.Status) (int, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var count int64
	if err := exec.QueryRow(ctx, `
        SELECT count(*)
          FROM attendance_records
         WHERE date = $1::date AND status = $2
    `, date, string(status)).Scan(&count); err != nil {
		return 0, translateAttendancePgError(err)
	}
	return int(count), nil
}

// DeleteAll は全勤怠記録を削除し、削除件数を返します。保守用です。
func (r *AttendanceRepository) DeleteAll(ctx context.Context) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM attendance_records`)
	if err != nil {
		return 0, translateAttendancePgError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *AttendanceRepository) list(ctx context.Context, query string, args ...any) ([]*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	defer rows.Close()

	records := make([]*attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, translateAttendancePgError(err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, translateAttendancePgError(err)
	}

	return records, nil
}

func scanAttendance(row pgx.Row) (*attendance.Record, error) {
	var (
		id         string
		employeeID string
		date       string
		status     string
		markedAt   time.Time
	)

	if err := row.Scan(&id, &employeeID, &date, &status, &markedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}

	return &attendance.Record{
		ID:         id,
		EmployeeID: employeeID,
		Date:       date,
		Status:     attendance.Status(status),
		Timestamp:  markedAt,
	}, nil
}

func translateAttendancePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == attendanceEmployeeDateKey:
			return attendance.ErrAlreadyMarked
		case pgErr.Code == checkViolationCode && pgErr.ConstraintName == attendanceStatusCheck:
			return attendance.ErrInvalidStatus
		}
	}

	return err
}

func withRecordID(err error, id string) error {
	if errors.Is(err, attendance.ErrRecordNotFound) {
		return fmt.Errorf("%w: id=%q", err, id)
	}
	return err
}
