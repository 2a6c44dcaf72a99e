//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ogurasousui/hrms-lite/assets"
	repo "github.com/ogurasousui/hrms-lite/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/maintenance"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	"github.com/ogurasousui/hrms-lite/internal/platform/config"
	pg "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

func TestHRMSIntegration(t *testing.T) {
	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN()); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database, nil)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	isolation, err := pg.ParseIsolationLevel(cfg.Database.IsolationLevel)
	if err != nil {
		t.Fatalf("invalid isolation level: %v", err)
	}
	tx := pg.NewTransactionManager(pool, isolation, nil)

	employeeRepo := repo.NewEmployeeRepository(pool)
	attendanceRepo := repo.NewAttendanceRepository(pool)
	salaryRepo := repo.NewSalaryRepository(pool)

	dirSvc := directory.NewService(employeeRepo, nil, tx, nil)
	attSvc := attendance.NewService(attendanceRepo, dirSvc, stubClock{now: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)}, tx, nil, time.UTC)
	paySvc := payroll.NewService(salaryRepo, dirSvc, nil, tx, nil)

	t.Run("directory", func(t *testing.T) {
		if _, err := dirSvc.AddEmployee(ctx, directory.AddEmployeeInput{
			EmployeeID: "E001", FullName: "Asha Rao", Email: "asha@example.com", Department: "Engineering",
		}); err != nil {
			t.Fatalf("AddEmployee error: %v", err)
		}
		if _, err := dirSvc.AddEmployee(ctx, directory.AddEmployeeInput{
			EmployeeID: "E002", FullName: "Ravi Kumar", Email: "ravi@example.com", Department: "Operations",
		}); err != nil {
			t.Fatalf("AddEmployee error: %v", err)
		}

		_, err := dirSvc.AddEmployee(ctx, directory.AddEmployeeInput{
			EmployeeID: "E003", FullName: "Dup", Email: "asha@example.com", Department: "Engineering",
		})
		if !errors.Is(err, directory.ErrEmailAlreadyExists) {
			t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
		}

		all, err := directory.Collect(dirSvc.ListEmployees(ctx))
		if err != nil {
			t.Fatalf("ListEmployees error: %v", err)
		}
		if len(all) != 2 || all[0].EmployeeID != "E001" || all[1].EmployeeID != "E002" {
			t.Fatalf("unexpected employees: %+v", all)
		}
	})

	t.Run("attendance", func(t *testing.T) {
		rec, err := attSvc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
			EmployeeID: "E001", Date: "2024-02-01", Status: attendance.StatusPresent,
		})
		if err != nil {
			t.Fatalf("MarkAttendance error: %v", err)
		}

		_, err = attSvc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
			EmployeeID: "E001", Date: "2024-02-01", Status: attendance.StatusAbsent,
		})
		if !errors.Is(err, attendance.ErrAlreadyMarked) {
			t.Fatalf("expected ErrAlreadyMarked, got %v", err)
		}

		updated, err := attSvc.UpdateStatus(ctx, attendance.UpdateStatusInput{ID: rec.ID, Status: attendance.StatusAbsent})
		if err != nil {
			t.Fatalf("UpdateStatus error: %v", err)
		}
		if updated.Status != attendance.StatusAbsent || updated.Date != "2024-02-01" {
			t.Fatalf("update not applied: %+v", updated)
		}

		if _, err := attSvc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
			EmployeeID: "E002", Date: "2024-02-01", Status: attendance.StatusPresent,
		}); err != nil {
			t.Fatalf("MarkAttendance error: %v", err)
		}

		stats, err := attSvc.TodayStats(ctx)
		if err != nil {
			t.Fatalf("TodayStats error: %v", err)
		}
		if stats.Present != 1 || stats.Absent != 1 || stats.TotalMarked != 2 {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	})

	t.Run("payroll", func(t *testing.T) {
		first, err := paySvc.UpsertSalary(ctx, payroll.UpsertSalaryInput{
			EmployeeID: "E001", Month: "2024-02",
			BaseSalary: decimal.NewFromInt(50000), Bonus: decimal.NewFromInt(5000), Deductions: decimal.NewFromInt(2000),
		})
		if err != nil {
			t.Fatalf("UpsertSalary error: %v", err)
		}
		if !first.Created {
			t.Fatal("expected first upsert to create the record")
		}

		second, err := paySvc.UpsertSalary(ctx, payroll.UpsertSalaryInput{
			EmployeeID: "E001", Month: "2024-02", BaseSalary: decimal.NewFromInt(60000),
		})
		if err != nil {
			t.Fatalf("UpsertSalary error: %v", err)
		}
		if second.Created || second.Record.ID != first.Record.ID {
			t.Fatalf("expected overwrite of %s, got %+v", first.Record.ID, second)
		}
		if !second.Record.NetSalary().Equal(decimal.NewFromInt(60000)) {
			t.Fatalf("unexpected net salary: %s", second.Record.NetSalary())
		}

		if _, err := paySvc.UpsertSalary(ctx, payroll.UpsertSalaryInput{
			EmployeeID: "E002", Month: "2024-02", BaseSalary: decimal.RequireFromString("41000.50"),
		}); err != nil {
			t.Fatalf("UpsertSalary error: %v", err)
		}

		if err := dirSvc.RemoveEmployee(ctx, directory.RemoveEmployeeInput{EmployeeID: "E002"}); err != nil {
			t.Fatalf("RemoveEmployee error: %v", err)
		}

		records, err := paySvc.ListByMonth(ctx, payroll.ListByMonthInput{Month: "2024-02"})
		if err != nil {
			t.Fatalf("ListByMonth error: %v", err)
		}
		if len(records) != 2 || records[0].EmployeeName != "Asha Rao" || records[1].EmployeeName != payroll.PlaceholderEmployeeName {
			t.Fatalf("unexpected month listing: %+v", records)
		}

		summary, err := paySvc.MonthSummary(ctx, payroll.MonthSummaryInput{Month: "2024-02"})
		if err != nil {
			t.Fatalf("MonthSummary error: %v", err)
		}
		if summary.TotalEmployees != 2 || !summary.TotalNetSalary.Equal(decimal.RequireFromString("101000.50")) {
			t.Fatalf("unexpected summary: %+v", summary)
		}
	})

	t.Run("purge", func(t *testing.T) {
		result, err := maintenance.NewService(attendanceRepo, salaryRepo, employeeRepo, tx).Purge(ctx)
		if err != nil {
			t.Fatalf("Purge error: %v", err)
		}
		if result.Attendance != 2 || result.Salaries != 2 || result.Employees != 1 {
			t.Fatalf("unexpected purge result: %+v", result)
		}
	})
}

func resetMigrations(dsn string) error {
	m, err := pg.NewMigrator(assets.Migrations, "migrations", dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil {
		return err
	}
	return m.Up()
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}
