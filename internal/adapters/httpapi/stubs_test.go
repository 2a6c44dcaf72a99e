package httpapi

import (
	"context"
	"iter"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
)

type stubDirectory struct {
	addInput directory.AddEmployeeInput
	addOut   *directory.Employee
	addErr   error

	employees map[string]*directory.Employee
	listErr   error

	removeErr error
}

func (s *stubDirectory) AddEmployee(_ context.Context, in directory.AddEmployeeInput) (*directory.Employee, error) {
	s.addInput = in
	return s.addOut, s.addErr
}

func (s *stubDirectory) GetEmployee(_ context.Context, in directory.GetEmployeeInput) (*directory.Employee, error) {
	if emp, ok := s.employees[in.EmployeeID]; ok {
		return emp, nil
	}
	return nil, directory.ErrEmployeeNotFound
}

func (s *stubDirectory) ListEmployees(context.Context) iter.Seq2[*directory.Employee, error] {
	return func(yield func(*directory.Employee, error) bool) {
		if s.listErr != nil {
			yield(nil, s.listErr)
			return
		}
		for _, id := range []string{"E001", "E002", "E003"} {
			if emp, ok := s.employees[id]; ok {
				if !yield(emp, nil) {
					return
				}
			}
		}
	}
}

func (s *stubDirectory) RemoveEmployee(context.Context, directory.RemoveEmployeeInput) error {
	return s.removeErr
}

type stubAttendance struct {
	markInput attendance.MarkAttendanceInput
	markOut   *attendance.Record
	markErr   error

	updateInput attendance.UpdateStatusInput
	updateOut   *attendance.Record
	updateErr   error

	recentInput attendance.ListRecentInput
	records     []*attendance.Record

	stats *attendance.TodayStats
}

func (s *stubAttendance) MarkAttendance(_ context.Context, in attendance.MarkAttendanceInput) (*attendance.Record, error) {
	s.markInput = in
	return s.markOut, s.markErr
}

func (s *stubAttendance) UpdateStatus(_ context.Context, in attendance.UpdateStatusInput) (*attendance.Record, error) {
	s.updateInput = in
	return s.updateOut, s.updateErr
}

func (s *stubAttendance) ListByEmployee(context.Context, attendance.ListByEmployeeInput) ([]*attendance.Record, error) {
	return s.records, nil
}

func (s *stubAttendance) ListRecent(_ context.Context, in attendance.ListRecentInput) ([]*attendance.Record, error) {
	s.recentInput = in
	return s.records, nil
}

func (s *stubAttendance) TodayStats(context.Context) (*attendance.TodayStats, error) {
	return s.stats, nil
}

type stubPayroll struct {
	upsertInput payroll.UpsertSalaryInput
	upsertOut   *payroll.UpsertResult
	upsertErr   error

	patchInput payroll.PatchSalaryInput
	patchOut   *payroll.SalaryRecord
	patchErr   error

	salaries  map[string]*payroll.SalaryRecord
	deleteErr error

	listOut    []*payroll.SalaryRecord
	summaryOut *payroll.MonthSummary
	summaryErr error
}

func (s *stubPayroll) UpsertSalary(_ context.Context, in payroll.UpsertSalaryInput) (*payroll.UpsertResult, error) {
	s.upsertInput = in
	return s.upsertOut, s.upsertErr
}

func (s *stubPayroll) PatchSalary(_ context.Context, in payroll.PatchSalaryInput) (*payroll.SalaryRecord, error) {
	s.patchInput = in
	return s.patchOut, s.patchErr
}

func (s *stubPayroll) GetSalary(_ context.Context, in payroll.GetSalaryInput) (*payroll.SalaryRecord, error) {
	if rec, ok := s.salaries[in.ID]; ok {
		return rec, nil
	}
	return nil, payroll.ErrSalaryNotFound
}

func (s *stubPayroll) DeleteSalary(context.Context, payroll.DeleteSalaryInput) error {
	return s.deleteErr
}

func (s *stubPayroll) ListByEmployee(context.Context, payroll.ListByEmployeeInput) ([]*payroll.SalaryRecord, error) {
	return s.listOut, nil
}

func (s *stubPayroll) ListByMonth(context.Context, payroll.ListByMonthInput) ([]*payroll.SalaryRecord, error) {
	return s.listOut, nil
}

func (s *stubPayroll) MonthSummary(context.Context, payroll.MonthSummaryInput) (*payroll.MonthSummary, error) {
	return s.summaryOut, s.summaryErr
}
