// Package errclass はコア層のエラーを輸送層共通の分類へ変換します。
package errclass

import (
	"errors"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
)

// Kind はエラーの分類です。
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

var (
	invalidArgument = []error{
		directory.ErrInvalidEmployeeID,
		directory.ErrInvalidFullName,
		directory.ErrInvalidEmail,
		directory.ErrInvalidDepartment,
		attendance.ErrInvalidRecordID,
		attendance.ErrInvalidEmployeeID,
		attendance.ErrInvalidDate,
		attendance.ErrInvalidStatus,
		attendance.ErrInvalidLimit,
		payroll.ErrInvalidSalaryID,
		payroll.ErrInvalidEmployeeID,
		payroll.ErrInvalidMonth,
		payroll.ErrInvalidAmount,
	}
	notFound = []error{
		directory.ErrEmployeeNotFound,
		attendance.ErrRecordNotFound,
		payroll.ErrSalaryNotFound,
	}
	conflict = []error{
		directory.ErrEmployeeIDAlreadyExists,
		directory.ErrEmailAlreadyExists,
		attendance.ErrAlreadyMarked,
	}
)

// Classify は err を分類します。どの既知のエラーにも該当しなければ KindInternal です。
func Classify(err error) Kind {
	switch {
	case matchesAny(err, notFound):
		return KindNotFound
	case matchesAny(err, conflict):
		return KindConflict
	case matchesAny(err, invalidArgument):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
