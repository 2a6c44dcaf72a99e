package attendance

import "errors"

var (
	ErrInvalidRecordID   = errors.New("attendance: invalid record id")
	ErrInvalidEmployeeID = errors.New("attendance: invalid employee id")
	ErrInvalidDate       = errors.New("attendance: invalid date")
	ErrInvalidStatus     = errors.New("attendance: invalid status")
	ErrInvalidLimit      = errors.New("attendance: invalid limit")
	ErrRecordNotFound    = errors.New("attendance: record not found")
	// ErrAlreadyMarked は同一社員・同一日付の勤怠が既に存在する場合に返却されます。
	ErrAlreadyMarked = errors.New("attendance: already marked")
)
