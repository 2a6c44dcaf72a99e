package attendance

import "time"

// DateLayout は勤怠日付の正規形 (YYYY-MM-DD) です。
const DateLayout = "2006-01-02"

// Status は勤怠の状態を表します。
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Record は社員 1 人・1 日あたり 1 件の勤怠記録です。
type Record struct {
	ID         string
	EmployeeID string
	Date       string
	Status     Status
	Timestamp  time.Time
}

// TodayStats は当日分の勤怠集計です。
type TodayStats struct {
	Date        string
	Present     int
	Absent      int
	TotalMarked int
}
