package directory

import "time"

// Employee は社員名簿の 1 件を表すエンティティです。
// EmployeeID は外部で採番される識別子で、Email とともに名簿内で一意です。
type Employee struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  time.Time
}
