package attendance

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalDate は構造化された日付または文字列を YYYY-MM-DD に正規化します。
// value が nil でなければそちらを優先します。文字列は YYYY-MM-DD と RFC3339 を受け付けます。
func CanonicalDate(value *time.Time, raw string) (string, error) {
	if value != nil {
		if value.IsZero() {
			return "", ErrInvalidDate
		}
		return value.Format(DateLayout), nil
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidDate
	}
	if parsed, err := time.Parse(DateLayout, trimmed); err == nil {
		return parsed.Format(DateLayout), nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.Format(DateLayout), nil
	}
	return "", fmt.Errorf("%w: date=%q", ErrInvalidDate, trimmed)
}

// ParseStatus は文字列を Status に変換します。Present / Absent 以外は拒否します。
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	if !isValidStatus(status) {
		return "", fmt.Errorf("%w: status=%q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPresent, StatusAbsent:
		return true
	default:
		return false
	}
}
