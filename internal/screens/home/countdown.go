package home

import (
	"fmt"
	"time"
)

// The comprehensive assessment runs in mid-May each year. The countdown
// targets the next occurrence of this nominal date.
const (
	examMonth = time.May
	examDay   = 13
)

// nextExamDate returns the next exam date at or after now.
func nextExamDate(now time.Time) time.Time {
	exam := time.Date(now.Year(), examMonth, examDay, 0, 0, 0, 0, now.Location())
	if exam.Before(now.Truncate(24 * time.Hour)) {
		exam = time.Date(now.Year()+1, examMonth, examDay, 0, 0, 0, 0, now.Location())
	}
	return exam
}

// examCountdownLine renders the dashboard countdown.
func examCountdownLine(now time.Time) string {
	exam := nextExamDate(now)
	days := int(exam.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
	if days <= 0 {
		return "會考就是今天，全力以赴！"
	}
	return fmt.Sprintf("距離會考還有 %d 天", days)
}
