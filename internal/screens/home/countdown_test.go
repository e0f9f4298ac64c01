package home

import (
	"strings"
	"testing"
	"time"
)

func TestNextExamDate(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantYear int
	}{
		{"before exam", time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC), 2026},
		{"exam day", time.Date(2026, time.May, 13, 9, 0, 0, 0, time.UTC), 2026},
		{"after exam", time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC), 2027},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := nextExamDate(tt.now)
			if exam.Year() != tt.wantYear {
				t.Errorf("year = %d, want %d", exam.Year(), tt.wantYear)
			}
			if exam.Month() != time.May || exam.Day() != 13 {
				t.Errorf("date = %v, want May 13", exam)
			}
		})
	}
}

func TestExamCountdownLine(t *testing.T) {
	now := time.Date(2026, time.May, 3, 9, 0, 0, 0, time.UTC)
	line := examCountdownLine(now)
	if !strings.Contains(line, "10") {
		t.Errorf("countdown %q should report 10 days", line)
	}

	examDay := time.Date(2026, time.May, 13, 9, 0, 0, 0, time.UTC)
	line = examCountdownLine(examDay)
	if !strings.Contains(line, "今天") {
		t.Errorf("countdown %q should flag exam day", line)
	}
}
