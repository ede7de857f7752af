package tracker

import (
	"strings"
	"time"

	"github.com/nissyi-gh/tasksplit/internal/apperr"
)

const secondsPerDay = 24 * 60 * 60

var clockLayouts = []string{"15:04", "15:04:05"}

// ElapsedBetween returns the seconds from start to end, two wall-clock
// times of day. An end before start is read as crossing midnight. Empty
// fields and a zero-length span are rejected.
func ElapsedBetween(start, end string) (int, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return 0, apperr.Invalid("time", "both start and end are required")
	}
	from, err := secondOfDay(start)
	if err != nil {
		return 0, apperr.Invalid("start", "%q is not a time of day", start)
	}
	to, err := secondOfDay(end)
	if err != nil {
		return 0, apperr.Invalid("end", "%q is not a time of day", end)
	}

	elapsed := to - from
	if elapsed < 0 {
		elapsed += secondsPerDay
	}
	elapsed %= secondsPerDay
	if elapsed == 0 {
		return 0, apperr.Invalid("end", "must be different from start")
	}
	return elapsed, nil
}

func secondOfDay(s string) (int, error) {
	var lastErr error
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
		}
		lastErr = err
	}
	return 0, lastErr
}

// LogManual validates a start/end pair and logs the span against a task
// or subtask. Nothing changes when validation fails.
func (s *Store) LogManual(taskID, subtaskID, start, end string) (int, error) {
	seconds, err := ElapsedBetween(start, end)
	if err != nil {
		return 0, err
	}
	if err := s.ManualLog(taskID, subtaskID, seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}
