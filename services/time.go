package services

import "time"

// Timestamps are stored as second-precision ISO strings, dates as ISO dates.
const (
	timestampLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
)

func nowISO() string {
	return time.Now().Format(timestampLayout)
}

func todayISO() string {
	return time.Now().Format(dateLayout)
}
