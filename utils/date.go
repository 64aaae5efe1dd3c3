package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

func ValidateDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// Today returns the current date the way an HTML date input submits it.
func Today() string {
	return FormatDate(time.Now())
}
