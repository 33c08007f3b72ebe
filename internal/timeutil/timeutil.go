// Package timeutil interprets all datetimes in a single reference
// timezone and computes quarter-hour-rounded elapsed times.
package timeutil

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/timeey-api/internal/models"
)

// ReferenceTimezone anchors every date/time split and combine.
const ReferenceTimezone = "America/Edmonton"

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	shortTimeLayout = "15:04" // legacy sheet rows carry no seconds
)

// roundToMinutes is the quarter-hour rounding granularity
const roundToMinutes = 15

var refLocation = mustLoadLocation()

func mustLoadLocation() *time.Location {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		panic(fmt.Sprintf("timeutil: load %s: %v", ReferenceTimezone, err))
	}
	return loc
}

// ParseDatetime parses an ISO 8601 datetime with offset and normalizes it
// to the reference timezone.
func ParseDatetime(value string) (time.Time, *models.Error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, models.NewError(
			models.ErrInvalidDate,
			fmt.Sprintf("datetime: '%s' is invalid", value),
			http.StatusBadRequest,
		)
	}
	return t.In(refLocation), nil
}

// FormatDatetime renders t as RFC 3339 in the reference timezone
func FormatDatetime(t time.Time) string {
	return t.In(refLocation).Format(time.RFC3339)
}

// CalculateTotalTime computes the elapsed time between two datetimes as an
// "HH:MM" string, with the minute component rounded to the nearest quarter
// hour. Both datetimes must parse, end must not precede start, and both
// must fall on the same calendar date in the reference timezone.
func CalculateTotalTime(startDatetime, endDatetime string) (string, *models.Error) {
	start, derr := ParseDatetime(startDatetime)
	if derr != nil {
		return "", models.NewError(
			models.ErrInvalidDate,
			fmt.Sprintf("start datetime: '%s' is invalid", startDatetime),
			http.StatusBadRequest,
		)
	}

	end, derr := ParseDatetime(endDatetime)
	if derr != nil {
		return "", models.NewError(
			models.ErrInvalidDate,
			fmt.Sprintf("end datetime: '%s' is invalid", endDatetime),
			http.StatusBadRequest,
		)
	}

	if end.Before(start) {
		return "", models.NewErrorWithData(
			models.ErrInvalidDate,
			fmt.Sprintf("end datetime: '%s' must be after start datetime: '%s'", endDatetime, startDatetime),
			http.StatusBadRequest,
			map[string]string{"startDatetime": startDatetime, "endDatetime": endDatetime},
		)
	}

	startDate := start.Format(dateLayout)
	endDate := end.Format(dateLayout)
	if startDate != endDate {
		return "", models.NewError(
			models.ErrInvalidDate,
			fmt.Sprintf("start date: '%s' and end date: '%s' must be the same", startDate, endDate),
			http.StatusBadRequest,
		)
	}

	return formatRoundedDuration(end.Sub(start)), nil
}

// formatRoundedDuration drops seconds, rounds the minute component to the
// nearest roundToMinutes boundary and formats HH:MM. Hours are an elapsed
// count, not a clock hour, so they may exceed 23.
func formatRoundedDuration(d time.Duration) string {
	totalMinutes := int(d / time.Minute)

	remainder := (totalMinutes % 60) % roundToMinutes
	if remainder >= roundToMinutes/2 {
		totalMinutes += roundToMinutes - remainder
	} else {
		totalMinutes -= remainder
	}

	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// SeparateDateAndTime splits an ISO 8601 datetime into its reference
// timezone date ("YYYY-MM-DD") and time ("HH:mm:ss") components.
func SeparateDateAndTime(datetime string) (date string, timeOfDay string, err *models.Error) {
	t, derr := ParseDatetime(datetime)
	if derr != nil {
		return "", "", derr
	}
	return t.Format(dateLayout), t.Format(timeLayout), nil
}

// CombineDateAndTime combines a "YYYY-MM-DD" date and an "HH:mm:ss" (or
// legacy "HH:mm") time into an ISO 8601 datetime in the reference timezone.
func CombineDateAndTime(date, timeOfDay string) (string, *models.Error) {
	combined := strings.TrimSpace(date) + " " + strings.TrimSpace(timeOfDay)

	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, combined, refLocation)
	if err != nil {
		t, err = time.ParseInLocation(dateLayout+" "+shortTimeLayout, combined, refLocation)
	}
	if err != nil {
		return "", models.NewError(
			models.ErrInvalidDate,
			fmt.Sprintf("date: '%s' and time: '%s' do not form a valid datetime", date, timeOfDay),
			http.StatusBadRequest,
		)
	}

	return t.Format(time.RFC3339), nil
}
